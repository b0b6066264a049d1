package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"notecraft-be/internal/entity"
	"notecraft-be/internal/model"
	"notecraft-be/internal/repository/specification"
	"notecraft-be/internal/repository/unitofwork"
	"notecraft-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUnitOfWork(t *testing.T) (context.Context, unitofwork.UnitOfWork) {
	t.Helper()
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	// Nothing written here outlives the test.
	t.Cleanup(func() { _ = uow.Rollback() })
	return ctx, uow
}

func TestPageRepositoryRoundTrip(t *testing.T) {
	ctx, uow := openUnitOfWork(t)
	pages := uow.PageRepository()

	parentId := uuid.NewString()
	now := time.Now().UTC().Truncate(time.Second)
	parent := &entity.Page{
		Id: parentId, Title: "Integration Parent", Icon: "📁", Color: "blue",
		Tags: []string{"integration"}, CreatedAt: now, UpdatedAt: now,
		Blocks: []entity.Block{
			{Id: "b1", Type: entity.BlockTypeHeading1, Content: "Heading"},
			{Id: "b2", Type: entity.BlockTypeTodo, Content: "Check me", Props: entity.TodoProps{Checked: true}},
			{Id: "b3", Type: entity.BlockTypeCode, Content: "fmt.Println()", Props: entity.CodeProps{Language: "go"}},
		},
	}
	child := &entity.Page{
		Id: uuid.NewString(), Title: "Integration Child", ParentId: &parentId,
		CreatedAt: now, UpdatedAt: now, Blocks: []entity.Block{},
	}

	require.NoError(t, pages.Save(ctx, parent, 0))
	require.NoError(t, pages.Save(ctx, child, 1))

	t.Run("blocks keep their order and properties", func(t *testing.T) {
		got, err := pages.FindOne(ctx, specification.ByID{ID: parentId}, specification.WithBlocks{})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Integration Parent", got.Title)
		assert.Equal(t, []string{"integration"}, got.Tags)
		require.Len(t, got.Blocks, 3)
		assert.Equal(t, "b1", got.Blocks[0].Id)
		assert.Equal(t, entity.TodoProps{Checked: true}, got.Blocks[1].Props)
		assert.Equal(t, entity.CodeProps{Language: "go"}, got.Blocks[2].Props)
	})

	t.Run("children by parent", func(t *testing.T) {
		children, err := pages.FindAll(ctx, specification.ByParentID{ParentID: &parentId})
		require.NoError(t, err)
		require.Len(t, children, 1)
		assert.Equal(t, child.Id, children[0].Id)
	})

	t.Run("save replaces blocks", func(t *testing.T) {
		parent.Blocks = parent.Blocks[:1]
		require.NoError(t, pages.Save(ctx, parent, 0))

		got, err := pages.FindOne(ctx, specification.ByID{ID: parentId}, specification.WithBlocks{})
		require.NoError(t, err)
		assert.Len(t, got.Blocks, 1)
	})

	t.Run("delete hides the page", func(t *testing.T) {
		require.NoError(t, pages.Delete(ctx, child.Id))
		got, err := pages.FindOne(ctx, specification.ByID{ID: child.Id})
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestWorkspaceStateRepository(t *testing.T) {
	ctx, uow := openUnitOfWork(t)
	states := uow.WorkspaceStateRepository()

	current := "1"
	require.NoError(t, states.Save(ctx, &model.WorkspaceState{CurrentPageId: &current, SidebarCollapsed: true, Version: 7}))

	got, err := states.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint64(7), got.Version)
	assert.True(t, got.SidebarCollapsed)
	require.NotNil(t, got.CurrentPageId)
	assert.Equal(t, "1", *got.CurrentPageId)
}
