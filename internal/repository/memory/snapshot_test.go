package memory

import (
	"testing"
	"time"

	"notecraft-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) *WorkspaceStore {
	t.Helper()
	store, _ := newTestStore(t)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	viewed := func(d time.Duration) *time.Time {
		v := base.Add(-d)
		return &v
	}

	pages := []*entity.Page{
		{
			Id: "1", Title: "Getting Started", IsFavorite: true, Tags: []string{"tutorial", "welcome"},
			LastViewedAt: viewed(0),
			Blocks: []entity.Block{
				{Id: "b1", Type: entity.BlockTypeHeading1, Content: "Welcome to NoteCraft!"},
				{Id: "b2", Type: entity.BlockTypeText, Content: "Try typing / to see block types."},
			},
		},
		{
			Id: "2", Title: "Daily Journal", ParentId: strPtr("3"), Tags: []string{"personal", "journal"},
			LastViewedAt: viewed(time.Hour),
			Blocks:       []entity.Block{{Id: "b6", Type: entity.BlockTypeText, Content: "Write your daily REFLECTIONS here"}},
		},
		{Id: "3", Title: "Personal Notes", Tags: []string{"personal"}, LastViewedAt: viewed(2 * time.Hour)},
		{
			Id: "4", Title: "Project Ideas", ParentId: strPtr("3"), Tags: []string{"work", "ideas", "ai"},
			LastViewedAt: viewed(30 * time.Minute),
			Blocks:       []entity.Block{{Id: "b9", Type: entity.BlockTypeBulletList, Content: "AI-powered note organizer"}},
		},
		{Id: "5", Title: "Never opened", ParentId: strPtr("4")},
	}
	store.Replace(pages, "1")
	return store
}

func TestFilterPages(t *testing.T) {
	snap := seededStore(t).Snapshot()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query returns every page", "", []string{"1", "2", "3", "4", "5"}},
		{"title match ignores case", "journal", []string{"2"}},
		{"content match ignores case", "reflections", []string{"2"}},
		{"upper case query", "WELCOME", []string{"1"}},
		{"shared substring", "no", []string{"1", "3", "4"}},
		{"no match", "kubernetes", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pageIds(snap.FilterPages(tt.query)))
		})
	}
}

func TestFilteredPagesUsesStoredQuery(t *testing.T) {
	store := seededStore(t)
	assert.Len(t, store.Snapshot().FilteredPages(), 5)

	snap := store.SetSearchQuery("ideas")
	assert.Equal(t, []string{"4"}, pageIds(snap.FilteredPages()))
}

func TestRecentPages(t *testing.T) {
	snap := seededStore(t).Snapshot()

	assert.Equal(t, []string{"1", "4", "2", "3"}, pageIds(snap.RecentPages(0)))
	assert.Equal(t, []string{"1", "4"}, pageIds(snap.RecentPages(2)))
}

func TestFavoritesAndTags(t *testing.T) {
	snap := seededStore(t).Snapshot()

	assert.Equal(t, []string{"1"}, pageIds(snap.FavoritePages()))
	assert.Equal(t, []string{"ai", "ideas", "journal", "personal", "tutorial", "welcome", "work"}, snap.AllTags())
}

func TestPageChildren(t *testing.T) {
	snap := seededStore(t).Snapshot()

	assert.Equal(t, []string{"2", "4"}, pageIds(snap.PageChildren("3")))
	assert.Empty(t, snap.PageChildren("1"))
	assert.Empty(t, snap.PageChildren("missing"))
}

func TestBreadcrumb(t *testing.T) {
	snap := seededStore(t).Snapshot()

	assert.Equal(t, []string{"3", "4"}, pageIds(snap.Breadcrumb("5")))
	assert.Empty(t, snap.Breadcrumb("3"))
	assert.Nil(t, snap.Breadcrumb("missing"))
}

func TestTree(t *testing.T) {
	tree := seededStore(t).Snapshot().Tree()

	require.Len(t, tree, 2)
	assert.Equal(t, "1", tree[0].Page.Id)
	assert.Empty(t, tree[0].Children)

	personal := tree[1]
	assert.Equal(t, "3", personal.Page.Id)
	require.Len(t, personal.Children, 2)
	assert.Equal(t, "2", personal.Children[0].Page.Id)
	assert.Equal(t, "4", personal.Children[1].Page.Id)
	require.Len(t, personal.Children[1].Children, 1)
	assert.Equal(t, "5", personal.Children[1].Children[0].Page.Id)
}

func TestScenarioAddBlockToEmptyPage(t *testing.T) {
	store, _ := newTestStore(t)
	store.Replace([]*entity.Page{{Id: "1", Title: "Getting Started", Blocks: []entity.Block{}}}, "1")

	x, snap := store.AddBlock("1", "", "")

	content := snap.Page("1").Blocks
	require.Len(t, content, 1)
	assert.Equal(t, x, content[0].Id)
	assert.Equal(t, entity.BlockTypeText, content[0].Type)
	assert.Equal(t, "", content[0].Content)
}

func TestScenarioDeleteParentRemovesChild(t *testing.T) {
	store, _ := newTestStore(t)
	store.Replace([]*entity.Page{
		{Id: "A", Title: "A"},
		{Id: "B", Title: "B", ParentId: strPtr("A")},
	}, "A")

	snap := store.DeletePage("A")
	assert.Nil(t, snap.Page("A"))
	assert.Nil(t, snap.Page("B"))
	assert.Equal(t, 0, snap.Len())
}
