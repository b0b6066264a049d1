package main

import (
	"context"
	"os"
	"time"

	"notecraft-be/internal/model"
	"notecraft-be/internal/repository/memory"
	"notecraft-be/internal/repository/unitofwork"
	"notecraft-be/internal/seed"
	"notecraft-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

func main() {
	_ = godotenv.Load()

	flags := pflag.NewFlagSet("seed", pflag.ExitOnError)
	file := flags.String("file", os.Getenv("WORKSPACE_SEED_FILE"), "YAML seed file (default: embedded workspace)")
	force := flags.Bool("force", false, "replace pages that are already stored")
	dsn := flags.String("dsn", os.Getenv("DB_CONNECTION_STRING"), "postgres connection string")
	_ = flags.Parse(os.Args[1:])

	if *dsn == "" {
		color.Red("DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	color.Cyan("🌱 Seeding workspace\n")

	ws, err := seed.LoadFile(*file, time.Now())
	if err != nil {
		color.Red("Failed to load seed: %v", err)
		os.Exit(1)
	}

	// Replace drops dangling parent ids before anything is written.
	store := memory.NewWorkspaceStore()
	snap := store.Replace(ws.Pages, ws.CurrentPageId)

	db, err := database.NewGormDBFromDSN(*dsn, false)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	existing, err := uow.PageRepository().Count(ctx)
	if err != nil {
		color.Red("Failed to count pages: %v", err)
		os.Exit(1)
	}
	if existing > 0 && !*force {
		color.Yellow("%d pages already stored, skipping (use --force to replace)", existing)
		return
	}

	if err := uow.Begin(ctx); err != nil {
		color.Red("Failed to begin transaction: %v", err)
		os.Exit(1)
	}
	defer uow.Rollback()

	pages := uow.PageRepository()
	if err := pages.DeleteAllUnscoped(ctx); err != nil {
		color.Red("Failed to clear pages: %v", err)
		os.Exit(1)
	}
	for i, p := range snap.Pages {
		if err := pages.Save(ctx, p, i); err != nil {
			color.Red("Failed to save page %s: %v", p.Id, err)
			os.Exit(1)
		}
		color.Green("  + %s %s (%d blocks)", p.Icon, p.Title, len(p.Blocks))
	}

	if err := uow.WorkspaceStateRepository().Save(ctx, &model.WorkspaceState{
		CurrentPageId:    snap.CurrentPageId,
		SidebarCollapsed: snap.SidebarCollapsed,
		Version:          snap.Version,
		UpdatedAt:        time.Now(),
	}); err != nil {
		color.Red("Failed to save workspace state: %v", err)
		os.Exit(1)
	}

	if err := uow.Commit(); err != nil {
		color.Red("Failed to commit: %v", err)
		os.Exit(1)
	}
	color.Green("✅ Seeded %d pages", snap.Len())
}
