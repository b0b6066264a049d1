package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"notecraft-be/internal/entity"
	"notecraft-be/internal/repository/memory"
	"notecraft-be/internal/repository/specification"
	"notecraft-be/internal/repository/unitofwork"
	"notecraft-be/internal/seed"
	"notecraft-be/pkg/database"
	"notecraft-be/pkg/markdown"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

func main() {
	_ = godotenv.Load()

	flags := pflag.NewFlagSet("export", pflag.ExitOnError)
	out := flags.StringP("out", "o", "export", "directory to write markdown files into")
	seedFile := flags.String("seed", "", "export a YAML seed file instead of the database")
	dsn := flags.String("dsn", os.Getenv("DB_CONNECTION_STRING"), "postgres connection string")
	favorites := flags.Bool("favorites", false, "export favorite pages only")
	_ = flags.Parse(os.Args[1:])

	pages, err := loadPages(*dsn, *seedFile, *favorites)
	if err != nil {
		color.Red("Failed to load pages: %v", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		color.Red("Failed to create %s: %v", *out, err)
		os.Exit(1)
	}

	renderer := markdown.NewRenderer()
	used := make(map[string]bool, len(pages))
	for _, p := range pages {
		name := fileName(p, used)
		path := filepath.Join(*out, name)
		if err := os.WriteFile(path, []byte(renderer.Render(p)), 0o644); err != nil {
			color.Red("Failed to write %s: %v", path, err)
			os.Exit(1)
		}
		color.Green("  %s", path)
	}
	color.Cyan("Exported %d pages to %s", len(pages), *out)
}

func loadPages(dsn, seedFile string, favorites bool) ([]*entity.Page, error) {
	if dsn == "" || seedFile != "" {
		ws, err := seed.LoadFile(seedFile, time.Now())
		if err != nil {
			return nil, err
		}
		snap := memory.NewWorkspaceStore().Replace(ws.Pages, ws.CurrentPageId)
		if favorites {
			return snap.FavoritePages(), nil
		}
		return snap.Pages, nil
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	specs := []specification.Specification{specification.InStoreOrder{}, specification.WithBlocks{}}
	if favorites {
		specs = append(specs, specification.FavoritesOnly{})
	}
	return uow.PageRepository().FindAll(ctx, specs...)
}

// fileName slugs the title, falling back to the page id for empty or
// repeated slugs.
func fileName(p *entity.Page, used map[string]bool) string {
	name := slug(p.Title)
	if name == "" || used[name] {
		name = p.Id
	}
	used[name] = true
	return name + ".md"
}

func slug(title string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
