package seed

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"notecraft-be/internal/dto"
	"notecraft-be/internal/entity"
	"notecraft-be/internal/mapper"

	"gopkg.in/yaml.v3"
)

//go:embed workspace.yaml
var defaultWorkspace string

type File struct {
	CurrentPageId string     `yaml:"current_page_id"`
	Pages         []PageSeed `yaml:"pages"`
}

type PageSeed struct {
	Id            string      `yaml:"id"`
	Title         string      `yaml:"title"`
	Icon          string      `yaml:"icon"`
	Description   string      `yaml:"description"`
	Color         string      `yaml:"color"`
	ParentId      string      `yaml:"parent_id"`
	IsPrivate     bool        `yaml:"is_private"`
	IsFavorite    bool        `yaml:"is_favorite"`
	Tags          []string    `yaml:"tags"`
	LastViewedAgo string      `yaml:"last_viewed_ago"`
	Blocks        []BlockSeed `yaml:"blocks"`
}

type BlockSeed struct {
	Id         string               `yaml:"id"`
	Type       string               `yaml:"type"`
	Content    string               `yaml:"content"`
	Properties *dto.BlockProperties `yaml:"properties"`
}

// Workspace is a decoded seed, ready for WorkspaceStore.Replace.
type Workspace struct {
	Pages         []*entity.Page
	CurrentPageId string
}

// Default decodes the embedded workspace.
func Default(now time.Time) (*Workspace, error) {
	return Decode(strings.NewReader(defaultWorkspace), now)
}

// LoadFile decodes a seed file, or the embedded default when path is empty.
func LoadFile(path string, now time.Time) (*Workspace, error) {
	if path == "" {
		return Default(now)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Decode(f, now)
}

// Decode reads YAML. Every page gets now as its creation and update time.
func Decode(r io.Reader, now time.Time) (*Workspace, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	blocks := mapper.NewBlockMapper()
	ws := &Workspace{CurrentPageId: file.CurrentPageId, Pages: make([]*entity.Page, 0, len(file.Pages))}

	for i, ps := range file.Pages {
		if ps.Id == "" {
			return nil, fmt.Errorf("seed page %d: missing id", i)
		}

		page := &entity.Page{
			Id:          ps.Id,
			Title:       ps.Title,
			Icon:        ps.Icon,
			Description: ps.Description,
			Color:       ps.Color,
			Blocks:      make([]entity.Block, 0, len(ps.Blocks)),
			CreatedAt:   now,
			UpdatedAt:   now,
			IsPrivate:   ps.IsPrivate,
			IsFavorite:  ps.IsFavorite,
			Tags:        append([]string{}, ps.Tags...),
		}
		if page.Title == "" {
			page.Title = entity.DefaultPageTitle
		}
		if page.Icon == "" {
			page.Icon = entity.DefaultPageIcon
		}
		if ps.ParentId != "" {
			parent := ps.ParentId
			page.ParentId = &parent
		}
		if ps.LastViewedAgo != "" {
			ago, err := time.ParseDuration(ps.LastViewedAgo)
			if err != nil {
				return nil, fmt.Errorf("seed page %s: last_viewed_ago: %w", ps.Id, err)
			}
			viewed := now.Add(-ago)
			page.LastViewedAt = &viewed
		}

		for j, bs := range ps.Blocks {
			blockType := entity.BlockType(bs.Type)
			if !blockType.Valid() {
				return nil, fmt.Errorf("seed page %s block %d: unknown type %q", ps.Id, j, bs.Type)
			}
			if bs.Id == "" {
				return nil, fmt.Errorf("seed page %s block %d: missing id", ps.Id, j)
			}
			page.Blocks = append(page.Blocks, entity.Block{
				Id:      bs.Id,
				Type:    blockType,
				Content: bs.Content,
				Props:   blocks.PropsFromDTO(blockType, bs.Properties),
			})
		}

		ws.Pages = append(ws.Pages, page)
	}
	return ws, nil
}
