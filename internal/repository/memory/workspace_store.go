package memory

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"notecraft-be/internal/entity"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	ErrParentNotFound = errors.New("parent page not found")
	ErrPageCycle      = errors.New("page cannot be nested under itself or its descendants")
)

// WorkspaceStore owns the page collection. Writers are serialized; every
// change publishes a new Snapshot, and a mutation that misses its target
// returns the current snapshot untouched.
type WorkspaceStore struct {
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]

	now        func() time.Time
	newPageId  func() string
	newBlockId func() string
}

type StoreOption func(*WorkspaceStore)

func WithClock(now func() time.Time) StoreOption {
	return func(s *WorkspaceStore) { s.now = now }
}

func WithPageIdGenerator(gen func() string) StoreOption {
	return func(s *WorkspaceStore) { s.newPageId = gen }
}

func WithBlockIdGenerator(gen func() string) StoreOption {
	return func(s *WorkspaceStore) { s.newBlockId = gen }
}

func NewWorkspaceStore(opts ...StoreOption) *WorkspaceStore {
	s := &WorkspaceStore{
		now:        time.Now,
		newPageId:  uuid.NewString,
		newBlockId: func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.current.Store(newSnapshot(0, nil, nil, "", false))
	return s
}

func (s *WorkspaceStore) Snapshot() *Snapshot {
	return s.current.Load()
}

func (s *WorkspaceStore) update(fn func(d *draft) bool) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current.Load()
	d := cur.draft()
	if !fn(d) {
		return cur
	}
	next := d.build(cur.Version + 1)
	s.current.Store(next)
	return next
}

// Replace installs a new page set. Duplicate page ids and duplicate block
// ids within a page keep their first occurrence; parent references that do
// not resolve are cleared.
func (s *WorkspaceStore) Replace(pages []*entity.Page, currentPageId string) *Snapshot {
	return s.update(func(d *draft) bool {
		seen := make(map[string]bool, len(pages))
		next := make([]*entity.Page, 0, len(pages))
		for _, p := range pages {
			if p == nil || seen[p.Id] {
				continue
			}
			seen[p.Id] = true
			clone := p.Clone()
			clone.Blocks = uniqueBlocks(clone.Blocks)
			next = append(next, clone)
		}
		for _, p := range next {
			if p.ParentId != nil && !seen[*p.ParentId] {
				p.ParentId = nil
			}
		}
		breakCycles(next)
		d.setPages(next)

		d.currentPageId = nil
		if seen[currentPageId] {
			id := currentPageId
			d.currentPageId = &id
		} else if len(next) > 0 {
			id := next[0].Id
			d.currentPageId = &id
		}
		return true
	})
}

// breakCycles clears the parent reference that closes a parent loop.
func breakCycles(pages []*entity.Page) {
	byId := make(map[string]*entity.Page, len(pages))
	for _, p := range pages {
		byId[p.Id] = p
	}
	for _, p := range pages {
		onPath := map[string]bool{p.Id: true}
		for cursor := p; cursor.ParentId != nil; {
			parent := byId[*cursor.ParentId]
			if onPath[parent.Id] {
				cursor.ParentId = nil
				break
			}
			onPath[parent.Id] = true
			cursor = parent
		}
	}
}

func uniqueBlocks(blocks []entity.Block) []entity.Block {
	seen := make(map[string]bool, len(blocks))
	out := blocks[:0]
	for _, b := range blocks {
		if seen[b.Id] {
			continue
		}
		seen[b.Id] = true
		out = append(out, b)
	}
	return out
}

// Pages

func (s *WorkspaceStore) CreatePage(title, parentId string) (string, *Snapshot, error) {
	return s.CreatePageWithBlocks(title, parentId, nil)
}

// CreatePageWithBlocks creates a page holding copies of blocks under fresh
// ids. Without blocks the page starts with one empty text block.
func (s *WorkspaceStore) CreatePageWithBlocks(title, parentId string, blocks []entity.Block) (string, *Snapshot, error) {
	if title == "" {
		title = entity.DefaultPageTitle
	}
	id := s.newPageId()

	content := make([]entity.Block, 0, len(blocks))
	for _, b := range blocks {
		b.Id = s.newBlockId()
		if b.Type == "" {
			b.Type = entity.BlockTypeText
		}
		if b.Props == nil || b.Props.BlockType() != b.Type {
			b.Props = entity.DefaultProps(b.Type)
		}
		content = append(content, b)
	}
	if len(content) == 0 {
		content = append(content, entity.Block{Id: s.newBlockId(), Type: entity.BlockTypeText})
	}

	var err error
	snap := s.update(func(d *draft) bool {
		if parentId != "" && d.indexOf(parentId) < 0 {
			err = ErrParentNotFound
			return false
		}

		now := s.now()
		viewed := now
		page := &entity.Page{
			Id:           id,
			Title:        title,
			Icon:         entity.DefaultPageIcon,
			Blocks:       content,
			CreatedAt:    now,
			UpdatedAt:    now,
			LastViewedAt: &viewed,
			IsPrivate:    parentId != "",
			Tags:         []string{},
		}
		if parentId != "" {
			parent := parentId
			page.ParentId = &parent
		}

		d.setPages(append(d.pages, page))
		d.currentPageId = &id
		return true
	})
	if err != nil {
		return "", snap, err
	}
	return id, snap, nil
}

// DeletePage removes the page and its direct children. Deeper descendants
// stay in the workspace and become root pages.
func (s *WorkspaceStore) DeletePage(pageId string) *Snapshot {
	return s.update(func(d *draft) bool {
		if d.indexOf(pageId) < 0 {
			return false
		}

		removed := map[string]bool{pageId: true}
		for _, p := range d.pages {
			if p.HasParent(pageId) {
				removed[p.Id] = true
			}
		}

		next := make([]*entity.Page, 0, len(d.pages))
		for _, p := range d.pages {
			if removed[p.Id] {
				continue
			}
			if p.ParentId != nil && removed[*p.ParentId] {
				p = p.Clone()
				p.ParentId = nil
			}
			next = append(next, p)
		}
		d.setPages(next)

		if d.currentPageId != nil && removed[*d.currentPageId] {
			d.currentPageId = nil
			if len(next) > 0 {
				id := next[0].Id
				d.currentPageId = &id
			}
		}
		return true
	})
}

func (s *WorkspaceStore) updatePage(pageId string, fn func(p *entity.Page)) *Snapshot {
	return s.update(func(d *draft) bool {
		return d.mutatePage(pageId, func(p *entity.Page) bool {
			fn(p)
			p.UpdatedAt = s.now()
			return true
		})
	})
}

func (s *WorkspaceStore) UpdatePageTitle(pageId, title string) *Snapshot {
	return s.updatePage(pageId, func(p *entity.Page) { p.Title = title })
}

func (s *WorkspaceStore) UpdatePageIcon(pageId, icon string) *Snapshot {
	return s.updatePage(pageId, func(p *entity.Page) { p.Icon = icon })
}

func (s *WorkspaceStore) UpdatePageDescription(pageId, description string) *Snapshot {
	return s.updatePage(pageId, func(p *entity.Page) { p.Description = description })
}

func (s *WorkspaceStore) UpdatePageColor(pageId, color string) *Snapshot {
	return s.updatePage(pageId, func(p *entity.Page) { p.Color = color })
}

// UpdatePageTags replaces the tag set. Blank and repeated tags are dropped.
func (s *WorkspaceStore) UpdatePageTags(pageId string, tags []string) *Snapshot {
	set := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		set = append(set, t)
	}
	return s.updatePage(pageId, func(p *entity.Page) { p.Tags = set })
}

func (s *WorkspaceStore) TogglePageFavorite(pageId string) *Snapshot {
	return s.updatePage(pageId, func(p *entity.Page) { p.IsFavorite = !p.IsFavorite })
}

// MovePage re-parents a page. An empty parentId moves it to the root.
func (s *WorkspaceStore) MovePage(pageId, parentId string) (*Snapshot, error) {
	var err error
	snap := s.update(func(d *draft) bool {
		if d.indexOf(pageId) < 0 {
			return false
		}
		if parentId != "" {
			if parentId == pageId {
				err = ErrPageCycle
				return false
			}
			if d.indexOf(parentId) < 0 {
				err = ErrParentNotFound
				return false
			}
			// Walk up from the new parent; reaching the page means a cycle.
			for _, ancestor := range d.base.Breadcrumb(parentId) {
				if ancestor.Id == pageId {
					err = ErrPageCycle
					return false
				}
			}
		}

		return d.mutatePage(pageId, func(p *entity.Page) bool {
			if parentId == "" {
				p.ParentId = nil
			} else {
				parent := parentId
				p.ParentId = &parent
			}
			p.UpdatedAt = s.now()
			return true
		})
	})
	return snap, err
}

func (s *WorkspaceStore) SetCurrentPage(pageId string) *Snapshot {
	return s.update(func(d *draft) bool {
		if !d.mutatePage(pageId, func(p *entity.Page) bool {
			now := s.now()
			p.LastViewedAt = &now
			return true
		}) {
			return false
		}
		id := pageId
		d.currentPageId = &id
		return true
	})
}

func (s *WorkspaceStore) UpdatePageLastViewed(pageId string) *Snapshot {
	return s.update(func(d *draft) bool {
		return d.mutatePage(pageId, func(p *entity.Page) bool {
			now := s.now()
			p.LastViewedAt = &now
			return true
		})
	})
}

// Blocks

// AddBlock inserts an empty block after afterBlockId, or appends it when
// afterBlockId is empty. An afterBlockId that is not on the page inserts at
// the front. Returns an empty id when the page does not exist.
func (s *WorkspaceStore) AddBlock(pageId, afterBlockId string, blockType entity.BlockType) (string, *Snapshot) {
	if blockType == "" {
		blockType = entity.BlockTypeText
	}
	block := entity.Block{
		Id:    s.newBlockId(),
		Type:  blockType,
		Props: entity.DefaultProps(blockType),
	}

	added := false
	snap := s.update(func(d *draft) bool {
		added = d.mutatePage(pageId, func(p *entity.Page) bool {
			if afterBlockId == "" {
				p.Blocks = append(p.Blocks, block)
			} else {
				at := p.BlockIndex(afterBlockId) + 1
				p.Blocks = append(p.Blocks, entity.Block{})
				copy(p.Blocks[at+1:], p.Blocks[at:])
				p.Blocks[at] = block
			}
			p.UpdatedAt = s.now()
			return true
		})
		return added
	})
	if !added {
		return "", snap
	}
	return block.Id, snap
}

func (s *WorkspaceStore) UpdateBlock(pageId, blockId, content string) *Snapshot {
	return s.update(func(d *draft) bool {
		return d.mutateBlock(pageId, blockId, func(p *entity.Page, b *entity.Block) bool {
			b.Content = content
			p.UpdatedAt = s.now()
			return true
		})
	})
}

// ChangeBlockType keeps the content and resets the props to the new type's
// defaults.
func (s *WorkspaceStore) ChangeBlockType(pageId, blockId string, blockType entity.BlockType) *Snapshot {
	return s.update(func(d *draft) bool {
		return d.mutateBlock(pageId, blockId, func(p *entity.Page, b *entity.Block) bool {
			b.Type = blockType
			b.Props = entity.DefaultProps(blockType)
			p.UpdatedAt = s.now()
			return true
		})
	})
}

// SetBlockProperties only applies props whose variant matches the block's
// current type.
func (s *WorkspaceStore) SetBlockProperties(pageId, blockId string, props entity.BlockProps) *Snapshot {
	return s.update(func(d *draft) bool {
		return d.mutateBlock(pageId, blockId, func(p *entity.Page, b *entity.Block) bool {
			if props == nil || props.BlockType() != b.Type {
				return false
			}
			b.Props = props
			p.UpdatedAt = s.now()
			return true
		})
	})
}

func (s *WorkspaceStore) DeleteBlock(pageId, blockId string) *Snapshot {
	return s.update(func(d *draft) bool {
		return d.mutatePage(pageId, func(p *entity.Page) bool {
			i := p.BlockIndex(blockId)
			if i < 0 {
				return false
			}
			p.Blocks = append(p.Blocks[:i], p.Blocks[i+1:]...)
			p.UpdatedAt = s.now()
			return true
		})
	})
}

func (s *WorkspaceStore) MoveBlock(pageId, blockId string, direction entity.MoveDirection) *Snapshot {
	return s.update(func(d *draft) bool {
		return d.mutatePage(pageId, func(p *entity.Page) bool {
			i := p.BlockIndex(blockId)
			if i < 0 {
				return false
			}
			j := i + 1
			if direction == entity.MoveUp {
				j = i - 1
			}
			if j < 0 || j >= len(p.Blocks) {
				return false
			}
			p.Blocks[i], p.Blocks[j] = p.Blocks[j], p.Blocks[i]
			p.UpdatedAt = s.now()
			return true
		})
	})
}

func (s *WorkspaceStore) ToggleTodo(pageId, blockId string) *Snapshot {
	return s.update(func(d *draft) bool {
		return d.mutateBlock(pageId, blockId, func(p *entity.Page, b *entity.Block) bool {
			if b.Type != entity.BlockTypeTodo {
				return false
			}
			b.Props = entity.TodoProps{Checked: !b.Checked()}
			p.UpdatedAt = s.now()
			return true
		})
	})
}

// UI state

func (s *WorkspaceStore) SetSearchQuery(query string) *Snapshot {
	return s.update(func(d *draft) bool {
		if d.searchQuery == query {
			return false
		}
		d.searchQuery = query
		return true
	})
}

func (s *WorkspaceStore) ToggleSidebar() *Snapshot {
	return s.update(func(d *draft) bool {
		d.sidebarCollapsed = !d.sidebarCollapsed
		return true
	})
}
