package memory

import (
	"sort"

	"notecraft-be/internal/entity"
)

const DefaultRecentLimit = 5

// Snapshot is an immutable view of the workspace. Pages are shared with
// later snapshots, so callers must treat every reachable value as read-only.
type Snapshot struct {
	Version          uint64
	Pages            []*entity.Page
	CurrentPageId    *string
	SearchQuery      string
	SidebarCollapsed bool

	index    map[string]int
	children map[string][]int
}

func newSnapshot(version uint64, pages []*entity.Page, currentPageId *string, searchQuery string, sidebarCollapsed bool) *Snapshot {
	s := &Snapshot{
		Version:          version,
		Pages:            pages,
		CurrentPageId:    currentPageId,
		SearchQuery:      searchQuery,
		SidebarCollapsed: sidebarCollapsed,
		index:            make(map[string]int, len(pages)),
		children:         make(map[string][]int),
	}
	for i, p := range pages {
		s.index[p.Id] = i
		if p.ParentId != nil {
			s.children[*p.ParentId] = append(s.children[*p.ParentId], i)
		}
	}
	return s
}

func (s *Snapshot) Len() int {
	return len(s.Pages)
}

func (s *Snapshot) Page(id string) *entity.Page {
	if i, ok := s.index[id]; ok {
		return s.Pages[i]
	}
	return nil
}

// IndexOf returns the page's position in store order, or -1.
func (s *Snapshot) IndexOf(id string) int {
	if i, ok := s.index[id]; ok {
		return i
	}
	return -1
}

func (s *Snapshot) Block(pageId, blockId string) *entity.Block {
	p := s.Page(pageId)
	if p == nil {
		return nil
	}
	if i := p.BlockIndex(blockId); i >= 0 {
		b := p.Blocks[i]
		return &b
	}
	return nil
}

func (s *Snapshot) CurrentPage() *entity.Page {
	if s.CurrentPageId == nil {
		return nil
	}
	return s.Page(*s.CurrentPageId)
}

// FilteredPages applies the snapshot's own search query.
func (s *Snapshot) FilteredPages() []*entity.Page {
	return s.FilterPages(s.SearchQuery)
}

func (s *Snapshot) FilterPages(query string) []*entity.Page {
	if query == "" {
		return s.Pages
	}
	result := make([]*entity.Page, 0)
	for _, p := range s.Pages {
		if p.Matches(query) {
			result = append(result, p)
		}
	}
	return result
}

func (s *Snapshot) PageChildren(pageId string) []*entity.Page {
	result := make([]*entity.Page, 0, len(s.children[pageId]))
	for _, i := range s.children[pageId] {
		result = append(result, s.Pages[i])
	}
	return result
}

// RecentPages returns viewed pages, most recently viewed first.
func (s *Snapshot) RecentPages(limit int) []*entity.Page {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	viewed := make([]*entity.Page, 0, len(s.Pages))
	for _, p := range s.Pages {
		if p.LastViewedAt != nil {
			viewed = append(viewed, p)
		}
	}
	sort.SliceStable(viewed, func(i, j int) bool {
		return viewed[i].LastViewedAt.After(*viewed[j].LastViewedAt)
	})
	if len(viewed) > limit {
		viewed = viewed[:limit]
	}
	return viewed
}

func (s *Snapshot) FavoritePages() []*entity.Page {
	result := make([]*entity.Page, 0)
	for _, p := range s.Pages {
		if p.IsFavorite {
			result = append(result, p)
		}
	}
	return result
}

func (s *Snapshot) AllTags() []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, p := range s.Pages {
		for _, t := range p.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	sort.Strings(tags)
	return tags
}

// Breadcrumb returns the ancestors of a page, root first. The page itself
// is not included.
func (s *Snapshot) Breadcrumb(pageId string) []*entity.Page {
	p := s.Page(pageId)
	if p == nil {
		return nil
	}
	var path []*entity.Page
	visited := map[string]bool{pageId: true}
	for p.ParentId != nil {
		parent := s.Page(*p.ParentId)
		if parent == nil || visited[parent.Id] {
			break
		}
		visited[parent.Id] = true
		path = append([]*entity.Page{parent}, path...)
		p = parent
	}
	return path
}

// Tree nests pages under their parents; roots keep store order.
func (s *Snapshot) Tree() []*entity.PageTreeNode {
	roots := make([]*entity.PageTreeNode, 0)
	for _, p := range s.Pages {
		if p.ParentId == nil || s.Page(*p.ParentId) == nil {
			roots = append(roots, s.subtree(p, map[string]bool{}))
		}
	}
	return roots
}

func (s *Snapshot) subtree(p *entity.Page, visited map[string]bool) *entity.PageTreeNode {
	visited[p.Id] = true
	node := &entity.PageTreeNode{Page: p, Children: make([]*entity.PageTreeNode, 0)}
	for _, child := range s.PageChildren(p.Id) {
		if visited[child.Id] {
			continue
		}
		node.Children = append(node.Children, s.subtree(child, visited))
	}
	return node
}

// draft is the mutable working copy a store update operates on.
type draft struct {
	base             *Snapshot
	pages            []*entity.Page
	currentPageId    *string
	searchQuery      string
	sidebarCollapsed bool
	reindexed        bool
}

func (s *Snapshot) draft() *draft {
	return &draft{
		base:             s,
		pages:            append([]*entity.Page(nil), s.Pages...),
		currentPageId:    s.CurrentPageId,
		searchQuery:      s.SearchQuery,
		sidebarCollapsed: s.SidebarCollapsed,
	}
}

func (d *draft) indexOf(id string) int {
	if !d.reindexed {
		if i, ok := d.base.index[id]; ok {
			return i
		}
		return -1
	}
	for i, p := range d.pages {
		if p.Id == id {
			return i
		}
	}
	return -1
}

// mutatePage applies fn to a clone of the page and swaps the clone in when
// fn reports a change.
func (d *draft) mutatePage(id string, fn func(p *entity.Page) bool) bool {
	i := d.indexOf(id)
	if i < 0 {
		return false
	}
	clone := d.pages[i].Clone()
	if !fn(clone) {
		return false
	}
	d.pages[i] = clone
	return true
}

// mutateBlock is mutatePage narrowed to one block; the page's UpdatedAt is
// left to fn.
func (d *draft) mutateBlock(pageId, blockId string, fn func(p *entity.Page, b *entity.Block) bool) bool {
	return d.mutatePage(pageId, func(p *entity.Page) bool {
		i := p.BlockIndex(blockId)
		if i < 0 {
			return false
		}
		return fn(p, &p.Blocks[i])
	})
}

func (d *draft) setPages(pages []*entity.Page) {
	d.pages = pages
	d.reindexed = true
}

func (d *draft) build(version uint64) *Snapshot {
	return newSnapshot(version, d.pages, d.currentPageId, d.searchQuery, d.sidebarCollapsed)
}
