package entity

import (
	"strings"
	"time"
)

const (
	DefaultPageTitle = "Untitled"
	DefaultPageIcon  = "📄"
)

type Page struct {
	Id           string
	Title        string
	Icon         string
	Description  string
	Color        string
	Blocks       []Block
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastViewedAt *time.Time
	ParentId     *string
	IsPrivate    bool
	IsFavorite   bool
	Tags         []string
}

// Clone returns a deep copy. Pages inside a published snapshot are shared
// between snapshots and must only be changed through a clone.
func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	c := *p
	c.Blocks = append([]Block(nil), p.Blocks...)
	c.Tags = append([]string(nil), p.Tags...)
	if p.ParentId != nil {
		parent := *p.ParentId
		c.ParentId = &parent
	}
	if p.LastViewedAt != nil {
		viewed := *p.LastViewedAt
		c.LastViewedAt = &viewed
	}
	return &c
}

func (p *Page) BlockIndex(blockId string) int {
	for i, b := range p.Blocks {
		if b.Id == blockId {
			return i
		}
	}
	return -1
}

func (p *Page) HasParent(parentId string) bool {
	return p.ParentId != nil && *p.ParentId == parentId
}

func (p *Page) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Matches reports whether the title or any block content contains query,
// ignoring case. An empty query matches every page.
func (p *Page) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Title), q) {
		return true
	}
	for _, b := range p.Blocks {
		if strings.Contains(strings.ToLower(b.Content), q) {
			return true
		}
	}
	return false
}
