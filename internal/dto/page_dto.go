package dto

import (
	"time"
)

type CreatePageRequest struct {
	Title    string `json:"title" validate:"max=255"`
	ParentId string `json:"parent_id"`
}

type CreatePageResponse struct {
	Id string `json:"id"`
}

// UpdatePageRequest is a partial update; nil fields are left alone.
type UpdatePageRequest struct {
	Id          string
	Title       *string   `json:"title" validate:"omitempty,max=255"`
	Icon        *string   `json:"icon" validate:"omitempty,max=16"`
	Description *string   `json:"description" validate:"omitempty,max=1000"`
	Color       *string   `json:"color"`
	Tags        *[]string `json:"tags" validate:"omitempty,max=50,dive,max=64"`
}

type MovePageRequest struct {
	Id       string
	ParentId string `json:"parent_id"`
}

type ImportPageRequest struct {
	Title    string `json:"title" validate:"max=255"`
	ParentId string `json:"parent_id"`
	Markdown string `json:"markdown" validate:"required"`
}

type ExportPageResponse struct {
	Id       string `json:"id"`
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
}

type PageResponse struct {
	Id           string          `json:"id"`
	Title        string          `json:"title"`
	Icon         string          `json:"icon"`
	Description  string          `json:"description"`
	Color        string          `json:"color"`
	Blocks       []BlockResponse `json:"blocks"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	LastViewedAt *time.Time      `json:"last_viewed_at"`
	ParentId     *string         `json:"parent_id"`
	IsPrivate    bool            `json:"is_private"`
	IsFavorite   bool            `json:"is_favorite"`
	Tags         []string        `json:"tags"`
}

// PageSummaryResponse is the list form of a page, without blocks.
type PageSummaryResponse struct {
	Id           string     `json:"id"`
	Title        string     `json:"title"`
	Icon         string     `json:"icon"`
	Color        string     `json:"color"`
	ParentId     *string    `json:"parent_id"`
	IsFavorite   bool       `json:"is_favorite"`
	Tags         []string   `json:"tags"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastViewedAt *time.Time `json:"last_viewed_at"`
}

// BreadcrumbItem is one ancestor on the path from the root to a page.
type BreadcrumbItem struct {
	Id    string `json:"id"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

type PageTreeResponse struct {
	Id         string             `json:"id"`
	Title      string             `json:"title"`
	Icon       string             `json:"icon"`
	Color      string             `json:"color"`
	IsFavorite bool               `json:"is_favorite"`
	Children   []PageTreeResponse `json:"children"`
}
