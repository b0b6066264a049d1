package mapper

import (
	"sort"

	"notecraft-be/internal/dto"
	"notecraft-be/internal/entity"
	"notecraft-be/internal/model"

	"gorm.io/datatypes"
)

type PageMapper struct {
	blocks *BlockMapper
}

func NewPageMapper() *PageMapper {
	return &PageMapper{blocks: NewBlockMapper()}
}

func (m *PageMapper) ToModel(p *entity.Page, position int) *model.Page {
	if p == nil {
		return nil
	}

	blocks := make([]model.PageBlock, len(p.Blocks))
	for i, b := range p.Blocks {
		blocks[i] = m.blocks.ToModel(p.Id, i, b)
	}

	return &model.Page{
		Id:           p.Id,
		Title:        p.Title,
		Icon:         p.Icon,
		Description:  p.Description,
		Color:        p.Color,
		ParentId:     p.ParentId,
		Position:     position,
		IsPrivate:    p.IsPrivate,
		IsFavorite:   p.IsFavorite,
		Tags:         datatypes.JSONSlice[string](append([]string{}, p.Tags...)),
		LastViewedAt: p.LastViewedAt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Blocks:       blocks,
	}
}

func (m *PageMapper) ToEntity(p *model.Page) *entity.Page {
	if p == nil {
		return nil
	}

	rows := append([]model.PageBlock(nil), p.Blocks...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })
	blocks := make([]entity.Block, len(rows))
	for i := range rows {
		blocks[i] = m.blocks.ToEntity(&rows[i])
	}

	tags := []string{}
	if p.Tags != nil {
		tags = append(tags, p.Tags...)
	}

	return &entity.Page{
		Id:           p.Id,
		Title:        p.Title,
		Icon:         p.Icon,
		Description:  p.Description,
		Color:        p.Color,
		Blocks:       blocks,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		LastViewedAt: p.LastViewedAt,
		ParentId:     p.ParentId,
		IsPrivate:    p.IsPrivate,
		IsFavorite:   p.IsFavorite,
		Tags:         tags,
	}
}

func (m *PageMapper) ToEntities(models []*model.Page) []*entity.Page {
	pages := make([]*entity.Page, len(models))
	for i, p := range models {
		pages[i] = m.ToEntity(p)
	}
	return pages
}

func (m *PageMapper) ToResponse(p *entity.Page) *dto.PageResponse {
	if p == nil {
		return nil
	}
	return &dto.PageResponse{
		Id:           p.Id,
		Title:        p.Title,
		Icon:         p.Icon,
		Description:  p.Description,
		Color:        p.Color,
		Blocks:       m.blocks.ToResponses(p.Blocks),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		LastViewedAt: p.LastViewedAt,
		ParentId:     p.ParentId,
		IsPrivate:    p.IsPrivate,
		IsFavorite:   p.IsFavorite,
		Tags:         nonNilTags(p.Tags),
	}
}

func (m *PageMapper) ToSummary(p *entity.Page) dto.PageSummaryResponse {
	return dto.PageSummaryResponse{
		Id:           p.Id,
		Title:        p.Title,
		Icon:         p.Icon,
		Color:        p.Color,
		ParentId:     p.ParentId,
		IsFavorite:   p.IsFavorite,
		Tags:         nonNilTags(p.Tags),
		UpdatedAt:    p.UpdatedAt,
		LastViewedAt: p.LastViewedAt,
	}
}

func (m *PageMapper) ToSummaries(pages []*entity.Page) []dto.PageSummaryResponse {
	res := make([]dto.PageSummaryResponse, len(pages))
	for i, p := range pages {
		res[i] = m.ToSummary(p)
	}
	return res
}

func (m *PageMapper) ToBreadcrumb(pages []*entity.Page) []dto.BreadcrumbItem {
	res := make([]dto.BreadcrumbItem, len(pages))
	for i, p := range pages {
		res[i] = dto.BreadcrumbItem{Id: p.Id, Title: p.Title, Icon: p.Icon}
	}
	return res
}

func (m *PageMapper) ToTree(nodes []*entity.PageTreeNode) []dto.PageTreeResponse {
	res := make([]dto.PageTreeResponse, len(nodes))
	for i, n := range nodes {
		res[i] = dto.PageTreeResponse{
			Id:         n.Page.Id,
			Title:      n.Page.Title,
			Icon:       n.Page.Icon,
			Color:      n.Page.Color,
			IsFavorite: n.Page.IsFavorite,
			Children:   m.ToTree(n.Children),
		}
	}
	return res
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
