package service

import (
	"context"

	"notecraft-be/internal/dto"
	"notecraft-be/internal/mapper"
	"notecraft-be/internal/pkg/apperror"
	"notecraft-be/internal/repository/memory"
	"notecraft-be/pkg/events"
	"notecraft-be/pkg/markdown"
)

type IDocumentService interface {
	Export(ctx context.Context, id string) (*dto.ExportPageResponse, error)
	Import(ctx context.Context, req *dto.ImportPageRequest) (*dto.PageResponse, error)
}

type documentService struct {
	store        *memory.WorkspaceStore
	eventService IEventService
	renderer     *markdown.Renderer
	importer     *markdown.Importer
	mapper       *mapper.PageMapper
}

func NewDocumentService(store *memory.WorkspaceStore, eventService IEventService) IDocumentService {
	return &documentService{
		store:        store,
		eventService: eventService,
		renderer:     markdown.NewRenderer(),
		importer:     markdown.NewImporter(),
		mapper:       mapper.NewPageMapper(),
	}
}

func (s *documentService) Export(ctx context.Context, id string) (*dto.ExportPageResponse, error) {
	page := s.store.Snapshot().Page(id)
	if page == nil {
		return nil, apperror.ErrPageNotFound
	}
	return &dto.ExportPageResponse{
		Id:       page.Id,
		Title:    page.Title,
		Markdown: s.renderer.Render(page),
	}, nil
}

// Import creates a new page from a Markdown document.
func (s *documentService) Import(ctx context.Context, req *dto.ImportPageRequest) (*dto.PageResponse, error) {
	doc := s.importer.Import(req.Title, req.Markdown)

	before := s.store.Snapshot()
	id, after, err := s.store.CreatePageWithBlocks(doc.Title, req.ParentId, doc.Blocks)
	if err != nil {
		return nil, storeError(err)
	}
	s.eventService.Record(ctx, events.PageCreated, "", before, after)

	page := after.Page(id)
	if page == nil {
		return nil, apperror.ErrPageNotFound
	}
	return s.mapper.ToResponse(page), nil
}
