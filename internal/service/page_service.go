package service

import (
	"context"
	"errors"

	"notecraft-be/internal/dto"
	"notecraft-be/internal/entity"
	"notecraft-be/internal/mapper"
	"notecraft-be/internal/pkg/apperror"
	"notecraft-be/internal/repository/memory"
	"notecraft-be/pkg/events"
)

type IPageService interface {
	GetFiltered(ctx context.Context) []dto.PageSummaryResponse
	Create(ctx context.Context, req *dto.CreatePageRequest) (*dto.CreatePageResponse, error)
	Show(ctx context.Context, id string) (*dto.PageResponse, error)
	Update(ctx context.Context, req *dto.UpdatePageRequest) (*dto.PageResponse, error)
	Delete(ctx context.Context, id string) error
	ToggleFavorite(ctx context.Context, id string) (*dto.PageResponse, error)
	Move(ctx context.Context, req *dto.MovePageRequest) (*dto.PageResponse, error)
	View(ctx context.Context, id string) (*dto.PageResponse, error)
	Children(ctx context.Context, id string) ([]dto.PageSummaryResponse, error)
	Breadcrumb(ctx context.Context, id string) ([]dto.BreadcrumbItem, error)
}

type pageService struct {
	store        *memory.WorkspaceStore
	eventService IEventService
	mapper       *mapper.PageMapper
}

func NewPageService(store *memory.WorkspaceStore, eventService IEventService) IPageService {
	return &pageService{
		store:        store,
		eventService: eventService,
		mapper:       mapper.NewPageMapper(),
	}
}

// storeError maps the store's validation errors onto API errors.
func storeError(err error) error {
	switch {
	case errors.Is(err, memory.ErrParentNotFound):
		return apperror.BadRequest("parent page not found", err)
	case errors.Is(err, memory.ErrPageCycle):
		return apperror.BadRequest("page cannot be moved under itself or its descendants", err)
	}
	return err
}

func (s *pageService) requirePage(id string) (*memory.Snapshot, *entity.Page, error) {
	snap := s.store.Snapshot()
	page := snap.Page(id)
	if page == nil {
		return snap, nil, apperror.ErrPageNotFound
	}
	return snap, page, nil
}

func (s *pageService) pageResponse(snap *memory.Snapshot, id string) (*dto.PageResponse, error) {
	page := snap.Page(id)
	if page == nil {
		return nil, apperror.ErrPageNotFound
	}
	return s.mapper.ToResponse(page), nil
}

func (s *pageService) GetFiltered(ctx context.Context) []dto.PageSummaryResponse {
	return s.mapper.ToSummaries(s.store.Snapshot().FilteredPages())
}

func (s *pageService) Create(ctx context.Context, req *dto.CreatePageRequest) (*dto.CreatePageResponse, error) {
	before := s.store.Snapshot()
	id, after, err := s.store.CreatePage(req.Title, req.ParentId)
	if err != nil {
		return nil, storeError(err)
	}
	s.eventService.Record(ctx, events.PageCreated, "", before, after)

	return &dto.CreatePageResponse{
		Id: id,
	}, nil
}

func (s *pageService) Show(ctx context.Context, id string) (*dto.PageResponse, error) {
	return s.pageResponse(s.store.Snapshot(), id)
}

func (s *pageService) Update(ctx context.Context, req *dto.UpdatePageRequest) (*dto.PageResponse, error) {
	if req.Color != nil && !entity.ValidPageColor(*req.Color) {
		return nil, apperror.BadRequest("unknown page color", nil)
	}
	before, _, err := s.requirePage(req.Id)
	if err != nil {
		return nil, err
	}

	after := before
	if req.Title != nil {
		after = s.store.UpdatePageTitle(req.Id, *req.Title)
	}
	if req.Icon != nil {
		after = s.store.UpdatePageIcon(req.Id, *req.Icon)
	}
	if req.Description != nil {
		after = s.store.UpdatePageDescription(req.Id, *req.Description)
	}
	if req.Color != nil {
		after = s.store.UpdatePageColor(req.Id, *req.Color)
	}
	if req.Tags != nil {
		after = s.store.UpdatePageTags(req.Id, *req.Tags)
	}
	s.eventService.Record(ctx, events.PageUpdated, "", before, after)

	return s.pageResponse(after, req.Id)
}

func (s *pageService) Delete(ctx context.Context, id string) error {
	before, _, err := s.requirePage(id)
	if err != nil {
		return err
	}
	after := s.store.DeletePage(id)
	s.eventService.Record(ctx, events.PageDeleted, "", before, after)
	return nil
}

func (s *pageService) ToggleFavorite(ctx context.Context, id string) (*dto.PageResponse, error) {
	before, _, err := s.requirePage(id)
	if err != nil {
		return nil, err
	}
	after := s.store.TogglePageFavorite(id)
	s.eventService.Record(ctx, events.PageUpdated, "", before, after)
	return s.pageResponse(after, id)
}

func (s *pageService) Move(ctx context.Context, req *dto.MovePageRequest) (*dto.PageResponse, error) {
	before, _, err := s.requirePage(req.Id)
	if err != nil {
		return nil, err
	}
	after, err := s.store.MovePage(req.Id, req.ParentId)
	if err != nil {
		return nil, storeError(err)
	}
	s.eventService.Record(ctx, events.PageMoved, "", before, after)
	return s.pageResponse(after, req.Id)
}

func (s *pageService) View(ctx context.Context, id string) (*dto.PageResponse, error) {
	before, _, err := s.requirePage(id)
	if err != nil {
		return nil, err
	}
	after := s.store.UpdatePageLastViewed(id)
	s.eventService.Record(ctx, events.PageViewed, "", before, after)
	return s.pageResponse(after, id)
}

func (s *pageService) Children(ctx context.Context, id string) ([]dto.PageSummaryResponse, error) {
	snap, _, err := s.requirePage(id)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToSummaries(snap.PageChildren(id)), nil
}

func (s *pageService) Breadcrumb(ctx context.Context, id string) ([]dto.BreadcrumbItem, error) {
	snap, _, err := s.requirePage(id)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToBreadcrumb(snap.Breadcrumb(id)), nil
}
