package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"notecraft-be/internal/dto"
	"notecraft-be/internal/entity"
	"notecraft-be/internal/mapper"
	"notecraft-be/internal/pkg/apperror"
	"notecraft-be/internal/pkg/logger"
	"notecraft-be/internal/repository/memory"
	"notecraft-be/internal/repository/specification"
	"notecraft-be/internal/repository/unitofwork"
	"notecraft-be/internal/seed"
	"notecraft-be/pkg/events"
	"notecraft-be/pkg/search"
)

type IWorkspaceService interface {
	// Load fills the store at boot from the database, or from the seed
	// workspace when the database is absent or empty.
	Load(ctx context.Context) error

	State(ctx context.Context) dto.WorkspaceStateResponse
	SetSearchQuery(ctx context.Context, req *dto.SetSearchQueryRequest) *dto.SearchResultResponse
	ToggleSidebar(ctx context.Context) dto.SidebarResponse
	Current(ctx context.Context) (*dto.PageResponse, error)
	SetCurrent(ctx context.Context, req *dto.SetCurrentPageRequest) (*dto.PageResponse, error)
	Recent(ctx context.Context) []dto.PageSummaryResponse
	Favorites(ctx context.Context) []dto.PageSummaryResponse
	Tags(ctx context.Context) []string
	Tree(ctx context.Context) []dto.PageTreeResponse
	Search(ctx context.Context, query string) *dto.SearchResultResponse
	Palette(ctx context.Context, query string) []dto.PaletteCommandResponse
	BlockTypes(ctx context.Context) []dto.BlockTypeResponse
	Colors(ctx context.Context) []dto.PageColorResponse
}

type WorkspaceOptions struct {
	SeedFile    string
	RecentLimit int
	CacheTTL    time.Duration
}

type workspaceService struct {
	store        *memory.WorkspaceStore
	uowFactory   unitofwork.RepositoryFactory
	eventService IEventService
	cache        *memory.SearchCache
	logger       logger.ILogger
	mapper       *mapper.PageMapper
	opts         WorkspaceOptions
	now          func() time.Time
}

// NewWorkspaceService takes a nil uowFactory when the workspace is kept in
// memory only.
func NewWorkspaceService(
	store *memory.WorkspaceStore,
	uowFactory unitofwork.RepositoryFactory,
	eventService IEventService,
	log logger.ILogger,
	opts WorkspaceOptions,
) IWorkspaceService {
	return &workspaceService{
		store:        store,
		uowFactory:   uowFactory,
		eventService: eventService,
		cache:        memory.NewSearchCache(opts.CacheTTL),
		logger:       log,
		mapper:       mapper.NewPageMapper(),
		opts:         opts,
		now:          time.Now,
	}
}

func (s *workspaceService) Load(ctx context.Context) error {
	if s.uowFactory != nil {
		loaded, err := s.loadPersisted(ctx)
		if err != nil {
			return err
		}
		if loaded {
			return nil
		}
	}

	ws, err := seed.LoadFile(s.opts.SeedFile, s.now())
	if err != nil {
		return err
	}
	before := s.store.Snapshot()
	after := s.store.Replace(ws.Pages, ws.CurrentPageId)
	s.logger.Info("WorkspaceService", "Workspace seeded", map[string]interface{}{"pages": after.Len()})
	// A replace event lets the persistence consumer write the seed.
	s.eventService.Record(ctx, events.WorkspaceReplaced, "", before, after)
	return nil
}

func (s *workspaceService) loadPersisted(ctx context.Context) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pages, err := uow.PageRepository().FindAll(ctx, specification.InStoreOrder{}, specification.WithBlocks{})
	if err != nil {
		return false, fmt.Errorf("load pages: %w", err)
	}
	if len(pages) == 0 {
		return false, nil
	}

	state, err := uow.WorkspaceStateRepository().Get(ctx)
	if err != nil {
		return false, fmt.Errorf("load workspace state: %w", err)
	}

	currentPageId := ""
	if state != nil && state.CurrentPageId != nil {
		currentPageId = *state.CurrentPageId
	}
	snap := s.store.Replace(pages, currentPageId)
	if state != nil && state.SidebarCollapsed != snap.SidebarCollapsed {
		s.store.ToggleSidebar()
	}

	s.logger.Info("WorkspaceService", "Workspace loaded from database", map[string]interface{}{"pages": snap.Len()})
	return true, nil
}

func (s *workspaceService) State(ctx context.Context) dto.WorkspaceStateResponse {
	snap := s.store.Snapshot()
	return dto.WorkspaceStateResponse{
		Version:          snap.Version,
		CurrentPageId:    snap.CurrentPageId,
		SearchQuery:      snap.SearchQuery,
		SidebarCollapsed: snap.SidebarCollapsed,
		PageCount:        snap.Len(),
	}
}

func (s *workspaceService) SetSearchQuery(ctx context.Context, req *dto.SetSearchQueryRequest) *dto.SearchResultResponse {
	before := s.store.Snapshot()
	after := s.store.SetSearchQuery(req.Query)
	s.eventService.Record(ctx, events.WorkspaceUpdated, "", before, after)

	return &dto.SearchResultResponse{
		Query: after.SearchQuery,
		Pages: s.mapper.ToSummaries(after.FilteredPages()),
	}
}

func (s *workspaceService) ToggleSidebar(ctx context.Context) dto.SidebarResponse {
	before := s.store.Snapshot()
	after := s.store.ToggleSidebar()
	s.eventService.Record(ctx, events.WorkspaceUpdated, "", before, after)
	return dto.SidebarResponse{Collapsed: after.SidebarCollapsed}
}

func (s *workspaceService) Current(ctx context.Context) (*dto.PageResponse, error) {
	page := s.store.Snapshot().CurrentPage()
	if page == nil {
		return nil, apperror.ErrPageNotFound
	}
	return s.mapper.ToResponse(page), nil
}

func (s *workspaceService) SetCurrent(ctx context.Context, req *dto.SetCurrentPageRequest) (*dto.PageResponse, error) {
	before := s.store.Snapshot()
	if before.Page(req.PageId) == nil {
		return nil, apperror.ErrPageNotFound
	}
	after := s.store.SetCurrentPage(req.PageId)
	s.eventService.Record(ctx, events.PageViewed, "", before, after)

	page := after.Page(req.PageId)
	if page == nil {
		return nil, apperror.ErrPageNotFound
	}
	return s.mapper.ToResponse(page), nil
}

func (s *workspaceService) Recent(ctx context.Context) []dto.PageSummaryResponse {
	return s.mapper.ToSummaries(s.store.Snapshot().RecentPages(s.opts.RecentLimit))
}

func (s *workspaceService) Favorites(ctx context.Context) []dto.PageSummaryResponse {
	return s.mapper.ToSummaries(s.store.Snapshot().FavoritePages())
}

func (s *workspaceService) Tags(ctx context.Context) []string {
	return s.store.Snapshot().AllTags()
}

func (s *workspaceService) Tree(ctx context.Context) []dto.PageTreeResponse {
	return s.mapper.ToTree(s.store.Snapshot().Tree())
}

func (s *workspaceService) Search(ctx context.Context, query string) *dto.SearchResultResponse {
	snap := s.store.Snapshot()
	filters := search.ParseQuery(query)
	// Date windows move with the clock, so only their absence makes a result
	// a function of the snapshot alone.
	cacheable := filters.Date == search.DateAll

	var pages []*entity.Page
	var ok bool
	if cacheable {
		pages, ok = s.cache.Get(snap.Version, query)
	}
	if !ok {
		pages = snap.Search(filters, s.now())
		if cacheable {
			s.cache.Save(snap.Version, query, pages)
		}
	}
	return &dto.SearchResultResponse{
		Query: query,
		Pages: s.mapper.ToSummaries(pages),
	}
}

// Palette lists the "New Page" command followed by one navigation entry per
// page, keeping those whose title or description contains query.
func (s *workspaceService) Palette(ctx context.Context, query string) []dto.PaletteCommandResponse {
	snap := s.store.Snapshot()
	commands := make([]entity.PaletteCommand, 0, snap.Len()+1)
	commands = append(commands, entity.PaletteCommand{
		Id:          "new-page",
		Kind:        entity.PaletteCreatePage,
		Title:       "New Page",
		Description: "Create a new page",
		Group:       "Pages",
	})
	for _, p := range snap.Pages {
		commands = append(commands, entity.PaletteCommand{
			Id:          "page-" + p.Id,
			Kind:        entity.PaletteNavigate,
			Title:       p.Title,
			Description: "Navigate to page",
			Group:       "Navigate",
			PageId:      p.Id,
		})
	}

	q := strings.ToLower(query)
	res := make([]dto.PaletteCommandResponse, 0, len(commands))
	for _, cmd := range commands {
		if !strings.Contains(strings.ToLower(cmd.Title), q) && !strings.Contains(strings.ToLower(cmd.Description), q) {
			continue
		}
		res = append(res, dto.PaletteCommandResponse{
			Id:          cmd.Id,
			Kind:        string(cmd.Kind),
			Title:       cmd.Title,
			Description: cmd.Description,
			Group:       cmd.Group,
			PageId:      cmd.PageId,
		})
	}
	return res
}

func (s *workspaceService) BlockTypes(ctx context.Context) []dto.BlockTypeResponse {
	res := make([]dto.BlockTypeResponse, len(entity.BlockCatalog))
	for i, info := range entity.BlockCatalog {
		res[i] = dto.BlockTypeResponse{
			Type:        string(info.Type),
			Label:       info.Label,
			Description: info.Description,
		}
	}
	return res
}

func (s *workspaceService) Colors(ctx context.Context) []dto.PageColorResponse {
	res := make([]dto.PageColorResponse, len(entity.PageColors))
	for i, c := range entity.PageColors {
		res[i] = dto.PageColorResponse{Name: c.Name, Value: c.Value}
	}
	return res
}
