package service

import (
	"context"

	"notecraft-be/internal/dto"
	"notecraft-be/internal/entity"
	"notecraft-be/internal/mapper"
	"notecraft-be/internal/pkg/apperror"
	"notecraft-be/internal/repository/memory"
	"notecraft-be/pkg/events"
)

type IBlockService interface {
	Add(ctx context.Context, req *dto.AddBlockRequest) (*dto.AddBlockResponse, error)
	Update(ctx context.Context, req *dto.UpdateBlockRequest) (*dto.BlockResponse, error)
	ChangeType(ctx context.Context, req *dto.ChangeBlockTypeRequest) (*dto.BlockResponse, error)
	SetProperties(ctx context.Context, req *dto.SetBlockPropertiesRequest) (*dto.BlockResponse, error)
	Move(ctx context.Context, req *dto.MoveBlockRequest) ([]dto.BlockResponse, error)
	ToggleTodo(ctx context.Context, pageId, blockId string) (*dto.BlockResponse, error)
	Delete(ctx context.Context, pageId, blockId string) error
}

type blockService struct {
	store        *memory.WorkspaceStore
	eventService IEventService
	mapper       *mapper.BlockMapper
}

func NewBlockService(store *memory.WorkspaceStore, eventService IEventService) IBlockService {
	return &blockService{
		store:        store,
		eventService: eventService,
		mapper:       mapper.NewBlockMapper(),
	}
}

func (s *blockService) requireBlock(pageId, blockId string) (*memory.Snapshot, *entity.Block, error) {
	snap := s.store.Snapshot()
	if snap.Page(pageId) == nil {
		return snap, nil, apperror.ErrPageNotFound
	}
	block := snap.Block(pageId, blockId)
	if block == nil {
		return snap, nil, apperror.ErrBlockNotFound
	}
	return snap, block, nil
}

func (s *blockService) blockResponse(snap *memory.Snapshot, pageId, blockId string) (*dto.BlockResponse, error) {
	block := snap.Block(pageId, blockId)
	if block == nil {
		return nil, apperror.ErrBlockNotFound
	}
	res := s.mapper.ToResponse(*block)
	return &res, nil
}

func (s *blockService) Add(ctx context.Context, req *dto.AddBlockRequest) (*dto.AddBlockResponse, error) {
	before := s.store.Snapshot()
	if before.Page(req.PageId) == nil {
		return nil, apperror.ErrPageNotFound
	}

	id, after := s.store.AddBlock(req.PageId, req.AfterBlockId, entity.BlockType(req.Type))
	if id == "" {
		return nil, apperror.ErrPageNotFound
	}
	s.eventService.Record(ctx, events.BlockAdded, id, before, after)

	block, err := s.blockResponse(after, req.PageId, id)
	if err != nil {
		return nil, err
	}
	return &dto.AddBlockResponse{
		Id:    id,
		Block: *block,
	}, nil
}

func (s *blockService) Update(ctx context.Context, req *dto.UpdateBlockRequest) (*dto.BlockResponse, error) {
	before, _, err := s.requireBlock(req.PageId, req.BlockId)
	if err != nil {
		return nil, err
	}
	after := s.store.UpdateBlock(req.PageId, req.BlockId, req.Content)
	s.eventService.Record(ctx, events.BlockUpdated, req.BlockId, before, after)
	return s.blockResponse(after, req.PageId, req.BlockId)
}

func (s *blockService) ChangeType(ctx context.Context, req *dto.ChangeBlockTypeRequest) (*dto.BlockResponse, error) {
	before, _, err := s.requireBlock(req.PageId, req.BlockId)
	if err != nil {
		return nil, err
	}
	after := s.store.ChangeBlockType(req.PageId, req.BlockId, entity.BlockType(req.Type))
	s.eventService.Record(ctx, events.BlockUpdated, req.BlockId, before, after)
	return s.blockResponse(after, req.PageId, req.BlockId)
}

// SetProperties reads the request as the properties of the block's current
// type. Types without properties reject the call.
func (s *blockService) SetProperties(ctx context.Context, req *dto.SetBlockPropertiesRequest) (*dto.BlockResponse, error) {
	before, block, err := s.requireBlock(req.PageId, req.BlockId)
	if err != nil {
		return nil, err
	}
	props := s.mapper.PropsFromDTO(block.Type, &req.Properties)
	if props == nil {
		return nil, apperror.BadRequest("block type "+string(block.Type)+" has no properties", nil)
	}
	after := s.store.SetBlockProperties(req.PageId, req.BlockId, props)
	s.eventService.Record(ctx, events.BlockUpdated, req.BlockId, before, after)
	return s.blockResponse(after, req.PageId, req.BlockId)
}

// Move returns the page's blocks in their new order. Moving past either end
// leaves the order unchanged.
func (s *blockService) Move(ctx context.Context, req *dto.MoveBlockRequest) ([]dto.BlockResponse, error) {
	before, _, err := s.requireBlock(req.PageId, req.BlockId)
	if err != nil {
		return nil, err
	}
	after := s.store.MoveBlock(req.PageId, req.BlockId, entity.MoveDirection(req.Direction))
	s.eventService.Record(ctx, events.BlockMoved, req.BlockId, before, after)

	page := after.Page(req.PageId)
	if page == nil {
		return nil, apperror.ErrPageNotFound
	}
	return s.mapper.ToResponses(page.Blocks), nil
}

func (s *blockService) ToggleTodo(ctx context.Context, pageId, blockId string) (*dto.BlockResponse, error) {
	before, _, err := s.requireBlock(pageId, blockId)
	if err != nil {
		return nil, err
	}
	after := s.store.ToggleTodo(pageId, blockId)
	s.eventService.Record(ctx, events.BlockUpdated, blockId, before, after)
	return s.blockResponse(after, pageId, blockId)
}

func (s *blockService) Delete(ctx context.Context, pageId, blockId string) error {
	before, _, err := s.requireBlock(pageId, blockId)
	if err != nil {
		return err
	}
	after := s.store.DeleteBlock(pageId, blockId)
	s.eventService.Record(ctx, events.BlockDeleted, blockId, before, after)
	return nil
}
