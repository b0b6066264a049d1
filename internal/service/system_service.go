package service

import (
	"context"
	"errors"

	"notecraft-be/internal/dto"
	"notecraft-be/internal/pkg/apperror"
	"notecraft-be/internal/pkg/logger"
	"notecraft-be/internal/repository/memory"
)

// Probe reports whether an optional dependency is reachable.
type Probe func(ctx context.Context) bool

type ISystemService interface {
	Health(ctx context.Context) dto.HealthResponse
	Logs(ctx context.Context, level string, limit, offset int) ([]logger.LogEntry, error)
	Log(ctx context.Context, id string) (*logger.LogEntry, error)
}

type systemService struct {
	store    *memory.WorkspaceStore
	logger   logger.ILogger
	database Probe
	nats     Probe
}

// NewSystemService takes nil probes for dependencies that are not
// configured.
func NewSystemService(store *memory.WorkspaceStore, log logger.ILogger, database, nats Probe) ISystemService {
	return &systemService{
		store:    store,
		logger:   log,
		database: database,
		nats:     nats,
	}
}

func (s *systemService) Health(ctx context.Context) dto.HealthResponse {
	snap := s.store.Snapshot()
	return dto.HealthResponse{
		Status:    "ok",
		Version:   snap.Version,
		PageCount: snap.Len(),
		Database:  s.database != nil && s.database(ctx),
		Nats:      s.nats != nil && s.nats(ctx),
	}
}

func (s *systemService) Logs(ctx context.Context, level string, limit, offset int) ([]logger.LogEntry, error) {
	entries, err := s.logger.GetLogs(level, limit, offset)
	if err != nil {
		return nil, apperror.Unavailable("log file unavailable", err)
	}
	return entries, nil
}

func (s *systemService) Log(ctx context.Context, id string) (*logger.LogEntry, error) {
	entry, err := s.logger.GetLogById(id)
	if errors.Is(err, logger.ErrLogNotFound) {
		return nil, apperror.NotFound("log entry not found")
	}
	if err != nil {
		return nil, apperror.Unavailable("log file unavailable", err)
	}
	return entry, nil
}
