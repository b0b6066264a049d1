package contract

import (
	"context"

	"notecraft-be/internal/model"
)

type WorkspaceStateRepository interface {
	Get(ctx context.Context) (*model.WorkspaceState, error)
	Save(ctx context.Context, state *model.WorkspaceState) error
}
