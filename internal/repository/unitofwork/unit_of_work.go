package unitofwork

import (
	"context"

	"notecraft-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	PageRepository() contract.PageRepository
	WorkspaceStateRepository() contract.WorkspaceStateRepository
}
