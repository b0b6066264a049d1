package contract

import (
	"context"

	"notecraft-be/internal/entity"
	"notecraft-be/internal/repository/specification"
)

type PageRepository interface {
	// Save upserts the page and replaces its blocks.
	Save(ctx context.Context, page *entity.Page, position int) error
	Delete(ctx context.Context, id string) error
	// Reorder rewrites the position column to match the order of ids.
	Reorder(ctx context.Context, ids []string) error
	DeleteAllUnscoped(ctx context.Context) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Page, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Page, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
