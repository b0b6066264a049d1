package implementation

import (
	"context"
	"errors"

	"notecraft-be/internal/model"
	"notecraft-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const workspaceStateRowId = 1

type WorkspaceStateRepositoryImpl struct {
	db *gorm.DB
}

func NewWorkspaceStateRepository(db *gorm.DB) contract.WorkspaceStateRepository {
	return &WorkspaceStateRepositoryImpl{db: db}
}

// Get returns nil, nil before the first save.
func (r *WorkspaceStateRepositoryImpl) Get(ctx context.Context) (*model.WorkspaceState, error) {
	var m model.WorkspaceState
	if err := r.db.WithContext(ctx).First(&m, workspaceStateRowId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *WorkspaceStateRepositoryImpl) Save(ctx context.Context, state *model.WorkspaceState) error {
	state.Id = workspaceStateRowId
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(state).Error
}
