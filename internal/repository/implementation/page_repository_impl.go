package implementation

import (
	"context"
	"errors"

	"notecraft-be/internal/entity"
	"notecraft-be/internal/mapper"
	"notecraft-be/internal/model"
	"notecraft-be/internal/repository/contract"
	"notecraft-be/internal/repository/scope"
	"notecraft-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PageMapper
}

func NewPageRepository(db *gorm.DB) contract.PageRepository {
	return &PageRepositoryImpl{
		db:     db,
		mapper: mapper.NewPageMapper(),
	}
}

func (r *PageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Save runs inside the caller's transaction when there is one. A page that
// was soft deleted earlier is revived by the upsert.
func (r *PageRepositoryImpl) Save(ctx context.Context, page *entity.Page, position int) error {
	m := r.mapper.ToModel(page, position)
	blocks := m.Blocks
	m.Blocks = nil

	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}

	if err := db.Where("page_id = ?", m.Id).Delete(&model.PageBlock{}).Error; err != nil {
		return err
	}
	if len(blocks) == 0 {
		return nil
	}
	return db.CreateInBatches(blocks, 200).Error
}

// Delete soft deletes the page row. Blocks stay until the page is saved
// again or purged.
func (r *PageRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Page{}, "id = ?", id).Error
}

func (r *PageRepositoryImpl) Reorder(ctx context.Context, ids []string) error {
	db := r.db.WithContext(ctx)
	for i, id := range ids {
		if err := db.Model(&model.Page{}).Where("id = ? AND position <> ?", id, i).Update("position", i).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *PageRepositoryImpl) DeleteAllUnscoped(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("1 = 1").Delete(&model.PageBlock{}).Error; err != nil {
		return err
	}
	return db.Scopes(scope.WithSoftDelete).Where("1 = 1").Delete(&model.Page{}).Error
}

func (r *PageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Page, error) {
	var m model.Page
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Page, error) {
	var models []*model.Page
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Page{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
