package specification

import (
	"gorm.io/gorm"
)

// ByParentID matches root pages when ParentID is nil.
type ByParentID struct {
	ParentID *string
}

func (s ByParentID) Apply(db *gorm.DB) *gorm.DB {
	if s.ParentID == nil {
		return db.Where("parent_id IS NULL")
	}
	return db.Where("parent_id = ?", *s.ParentID)
}

type FavoritesOnly struct{}

func (s FavoritesOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_favorite = ?", true)
}

// WithBlocks preloads blocks in page order.
type WithBlocks struct{}

func (s WithBlocks) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Blocks", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	})
}

// InStoreOrder sorts pages the way the workspace lists them.
type InStoreOrder struct{}

func (s InStoreOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC").Order("created_at ASC")
}
