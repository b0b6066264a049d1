package scope

import "gorm.io/gorm"

// WithSoftDelete includes soft deleted rows.
func WithSoftDelete(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}
