package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Page timestamps come from the store, so gorm must not overwrite them.
type Page struct {
	Id           string                      `gorm:"type:varchar(64);primaryKey"`
	Title        string                      `gorm:"type:varchar(255);not null"`
	Icon         string                      `gorm:"type:varchar(16)"`
	Description  string                      `gorm:"type:text"`
	Color        string                      `gorm:"type:varchar(16)"`
	ParentId     *string                     `gorm:"type:varchar(64);index"`
	Position     int                         `gorm:"not null;default:0;index"`
	IsPrivate    bool                        `gorm:"not null;default:false"`
	IsFavorite   bool                        `gorm:"not null;default:false"`
	Tags         datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	LastViewedAt *time.Time
	CreatedAt    time.Time      `gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime:false"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
	Blocks       []PageBlock    `gorm:"foreignKey:PageId;constraint:OnDelete:CASCADE"`
}

func (Page) TableName() string {
	return "pages"
}
