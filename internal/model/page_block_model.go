package model

import (
	"gorm.io/datatypes"
)

// PageBlock ids are only unique within their page.
type PageBlock struct {
	PageId     string         `gorm:"type:varchar(64);primaryKey"`
	Id         string         `gorm:"type:varchar(64);primaryKey"`
	Position   int            `gorm:"not null;default:0"`
	Type       string         `gorm:"type:varchar(32);not null"`
	Content    string         `gorm:"type:text"`
	Properties datatypes.JSON `gorm:"type:jsonb"`
}

func (PageBlock) TableName() string {
	return "page_blocks"
}
