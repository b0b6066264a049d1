package model

import "time"

// WorkspaceState is a single row holding the UI state that outlives a restart.
type WorkspaceState struct {
	Id               int     `gorm:"primaryKey"`
	CurrentPageId    *string `gorm:"type:varchar(64)"`
	SidebarCollapsed bool    `gorm:"not null;default:false"`
	Version          uint64  `gorm:"not null;default:0"`
	UpdatedAt        time.Time
}

func (WorkspaceState) TableName() string {
	return "workspace_state"
}
