// Package domain contains core types for the notification service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Notification is a per-user inbox entry.
type Notification struct {
	ID        snowflake.ID      `gorm:"primaryKey"`
	UserID    snowflake.ID      `gorm:"column:user_id;not null;index"`
	Title     string            `gorm:"column:title;type:text;not null"`
	Body      string            `gorm:"column:body;type:text"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	ReadAt    *time.Time        `gorm:"column:read_at"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Notification) TableName() string { return "notifications" }
