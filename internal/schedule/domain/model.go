// Package domain contains core types for the schedule service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Schedule books a collaborator (typically presales) for a customer
// engagement window.
type Schedule struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	OwnerID        snowflake.ID `gorm:"column:owner_id;not null;index"`
	CollaboratorID snowflake.ID `gorm:"column:collaborator_id;not null;index"`
	Title          string       `gorm:"column:title;type:text;not null"`
	CustomerName   string       `gorm:"column:customer_name;type:text"`
	StartAt        time.Time    `gorm:"column:start_at;not null;index"`
	EndAt          time.Time    `gorm:"column:end_at;not null"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Schedule) TableName() string { return "schedules" }
