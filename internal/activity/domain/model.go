// Package domain contains core types for the activity service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Type classifies a customer touchpoint.
type Type string

const (
	TypeVisit        Type = "visit"
	TypeCall         Type = "call"
	TypePresentation Type = "presentation"
	TypeFollowUp     Type = "follow_up"
)

func (t Type) Valid() bool {
	switch t {
	case TypeVisit, TypeCall, TypePresentation, TypeFollowUp:
		return true
	}
	return false
}

// Activity is a logged customer touchpoint owned by one user.
type Activity struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	UserID       snowflake.ID `gorm:"column:user_id;not null;index"`
	CustomerName string       `gorm:"column:customer_name;type:text;not null"`
	Type         Type         `gorm:"column:activity_type;type:text;not null"`
	Notes        string       `gorm:"column:notes;type:text"`
	OccurredAt   time.Time    `gorm:"column:occurred_at;not null;index"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Activity) TableName() string { return "activities" }
