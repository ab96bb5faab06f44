// Package domain contains core types for the team service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Team is the company-level container for settings shared by all users.
type Team struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	Name      string       `gorm:"column:name;type:text;not null"`
	Slug      string       `gorm:"column:slug;type:text;not null;uniqueIndex"`
	Timezone  string       `gorm:"column:timezone;type:text;not null;default:'UTC'"`
	Currency  string       `gorm:"column:currency;type:text;not null;default:'USD'"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Team) TableName() string { return "teams" }
