// Package domain contains core types for the audit service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// AuditLog records one privileged operation: who did what to whom.
type AuditLog struct {
	ID         snowflake.ID      `gorm:"primaryKey"`
	ActorType  string            `gorm:"column:actor_type;type:text;not null"`
	ActorID    *string           `gorm:"column:actor_id;type:text"`
	Action     string            `gorm:"column:action;type:text;not null;index"`
	TargetType string            `gorm:"column:target_type;type:text;not null"`
	TargetID   *string           `gorm:"column:target_id;type:text;index"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	IPAddress  *string           `gorm:"column:ip_address;type:text"`
	UserAgent  *string           `gorm:"column:user_agent;type:text"`
	CreatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP;index"`
}

// TableName sets the database table name.
func (AuditLog) TableName() string { return "audit_logs" }
