// Package domain contains core types for the message service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Message is a post on the team board.
type Message struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	SenderID  snowflake.ID `gorm:"column:sender_id;not null;index"`
	Body      string       `gorm:"column:body;type:text;not null"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Message) TableName() string { return "messages" }

// MessageRead marks that a user has seen a message. One row per
// user+message pair.
type MessageRead struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	MessageID snowflake.ID `gorm:"column:message_id;not null;uniqueIndex:idx_message_read"`
	UserID    snowflake.ID `gorm:"column:user_id;not null;uniqueIndex:idx_message_read"`
	ReadAt    time.Time    `gorm:"column:read_at;not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (MessageRead) TableName() string { return "message_reads" }
