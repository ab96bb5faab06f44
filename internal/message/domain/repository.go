package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, message *Message) error
	List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*Message, error)
	DeleteBySender(ctx context.Context, db *gorm.DB, senderID snowflake.ID) error
}

type ReadRepository interface {
	MarkRead(ctx context.Context, db *gorm.DB, read *MessageRead) error
	CountUnread(ctx context.Context, db *gorm.DB, userID snowflake.ID) (int64, error)
	DeleteByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error
}
