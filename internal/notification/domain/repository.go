package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, notification *Notification) error
	ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID, page pagination.Pagination) ([]*Notification, error)
	MarkRead(ctx context.Context, db *gorm.DB, userID, id snowflake.ID, readAt time.Time) error
	DeleteByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error
}
