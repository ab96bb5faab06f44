package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListActivityFilter struct {
	UserID snowflake.ID
	Type   Type
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, activity *Activity) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Activity, error)
	List(ctx context.Context, db *gorm.DB, filter ListActivityFilter, page pagination.Pagination) ([]*Activity, error)
	UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	DeleteByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error
}
