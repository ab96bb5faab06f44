package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, team *Team) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Team, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Team, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
}
