package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Upsert(ctx context.Context, db *gorm.DB, target *SalesTarget) error
	FindForPeriod(ctx context.Context, db *gorm.DB, userID snowflake.ID, year, month int) (*SalesTarget, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]*SalesTarget, error)
	DeleteByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error
}
