package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *SalesRecord) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*SalesRecord, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID, page pagination.Pagination) ([]*SalesRecord, error)
	SumForRange(ctx context.Context, db *gorm.DB, userID snowflake.ID, from, to time.Time) (*MonthlyTotals, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	DeleteByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error
}
