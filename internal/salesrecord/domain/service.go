package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/pkg/db/pagination"
	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, req CreateSalesRecordRequest) (*SalesRecord, error)
	List(ctx context.Context, userID snowflake.ID, page pagination.Pagination) ([]*SalesRecord, *pagination.PageInfo, error)
	Delete(ctx context.Context, userID, id snowflake.ID) error
	MonthTotals(ctx context.Context, userID snowflake.ID, year int, month time.Month) (*MonthlyTotals, error)
}

type CreateSalesRecordRequest struct {
	UserID       snowflake.ID
	CustomerName string
	Amount       decimal.Decimal
	Margin       decimal.Decimal
	SoldAt       time.Time
}
