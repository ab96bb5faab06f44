package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Service interface {
	Set(ctx context.Context, req SetTargetRequest) (*SalesTarget, error)
	Get(ctx context.Context, userID snowflake.ID, year, month int) (*SalesTarget, error)
	ListByUser(ctx context.Context, userID snowflake.ID) ([]*SalesTarget, error)
}

type SetTargetRequest struct {
	UserID       snowflake.ID
	Year         int
	Month        int
	TargetAmount decimal.Decimal
}
