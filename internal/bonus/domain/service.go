package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Service interface {
	Summary(ctx context.Context, userID snowflake.ID, year int, month time.Month) (*Summary, error)
}

// Summary reports a user's bonus standing for one calendar month.
type Summary struct {
	UserID                snowflake.ID    `json:"user_id"`
	Year                  int             `json:"year"`
	Month                 int             `json:"month"`
	TargetAmount          decimal.Decimal `json:"target_amount"`
	ActualAmount          decimal.Decimal `json:"actual_amount"`
	TotalMargin           decimal.Decimal `json:"total_margin"`
	AchievementPercentage float64         `json:"achievement_percentage"`
	Qualifies             bool            `json:"qualifies"`
	Calculation           Calculation     `json:"calculation"`
}
