// Package domain contains core types for the sales target service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// SalesTarget is one user's quota for a calendar month. One row per
// user+year+month.
type SalesTarget struct {
	ID           snowflake.ID    `gorm:"primaryKey"`
	UserID       snowflake.ID    `gorm:"column:user_id;not null;uniqueIndex:idx_target_user_period"`
	Year         int             `gorm:"column:year;not null;uniqueIndex:idx_target_user_period"`
	Month        int             `gorm:"column:month;not null;uniqueIndex:idx_target_user_period"`
	TargetAmount decimal.Decimal `gorm:"column:target_amount;type:numeric(18,2);not null"`
	CreatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (SalesTarget) TableName() string { return "sales_targets" }

// AchievementPercentage returns actual/target as a percentage. A zero or
// missing target yields 0 rather than dividing by zero.
func AchievementPercentage(target, actual decimal.Decimal) float64 {
	if target.IsZero() || target.IsNegative() {
		return 0
	}
	pct, _ := actual.Div(target).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}
