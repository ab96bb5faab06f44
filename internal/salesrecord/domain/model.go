// Package domain contains core types for the sales record service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// SalesRecord is a closed sale reported by a user. Amounts are stored as
// numeric to keep currency math exact.
type SalesRecord struct {
	ID           snowflake.ID    `gorm:"primaryKey"`
	UserID       snowflake.ID    `gorm:"column:user_id;not null;index"`
	CustomerName string          `gorm:"column:customer_name;type:text;not null"`
	Amount       decimal.Decimal `gorm:"column:amount;type:numeric(18,2);not null"`
	Margin       decimal.Decimal `gorm:"column:margin;type:numeric(18,2);not null"`
	SoldAt       time.Time       `gorm:"column:sold_at;not null;index"`
	CreatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (SalesRecord) TableName() string { return "sales_records" }

// MonthlyTotals aggregates a user's sales for one calendar month.
type MonthlyTotals struct {
	Amount decimal.Decimal
	Margin decimal.Decimal
	Count  int64
}
