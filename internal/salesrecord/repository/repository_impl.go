package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/internal/salesrecord/domain"
	"github.com/fieldscope/fieldscope/pkg/db/option"
	"github.com/fieldscope/fieldscope/pkg/db/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.SalesRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.SalesRecord, error) {
	var record domain.SalesRecord
	err := db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repo) ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID, page pagination.Pagination) ([]*domain.SalesRecord, error) {
	var records []*domain.SalesRecord
	stmt := db.WithContext(ctx).
		Model(&domain.SalesRecord{}).
		Where("user_id = ?", userID)
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) SumForRange(ctx context.Context, db *gorm.DB, userID snowflake.ID, from, to time.Time) (*domain.MonthlyTotals, error) {
	var row struct {
		Amount decimal.NullDecimal
		Margin decimal.NullDecimal
		Count  int64
	}
	err := db.WithContext(ctx).
		Model(&domain.SalesRecord{}).
		Select("COALESCE(SUM(amount), 0) AS amount, COALESCE(SUM(margin), 0) AS margin, COUNT(*) AS count").
		Where("user_id = ? AND sold_at >= ? AND sold_at < ?", userID, from, to).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	totals := &domain.MonthlyTotals{Count: row.Count}
	if row.Amount.Valid {
		totals.Amount = row.Amount.Decimal
	}
	if row.Margin.Valid {
		totals.Margin = row.Margin.Decimal
	}
	return totals, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.SalesRecord{}).Error
}

func (r *repo) DeleteByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error {
	return db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.SalesRecord{}).Error
}
