package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/internal/salestarget/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, target *domain.SalesTarget) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.Assignments(map[string]any{
			"target_amount": target.TargetAmount,
			"updated_at":    target.UpdatedAt,
		}),
	}).Create(target).Error
}

func (r *repo) FindForPeriod(ctx context.Context, db *gorm.DB, userID snowflake.ID, year, month int) (*domain.SalesTarget, error) {
	var target domain.SalesTarget
	err := db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		First(&target).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrTargetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &target, nil
}

func (r *repo) ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]*domain.SalesTarget, error) {
	var targets []*domain.SalesTarget
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("year desc, month desc").
		Find(&targets).Error
	if err != nil {
		return nil, err
	}
	return targets, nil
}

func (r *repo) DeleteByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error {
	return db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.SalesTarget{}).Error
}
