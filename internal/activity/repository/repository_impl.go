package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/internal/activity/domain"
	"github.com/fieldscope/fieldscope/pkg/db/option"
	"github.com/fieldscope/fieldscope/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, activity *domain.Activity) error {
	return db.WithContext(ctx).Create(activity).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Activity, error) {
	var activity domain.Activity
	err := db.WithContext(ctx).Where("id = ?", id).First(&activity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrActivityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListActivityFilter, page pagination.Pagination) ([]*domain.Activity, error) {
	var activities []*domain.Activity
	stmt := db.WithContext(ctx).Model(&domain.Activity{})
	if filter.UserID != 0 {
		stmt = stmt.Where("user_id = ?", filter.UserID)
	}
	if filter.Type != "" {
		stmt = stmt.Where("activity_type = ?", filter.Type)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *repo) UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error {
	tx := db.WithContext(ctx).Model(&domain.Activity{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Activity{}).Error
}

func (r *repo) DeleteByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error {
	return db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Activity{}).Error
}
