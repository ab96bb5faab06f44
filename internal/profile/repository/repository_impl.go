package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/internal/profile/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() (domain.Repository, domain.RoleRepository) {
	r := &repo{}
	return r, r
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, profile *domain.Profile) error {
	return db.WithContext(ctx).Create(profile).Error
}

func (r *repo) FindByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*domain.Profile, error) {
	var profile domain.Profile
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repo) ListByDivision(ctx context.Context, db *gorm.DB, division domain.Division) ([]*domain.Profile, error) {
	var profiles []*domain.Profile
	err := db.WithContext(ctx).
		Where("division = ?", division).
		Order("full_name asc").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *repo) UpdateFields(ctx context.Context, db *gorm.DB, userID snowflake.ID, fields map[string]any) error {
	tx := db.WithContext(ctx).Model(&domain.Profile{}).Where("user_id = ?", userID).Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *repo) DeleteByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error {
	return db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Profile{}).Error
}

func (r *repo) Grant(ctx context.Context, db *gorm.DB, role *domain.UserRole) error {
	return db.WithContext(ctx).Create(role).Error
}

func (r *repo) ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]*domain.UserRole, error) {
	var roles []*domain.UserRole
	err := db.WithContext(ctx).Where("user_id = ?", userID).Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *repo) DeleteRolesByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error {
	return db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.UserRole{}).Error
}
