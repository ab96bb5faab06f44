package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/internal/schedule/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, schedule *domain.Schedule) error {
	return db.WithContext(ctx).Create(schedule).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Schedule, error) {
	var schedule domain.Schedule
	err := db.WithContext(ctx).Where("id = ?", id).First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrScheduleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *repo) ListForCollaborator(ctx context.Context, db *gorm.DB, collaboratorID snowflake.ID, from, to time.Time) ([]*domain.Schedule, error) {
	var schedules []*domain.Schedule
	err := db.WithContext(ctx).
		Where("collaborator_id = ? AND start_at < ? AND end_at > ?", collaboratorID, to, from).
		Order("start_at asc").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// CountOverlapping counts bookings whose window intersects [startAt, endAt).
// Two windows overlap when each starts before the other ends.
func (r *repo) CountOverlapping(ctx context.Context, db *gorm.DB, collaboratorID snowflake.ID, startAt, endAt time.Time, excludeID snowflake.ID) (int64, error) {
	var count int64
	stmt := db.WithContext(ctx).
		Model(&domain.Schedule{}).
		Where("collaborator_id = ? AND start_at < ? AND end_at > ?", collaboratorID, endAt, startAt)
	if excludeID != 0 {
		stmt = stmt.Where("id <> ?", excludeID)
	}
	err := stmt.Count(&count).Error
	return count, err
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Schedule{}).Error
}
