package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/internal/message/domain"
	"github.com/fieldscope/fieldscope/pkg/db/option"
	"github.com/fieldscope/fieldscope/pkg/db/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() (domain.Repository, domain.ReadRepository) {
	r := &repo{}
	return r, r
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, message *domain.Message) error {
	return db.WithContext(ctx).Create(message).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*domain.Message, error) {
	var messages []*domain.Message
	stmt := db.WithContext(ctx).Model(&domain.Message{})
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *repo) DeleteBySender(ctx context.Context, db *gorm.DB, senderID snowflake.ID) error {
	return db.WithContext(ctx).Where("sender_id = ?", senderID).Delete(&domain.Message{}).Error
}

func (r *repo) MarkRead(ctx context.Context, db *gorm.DB, read *domain.MessageRead) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "message_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(read).Error
}

func (r *repo) CountUnread(ctx context.Context, db *gorm.DB, userID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("id NOT IN (?)",
			db.Model(&domain.MessageRead{}).Select("message_id").Where("user_id = ?", userID),
		).
		Count(&count).Error
	return count, err
}

func (r *repo) DeleteByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error {
	return db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.MessageRead{}).Error
}
