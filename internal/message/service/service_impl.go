package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/internal/message/domain"
	"github.com/fieldscope/fieldscope/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	ReadRepo domain.ReadRepository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	readRepo domain.ReadRepository
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("message.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		readRepo: p.ReadRepo,
	}
}

func (s *Service) Post(ctx context.Context, senderID snowflake.ID, body string) (*domain.Message, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return nil, domain.ErrEmptyBody
	}

	message := &domain.Message{
		ID:        s.genID.Generate(),
		SenderID:  senderID,
		Body:      trimmed,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *Service) List(ctx context.Context, page pagination.Pagination) ([]*domain.Message, *pagination.PageInfo, error) {
	size := page.PageSize
	if size <= 0 {
		size = 10
	}

	messages, err := s.repo.List(ctx, s.db, page)
	if err != nil {
		return nil, nil, err
	}

	pageInfo := pagination.BuildCursorPageInfo(messages, int32(size), func(m *domain.Message) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        m.ID.String(),
			CreatedAt: m.CreatedAt.Format(time.RFC3339Nano),
		})
		return token
	})
	if len(messages) > size {
		messages = messages[:size]
	}
	return messages, pageInfo, nil
}

func (s *Service) MarkRead(ctx context.Context, userID, messageID snowflake.ID) error {
	return s.readRepo.MarkRead(ctx, s.db, &domain.MessageRead{
		ID:        s.genID.Generate(),
		MessageID: messageID,
		UserID:    userID,
		ReadAt:    time.Now().UTC(),
	})
}

func (s *Service) UnreadCount(ctx context.Context, userID snowflake.ID) (int64, error) {
	return s.readRepo.CountUnread(ctx, s.db, userID)
}
