package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/internal/notification/domain"
	"github.com/fieldscope/fieldscope/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("notification.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Notify(ctx context.Context, req domain.NotifyRequest) (*domain.Notification, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}

	metadata := datatypes.JSONMap{}
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	notification := &domain.Notification{
		ID:        s.genID.Generate(),
		UserID:    req.UserID,
		Title:     title,
		Body:      strings.TrimSpace(req.Body),
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *Service) List(ctx context.Context, userID snowflake.ID, page pagination.Pagination) ([]*domain.Notification, *pagination.PageInfo, error) {
	size := page.PageSize
	if size <= 0 {
		size = 10
	}

	notifications, err := s.repo.ListByUser(ctx, s.db, userID, page)
	if err != nil {
		return nil, nil, err
	}

	pageInfo := pagination.BuildCursorPageInfo(notifications, int32(size), func(n *domain.Notification) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        n.ID.String(),
			CreatedAt: n.CreatedAt.Format(time.RFC3339Nano),
		})
		return token
	})
	if len(notifications) > size {
		notifications = notifications[:size]
	}
	return notifications, pageInfo, nil
}

func (s *Service) MarkRead(ctx context.Context, userID, id snowflake.ID) error {
	return s.repo.MarkRead(ctx, s.db, userID, id, time.Now().UTC())
}
