package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/internal/activity/domain"
	"github.com/fieldscope/fieldscope/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
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
		log:   p.Log.Named("activity.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateActivityRequest) (*domain.Activity, error) {
	customer := strings.TrimSpace(req.CustomerName)
	if customer == "" {
		return nil, domain.ErrInvalidCustomer
	}
	if !req.Type.Valid() {
		return nil, domain.ErrInvalidType
	}

	now := time.Now().UTC()
	occurred := req.OccurredAt
	if occurred.IsZero() {
		occurred = now
	}

	activity := &domain.Activity{
		ID:           s.genID.Generate(),
		UserID:       req.UserID,
		CustomerName: customer,
		Type:         req.Type,
		Notes:        strings.TrimSpace(req.Notes),
		OccurredAt:   occurred.UTC(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, s.db, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *Service) Get(ctx context.Context, userID, id snowflake.ID) (*domain.Activity, error) {
	activity, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if activity.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	return activity, nil
}

func (s *Service) List(ctx context.Context, filter domain.ListActivityFilter, page pagination.Pagination) ([]*domain.Activity, *pagination.PageInfo, error) {
	size := page.PageSize
	if size <= 0 {
		size = 10
	}

	activities, err := s.repo.List(ctx, s.db, filter, page)
	if err != nil {
		return nil, nil, err
	}

	pageInfo := pagination.BuildCursorPageInfo(activities, int32(size), func(a *domain.Activity) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        a.ID.String(),
			CreatedAt: a.CreatedAt.Format(time.RFC3339Nano),
		})
		return token
	})
	if len(activities) > size {
		activities = activities[:size]
	}
	return activities, pageInfo, nil
}

func (s *Service) Update(ctx context.Context, userID, id snowflake.ID, req domain.UpdateActivityRequest) (*domain.Activity, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.CustomerName != nil {
		customer := strings.TrimSpace(*req.CustomerName)
		if customer == "" {
			return nil, domain.ErrInvalidCustomer
		}
		fields["customer_name"] = customer
	}
	if req.Type != nil {
		if !req.Type.Valid() {
			return nil, domain.ErrInvalidType
		}
		fields["activity_type"] = *req.Type
	}
	if req.Notes != nil {
		fields["notes"] = strings.TrimSpace(*req.Notes)
	}
	if req.OccurredAt != nil {
		fields["occurred_at"] = req.OccurredAt.UTC()
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now().UTC()
		if err := s.repo.UpdateFields(ctx, s.db, id, fields); err != nil {
			return nil, err
		}
	}

	return s.repo.FindByID(ctx, s.db, id)
}

func (s *Service) Delete(ctx context.Context, userID, id snowflake.ID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, id)
}
