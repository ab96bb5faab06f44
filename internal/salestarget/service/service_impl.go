package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/internal/salestarget/domain"
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
		log:   p.Log.Named("salestarget.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Set(ctx context.Context, req domain.SetTargetRequest) (*domain.SalesTarget, error) {
	if req.Month < 1 || req.Month > 12 || req.Year < 2000 {
		return nil, domain.ErrInvalidPeriod
	}
	if req.TargetAmount.IsNegative() || req.TargetAmount.IsZero() {
		return nil, domain.ErrInvalidTarget
	}

	now := time.Now().UTC()
	target := &domain.SalesTarget{
		ID:           s.genID.Generate(),
		UserID:       req.UserID,
		Year:         req.Year,
		Month:        req.Month,
		TargetAmount: req.TargetAmount,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Upsert(ctx, s.db, target); err != nil {
		return nil, err
	}
	return s.repo.FindForPeriod(ctx, s.db, req.UserID, req.Year, req.Month)
}

func (s *Service) Get(ctx context.Context, userID snowflake.ID, year, month int) (*domain.SalesTarget, error) {
	return s.repo.FindForPeriod(ctx, s.db, userID, year, month)
}

func (s *Service) ListByUser(ctx context.Context, userID snowflake.ID) ([]*domain.SalesTarget, error) {
	return s.repo.ListByUser(ctx, s.db, userID)
}
