package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/internal/salesrecord/domain"
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
		log:   p.Log.Named("salesrecord.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateSalesRecordRequest) (*domain.SalesRecord, error) {
	customer := strings.TrimSpace(req.CustomerName)
	if customer == "" {
		return nil, domain.ErrInvalidCustomer
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, domain.ErrInvalidAmount
	}
	if req.Margin.IsNegative() || req.Margin.GreaterThan(req.Amount) {
		return nil, domain.ErrInvalidMargin
	}

	now := time.Now().UTC()
	soldAt := req.SoldAt
	if soldAt.IsZero() {
		soldAt = now
	}

	record := &domain.SalesRecord{
		ID:           s.genID.Generate(),
		UserID:       req.UserID,
		CustomerName: customer,
		Amount:       req.Amount,
		Margin:       req.Margin,
		SoldAt:       soldAt.UTC(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, s.db, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) List(ctx context.Context, userID snowflake.ID, page pagination.Pagination) ([]*domain.SalesRecord, *pagination.PageInfo, error) {
	size := page.PageSize
	if size <= 0 {
		size = 10
	}

	records, err := s.repo.ListByUser(ctx, s.db, userID, page)
	if err != nil {
		return nil, nil, err
	}

	pageInfo := pagination.BuildCursorPageInfo(records, int32(size), func(rec *domain.SalesRecord) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        rec.ID.String(),
			CreatedAt: rec.CreatedAt.Format(time.RFC3339Nano),
		})
		return token
	})
	if len(records) > size {
		records = records[:size]
	}
	return records, pageInfo, nil
}

func (s *Service) Delete(ctx context.Context, userID, id snowflake.ID) error {
	record, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if record.UserID != userID {
		return domain.ErrNotOwner
	}
	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) MonthTotals(ctx context.Context, userID snowflake.ID, year int, month time.Month) (*domain.MonthlyTotals, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	return s.repo.SumForRange(ctx, s.db, userID, from, to)
}
