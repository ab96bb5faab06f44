package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/internal/schedule/domain"
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
		log:   p.Log.Named("schedule.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

// Book creates a booking after checking the collaborator's calendar. The
// availability check and insert run inside one transaction so two
// concurrent bookings cannot both pass the check.
func (s *Service) Book(ctx context.Context, req domain.BookRequest) (*domain.Schedule, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidTitle
	}
	if req.StartAt.IsZero() || req.EndAt.IsZero() || !req.EndAt.After(req.StartAt) {
		return nil, domain.ErrInvalidWindow
	}

	now := time.Now().UTC()
	schedule := &domain.Schedule{
		ID:             s.genID.Generate(),
		OwnerID:        req.OwnerID,
		CollaboratorID: req.CollaboratorID,
		Title:          title,
		CustomerName:   strings.TrimSpace(req.CustomerName),
		StartAt:        req.StartAt.UTC(),
		EndAt:          req.EndAt.UTC(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		overlapping, err := s.repo.CountOverlapping(ctx, tx, req.CollaboratorID, schedule.StartAt, schedule.EndAt, 0)
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return domain.ErrCollaboratorBusy
		}
		return s.repo.Insert(ctx, tx, schedule)
	})
	if err != nil {
		return nil, err
	}

	return schedule, nil
}

func (s *Service) Availability(ctx context.Context, collaboratorID snowflake.ID, from, to time.Time) ([]*domain.Schedule, error) {
	if from.IsZero() || to.IsZero() || !to.After(from) {
		return nil, domain.ErrInvalidWindow
	}
	return s.repo.ListForCollaborator(ctx, s.db, collaboratorID, from.UTC(), to.UTC())
}

func (s *Service) Cancel(ctx context.Context, ownerID, id snowflake.ID) error {
	schedule, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if schedule.OwnerID != ownerID && schedule.CollaboratorID != ownerID {
		return domain.ErrNotOwner
	}
	return s.repo.Delete(ctx, s.db, id)
}
