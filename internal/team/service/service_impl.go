package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/internal/team/domain"
	"github.com/fieldscope/fieldscope/pkg/db"
	"github.com/gosimple/slug"
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
		log:   p.Log.Named("team.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateTeamRequest) (*domain.Team, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	timezone := strings.TrimSpace(req.Timezone)
	if timezone == "" {
		timezone = "UTC"
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}

	now := time.Now().UTC()
	team := &domain.Team{
		ID:        s.genID.Generate(),
		Name:      name,
		Slug:      slug.Make(name),
		Timezone:  timezone,
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, team); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrTeamExists
		}
		return nil, err
	}
	return team, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Team, error) {
	return s.repo.FindByID(ctx, s.db, id)
}

func (s *Service) GetBySlug(ctx context.Context, teamSlug string) (*domain.Team, error) {
	return s.repo.FindBySlug(ctx, s.db, teamSlug)
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateTeamRequest) (*domain.Team, error) {
	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		fields["name"] = name
		fields["slug"] = slug.Make(name)
	}
	if req.Timezone != nil {
		fields["timezone"] = strings.TrimSpace(*req.Timezone)
	}
	if req.Currency != nil {
		fields["currency"] = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now().UTC()
		if err := s.repo.UpdateFields(ctx, s.db, id, fields); err != nil {
			return nil, err
		}
	}

	return s.repo.FindByID(ctx, s.db, id)
}
