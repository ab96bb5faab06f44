package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/internal/profile/domain"
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
	RoleRepo domain.RoleRepository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	roleRepo domain.RoleRepository
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("profile.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		roleRepo: p.RoleRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateProfileRequest) (*domain.Profile, error) {
	name := strings.TrimSpace(req.FullName)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if !req.Division.Valid() {
		return nil, domain.ErrInvalidDivision
	}

	now := time.Now().UTC()
	profile := &domain.Profile{
		ID:        s.genID.Generate(),
		UserID:    req.UserID,
		FullName:  name,
		Division:  req.Division,
		Phone:     strings.TrimSpace(req.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *Service) Get(ctx context.Context, userID snowflake.ID) (*domain.Profile, error) {
	return s.repo.FindByUser(ctx, s.db, userID)
}

func (s *Service) Update(ctx context.Context, userID snowflake.ID, req domain.UpdateProfileRequest) (*domain.Profile, error) {
	fields := map[string]any{}
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		fields["full_name"] = name
	}
	if req.Phone != nil {
		fields["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = strings.TrimSpace(*req.AvatarURL)
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now().UTC()
		if err := s.repo.UpdateFields(ctx, s.db, userID, fields); err != nil {
			return nil, err
		}
	}

	return s.repo.FindByUser(ctx, s.db, userID)
}

func (s *Service) ListByDivision(ctx context.Context, division domain.Division) ([]*domain.Profile, error) {
	if !division.Valid() {
		return nil, domain.ErrInvalidDivision
	}
	return s.repo.ListByDivision(ctx, s.db, division)
}

func (s *Service) SetDivision(ctx context.Context, userID snowflake.ID, division domain.Division) error {
	if !division.Valid() {
		return domain.ErrInvalidDivision
	}
	return s.repo.UpdateFields(ctx, s.db, userID, map[string]any{
		"division":   division,
		"updated_at": time.Now().UTC(),
	})
}

func (s *Service) Roles(ctx context.Context, userID snowflake.ID) ([]domain.Role, error) {
	rows, err := s.roleRepo.ListByUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	roles := make([]domain.Role, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, row.Role)
	}
	return roles, nil
}

func (s *Service) HasRole(ctx context.Context, userID snowflake.ID, role domain.Role) (bool, error) {
	roles, err := s.Roles(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, r := range roles {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) GrantRole(ctx context.Context, userID snowflake.ID, role domain.Role) error {
	if !role.Valid() {
		return domain.ErrInvalidRole
	}
	has, err := s.HasRole(ctx, userID, role)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	return s.roleRepo.Grant(ctx, s.db, &domain.UserRole{
		ID:        s.genID.Generate(),
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	})
}
