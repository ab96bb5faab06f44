package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateTeamRequest) (*Team, error)
	Get(ctx context.Context, id snowflake.ID) (*Team, error)
	GetBySlug(ctx context.Context, slug string) (*Team, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateTeamRequest) (*Team, error)
}

type CreateTeamRequest struct {
	Name     string
	Timezone string
	Currency string
}

type UpdateTeamRequest struct {
	Name     *string
	Timezone *string
	Currency *string
}
