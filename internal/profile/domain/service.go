package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateProfileRequest) (*Profile, error)
	Get(ctx context.Context, userID snowflake.ID) (*Profile, error)
	Update(ctx context.Context, userID snowflake.ID, req UpdateProfileRequest) (*Profile, error)
	ListByDivision(ctx context.Context, division Division) ([]*Profile, error)
	SetDivision(ctx context.Context, userID snowflake.ID, division Division) error
	Roles(ctx context.Context, userID snowflake.ID) ([]Role, error)
	HasRole(ctx context.Context, userID snowflake.ID, role Role) (bool, error)
	GrantRole(ctx context.Context, userID snowflake.ID, role Role) error
}

type CreateProfileRequest struct {
	UserID   snowflake.ID
	FullName string
	Division Division
	Phone    string
}

// UpdateProfileRequest carries self-service edits. Division is deliberately
// absent; only SetDivision changes it.
type UpdateProfileRequest struct {
	FullName  *string
	Phone     *string
	AvatarURL *string
}
