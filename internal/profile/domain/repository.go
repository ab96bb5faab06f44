package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, profile *Profile) error
	FindByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*Profile, error)
	ListByDivision(ctx context.Context, db *gorm.DB, division Division) ([]*Profile, error)
	UpdateFields(ctx context.Context, db *gorm.DB, userID snowflake.ID, fields map[string]any) error
	DeleteByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error
}

type RoleRepository interface {
	Grant(ctx context.Context, db *gorm.DB, role *UserRole) error
	ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]*UserRole, error)
	DeleteRolesByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error
}
