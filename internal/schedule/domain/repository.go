package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, schedule *Schedule) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Schedule, error)
	ListForCollaborator(ctx context.Context, db *gorm.DB, collaboratorID snowflake.ID, from, to time.Time) ([]*Schedule, error)
	CountOverlapping(ctx context.Context, db *gorm.DB, collaboratorID snowflake.ID, startAt, endAt time.Time, excludeID snowflake.ID) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
