package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateActivityRequest) (*Activity, error)
	Get(ctx context.Context, userID, id snowflake.ID) (*Activity, error)
	List(ctx context.Context, filter ListActivityFilter, page pagination.Pagination) ([]*Activity, *pagination.PageInfo, error)
	Update(ctx context.Context, userID, id snowflake.ID, req UpdateActivityRequest) (*Activity, error)
	Delete(ctx context.Context, userID, id snowflake.ID) error
}

type CreateActivityRequest struct {
	UserID       snowflake.ID
	CustomerName string
	Type         Type
	Notes        string
	OccurredAt   time.Time
}

type UpdateActivityRequest struct {
	CustomerName *string
	Type         *Type
	Notes        *string
	OccurredAt   *time.Time
}
