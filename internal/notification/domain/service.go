package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/pkg/db/pagination"
)

type Service interface {
	Notify(ctx context.Context, req NotifyRequest) (*Notification, error)
	List(ctx context.Context, userID snowflake.ID, page pagination.Pagination) ([]*Notification, *pagination.PageInfo, error)
	MarkRead(ctx context.Context, userID, id snowflake.ID) error
}

type NotifyRequest struct {
	UserID   snowflake.ID
	Title    string
	Body     string
	Metadata map[string]any
}
