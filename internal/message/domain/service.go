package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/pkg/db/pagination"
)

type Service interface {
	Post(ctx context.Context, senderID snowflake.ID, body string) (*Message, error)
	List(ctx context.Context, page pagination.Pagination) ([]*Message, *pagination.PageInfo, error)
	MarkRead(ctx context.Context, userID, messageID snowflake.ID) error
	UnreadCount(ctx context.Context, userID snowflake.ID) (int64, error)
}
