package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Book(ctx context.Context, req BookRequest) (*Schedule, error)
	Availability(ctx context.Context, collaboratorID snowflake.ID, from, to time.Time) ([]*Schedule, error)
	Cancel(ctx context.Context, ownerID, id snowflake.ID) error
}

type BookRequest struct {
	OwnerID        snowflake.ID
	CollaboratorID snowflake.ID
	Title          string
	CustomerName   string
	StartAt        time.Time
	EndAt          time.Time
}
