package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/fieldscope/fieldscope/internal/schedule/domain"
	"github.com/fieldscope/fieldscope/internal/schedule/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Schedule{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, node
}

func bookReq(owner, collaborator snowflake.ID, start, end time.Time) domain.BookRequest {
	return domain.BookRequest{
		OwnerID:        owner,
		CollaboratorID: collaborator,
		Title:          "Customer demo",
		CustomerName:   "Acme",
		StartAt:        start,
		EndAt:          end,
	}
}

func TestBook_RejectsOverlap(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()

	owner := node.Generate()
	other := node.Generate()
	collaborator := node.Generate()

	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	_, err := svc.Book(ctx, bookReq(owner, collaborator, base, base.Add(time.Hour)))
	require.NoError(t, err)

	overlaps := []struct {
		name       string
		start, end time.Time
	}{
		{"identical window", base, base.Add(time.Hour)},
		{"starts inside", base.Add(30 * time.Minute), base.Add(2 * time.Hour)},
		{"ends inside", base.Add(-30 * time.Minute), base.Add(30 * time.Minute)},
		{"covers whole", base.Add(-time.Hour), base.Add(2 * time.Hour)},
		{"contained", base.Add(15 * time.Minute), base.Add(45 * time.Minute)},
	}

	for _, tc := range overlaps {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Book(ctx, bookReq(other, collaborator, tc.start, tc.end))
			assert.ErrorIs(t, err, domain.ErrCollaboratorBusy)
		})
	}
}

// Back-to-back bookings share a boundary instant and must both succeed.
func TestBook_AllowsAdjacent(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()

	owner := node.Generate()
	collaborator := node.Generate()
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	_, err := svc.Book(ctx, bookReq(owner, collaborator, base, base.Add(time.Hour)))
	require.NoError(t, err)

	_, err = svc.Book(ctx, bookReq(owner, collaborator, base.Add(time.Hour), base.Add(2*time.Hour)))
	assert.NoError(t, err)

	_, err = svc.Book(ctx, bookReq(owner, collaborator, base.Add(-time.Hour), base))
	assert.NoError(t, err)
}

func TestBook_DifferentCollaboratorUnaffected(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()

	owner := node.Generate()
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	_, err := svc.Book(ctx, bookReq(owner, node.Generate(), base, base.Add(time.Hour)))
	require.NoError(t, err)

	_, err = svc.Book(ctx, bookReq(owner, node.Generate(), base, base.Add(time.Hour)))
	assert.NoError(t, err)
}

func TestBook_ValidatesInput(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()

	owner := node.Generate()
	collaborator := node.Generate()
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	req := bookReq(owner, collaborator, base, base.Add(time.Hour))
	req.Title = "   "
	_, err := svc.Book(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)

	_, err = svc.Book(ctx, bookReq(owner, collaborator, base.Add(time.Hour), base))
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)

	_, err = svc.Book(ctx, bookReq(owner, collaborator, base, base))
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)
}

func TestCancel_OwnerOrCollaboratorOnly(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()

	owner := node.Generate()
	collaborator := node.Generate()
	stranger := node.Generate()
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	schedule, err := svc.Book(ctx, bookReq(owner, collaborator, base, base.Add(time.Hour)))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Cancel(ctx, stranger, schedule.ID), domain.ErrNotOwner)
	assert.NoError(t, svc.Cancel(ctx, collaborator, schedule.ID))
	assert.ErrorIs(t, svc.Cancel(ctx, owner, schedule.ID), domain.ErrScheduleNotFound)
}

func TestAvailability(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()

	owner := node.Generate()
	collaborator := node.Generate()
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	_, err := svc.Book(ctx, bookReq(owner, collaborator, base, base.Add(time.Hour)))
	require.NoError(t, err)
	_, err = svc.Book(ctx, bookReq(owner, collaborator, base.Add(48*time.Hour), base.Add(49*time.Hour)))
	require.NoError(t, err)

	schedules, err := svc.Availability(ctx, collaborator, base.Add(-time.Hour), base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Len(t, schedules, 1)

	_, err = svc.Availability(ctx, collaborator, base, base)
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)
}
