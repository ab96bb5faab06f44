package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/pkg/db/pagination"
	salesrecorddomain "github.com/fieldscope/fieldscope/internal/salesrecord/domain"
	salestargetdomain "github.com/fieldscope/fieldscope/internal/salestarget/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRecordService struct {
	totals *salesrecorddomain.MonthlyTotals
	err    error
}

func (f *fakeRecordService) Create(ctx context.Context, req salesrecorddomain.CreateSalesRecordRequest) (*salesrecorddomain.SalesRecord, error) {
	return nil, nil
}

func (f *fakeRecordService) List(ctx context.Context, userID snowflake.ID, page pagination.Pagination) ([]*salesrecorddomain.SalesRecord, *pagination.PageInfo, error) {
	return nil, nil, nil
}

func (f *fakeRecordService) Delete(ctx context.Context, userID, id snowflake.ID) error {
	return nil
}

func (f *fakeRecordService) MonthTotals(ctx context.Context, userID snowflake.ID, year int, month time.Month) (*salesrecorddomain.MonthlyTotals, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.totals, nil
}

type fakeTargetService struct {
	target *salestargetdomain.SalesTarget
	err    error
}

func (f *fakeTargetService) Set(ctx context.Context, req salestargetdomain.SetTargetRequest) (*salestargetdomain.SalesTarget, error) {
	return nil, nil
}

func (f *fakeTargetService) Get(ctx context.Context, userID snowflake.ID, year, month int) (*salestargetdomain.SalesTarget, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.target, nil
}

func (f *fakeTargetService) ListByUser(ctx context.Context, userID snowflake.ID) ([]*salestargetdomain.SalesTarget, error) {
	return nil, nil
}

func newSummaryService(records *fakeRecordService, targets *fakeTargetService) *Service {
	svc := New(Params{
		Log:     zap.NewNop(),
		Policy:  nil,
		Records: records,
		Targets: targets,
	})
	return svc.(*Service)
}

func TestSummary_QualifyingMonth(t *testing.T) {
	records := &fakeRecordService{totals: &salesrecorddomain.MonthlyTotals{
		Amount: decimal.NewFromInt(7500),
		Margin: decimal.NewFromInt(2000),
		Count:  3,
	}}
	targets := &fakeTargetService{target: &salestargetdomain.SalesTarget{
		TargetAmount: decimal.NewFromInt(10000),
	}}
	svc := newSummaryService(records, targets)

	summary, err := svc.Summary(context.Background(), 1, 2026, time.March)
	require.NoError(t, err)

	assert.InDelta(t, 75, summary.AchievementPercentage, 1e-9)
	assert.True(t, summary.Qualifies)
	require.NotNil(t, summary.Calculation.CurrentTier)
	assert.Equal(t, "70-79.9%", summary.Calculation.CurrentTier.Label)
	assert.InDelta(t, 2000*0.08, summary.Calculation.BonusAmount, 1e-9)
}

func TestSummary_BelowFloor(t *testing.T) {
	records := &fakeRecordService{totals: &salesrecorddomain.MonthlyTotals{
		Amount: decimal.NewFromInt(1000),
		Margin: decimal.NewFromInt(300),
	}}
	targets := &fakeTargetService{target: &salestargetdomain.SalesTarget{
		TargetAmount: decimal.NewFromInt(10000),
	}}
	svc := newSummaryService(records, targets)

	summary, err := svc.Summary(context.Background(), 1, 2026, time.March)
	require.NoError(t, err)

	assert.InDelta(t, 10, summary.AchievementPercentage, 1e-9)
	assert.False(t, summary.Qualifies)
	assert.Nil(t, summary.Calculation.CurrentTier)
	assert.Zero(t, summary.Calculation.BonusAmount)
}

// No target set for the month is a zero summary, not an error.
func TestSummary_NoTarget(t *testing.T) {
	records := &fakeRecordService{totals: &salesrecorddomain.MonthlyTotals{
		Amount: decimal.NewFromInt(5000),
		Margin: decimal.NewFromInt(900),
	}}
	targets := &fakeTargetService{err: salestargetdomain.ErrTargetNotFound}
	svc := newSummaryService(records, targets)

	summary, err := svc.Summary(context.Background(), 1, 2026, time.March)
	require.NoError(t, err)

	assert.True(t, summary.TargetAmount.IsZero())
	assert.Zero(t, summary.AchievementPercentage)
	assert.False(t, summary.Qualifies)
	assert.Nil(t, summary.Calculation.CurrentTier)
	assert.Equal(t, decimal.NewFromInt(5000), summary.ActualAmount)
}

func TestSummary_RecordsError(t *testing.T) {
	records := &fakeRecordService{err: assert.AnError}
	targets := &fakeTargetService{}
	svc := newSummaryService(records, targets)

	_, err := svc.Summary(context.Background(), 1, 2026, time.March)
	assert.ErrorIs(t, err, assert.AnError)
}
