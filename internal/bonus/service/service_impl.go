package service

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldscope/fieldscope/internal/bonus/domain"
	"github.com/fieldscope/fieldscope/internal/config"
	salesrecorddomain "github.com/fieldscope/fieldscope/internal/salesrecord/domain"
	salestargetdomain "github.com/fieldscope/fieldscope/internal/salestarget/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Policy  *config.BonusPolicyHolder
	Records salesrecorddomain.Service
	Targets salestargetdomain.Service
}

type Service struct {
	log     *zap.Logger
	policy  *config.BonusPolicyHolder
	records salesrecorddomain.Service
	targets salestargetdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("bonus.service"),
		policy:  p.Policy,
		records: p.Records,
		targets: p.Targets,
	}
}

// Summary combines the month's target, actuals and the standing tier policy
// into one bonus breakdown. A user without a target for the period gets a
// zero summary instead of an error.
func (s *Service) Summary(ctx context.Context, userID snowflake.ID, year int, month time.Month) (*domain.Summary, error) {
	totals, err := s.records.MonthTotals(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	summary := &domain.Summary{
		UserID:       userID,
		Year:         year,
		Month:        int(month),
		ActualAmount: totals.Amount,
		TotalMargin:  totals.Margin,
	}

	target, err := s.targets.Get(ctx, userID, year, int(month))
	if err != nil {
		if errors.Is(err, salestargetdomain.ErrTargetNotFound) {
			tiers := s.policy.Tiers()
			summary.Calculation = tiers.Calculate(0, 0)
			return summary, nil
		}
		return nil, err
	}
	summary.TargetAmount = target.TargetAmount

	achievement := salestargetdomain.AchievementPercentage(target.TargetAmount, totals.Amount)
	summary.AchievementPercentage = achievement

	margin, _ := totals.Margin.Float64()
	tiers := s.policy.Tiers()
	summary.Qualifies = tiers.Qualifies(achievement)
	summary.Calculation = tiers.Calculate(achievement, margin)

	if summary.Calculation.CurrentTier != nil {
		s.log.Debug("bonus summary computed",
			zap.String("user_id", userID.String()),
			zap.Float64("achievement", achievement),
			zap.String("tier", summary.Calculation.CurrentTier.Label),
		)
	}

	return summary, nil
}
