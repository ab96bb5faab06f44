package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierFor_BelowFloor(t *testing.T) {
	tiers := DefaultTiers()

	for _, p := range []float64{0, 10, 39.9, 39.999, -5, math.NaN()} {
		tier := tiers.TierFor(p)
		assert.Nil(t, tier, "percentage %v should not match a tier", p)

		calc := tiers.Calculate(p, 10000)
		assert.Zero(t, calc.BonusAmount)
		assert.Nil(t, calc.CurrentTier)
		assert.Nil(t, calc.NextTier)
		assert.Zero(t, calc.ProgressToNextTier)
	}
}

func TestTierFor_FirstTier(t *testing.T) {
	tiers := DefaultTiers()

	for _, p := range []float64{40, 45, 49.9} {
		tier := tiers.TierFor(p)
		require.NotNil(t, tier, "percentage %v", p)
		assert.Equal(t, "40-49.9%", tier.Label)
		assert.Equal(t, 0.03, tier.BonusRate)
	}
}

func TestTierFor_TopTierUnbounded(t *testing.T) {
	tiers := DefaultTiers()

	for _, p := range []float64{90, 100, 150, 1000} {
		tier := tiers.TierFor(p)
		require.NotNil(t, tier, "percentage %v", p)
		assert.Equal(t, "90-100%+", tier.Label)
		assert.Equal(t, 0.12, tier.BonusRate)

		calc := tiers.Calculate(p, 500)
		assert.Nil(t, calc.NextTier)
		assert.Equal(t, float64(100), calc.ProgressToNextTier)
	}
}

func TestCalculate_BoundaryBetweenTiers(t *testing.T) {
	tiers := DefaultTiers()

	below := tiers.Calculate(49.9, 1000)
	require.NotNil(t, below.CurrentTier)
	assert.Equal(t, "40-49.9%", below.CurrentTier.Label)
	assert.InDelta(t, 30, below.BonusAmount, 1e-9)

	above := tiers.Calculate(50, 1000)
	require.NotNil(t, above.CurrentTier)
	assert.Equal(t, "50-59.9%", above.CurrentTier.Label)
	assert.InDelta(t, 50, above.BonusAmount, 1e-9)
}

// The table has gaps between MaxPercentage and the next MinPercentage
// (49.9 to 50 and so on). A percentage inside a gap clears the qualifying
// floor but matches no tier, so the bonus is zero.
func TestCalculate_GapBetweenTiers(t *testing.T) {
	tiers := DefaultTiers()

	for _, p := range []float64{49.95, 59.95, 69.95, 79.95, 89.95} {
		assert.True(t, tiers.Qualifies(p), "percentage %v", p)
		assert.Nil(t, tiers.TierFor(p), "percentage %v", p)

		calc := tiers.Calculate(p, 10000)
		assert.Zero(t, calc.BonusAmount, "percentage %v", p)
		assert.Nil(t, calc.CurrentTier)
		assert.Nil(t, calc.NextTier)
	}
}

func TestCalculate_AllTierRates(t *testing.T) {
	tiers := DefaultTiers()
	margin := 10000.0

	cases := []struct {
		percentage float64
		rate       float64
		label      string
	}{
		{40, 0.03, "40-49.9%"},
		{50, 0.05, "50-59.9%"},
		{60, 0.06, "60-69.9%"},
		{70, 0.08, "70-79.9%"},
		{80, 0.10, "80-89.9%"},
		{90, 0.12, "90-100%+"},
	}

	for _, tc := range cases {
		calc := tiers.Calculate(tc.percentage, margin)
		require.NotNil(t, calc.CurrentTier, "percentage %v", tc.percentage)
		assert.Equal(t, tc.label, calc.CurrentTier.Label)
		assert.InDelta(t, margin*tc.rate, calc.BonusAmount, 1e-9)
	}
}

func TestCalculate_ProgressToNextTier(t *testing.T) {
	tiers := DefaultTiers()

	start := tiers.Calculate(40, 0)
	assert.InDelta(t, 0, start.ProgressToNextTier, 1e-9)

	half := tiers.Calculate(45, 0)
	assert.InDelta(t, 50, half.ProgressToNextTier, 1e-9)

	nearTop := tiers.Calculate(49.9, 0)
	assert.InDelta(t, 99, nearTop.ProgressToNextTier, 1e-9)
	assert.LessOrEqual(t, nearTop.ProgressToNextTier, float64(100))
}

// Bonus amounts must never decrease as achievement rises with margin held
// constant.
func TestCalculate_MonotonicAcrossBoundaries(t *testing.T) {
	tiers := DefaultTiers()
	margin := 1000.0

	prev := -1.0
	for p := 0.0; p <= 120; p++ {
		calc := tiers.Calculate(p, margin)
		assert.GreaterOrEqual(t, calc.BonusAmount, prev, "percentage %v", p)
		prev = calc.BonusAmount
	}
}

func TestCalculate_AgreesWithTierFor(t *testing.T) {
	tiers := DefaultTiers()

	for p := 0.0; p <= 150; p += 0.5 {
		tier := tiers.TierFor(p)
		calc := tiers.Calculate(p, 1000)

		if tier == nil {
			assert.Nil(t, calc.CurrentTier, "percentage %v", p)
			continue
		}
		require.NotNil(t, calc.CurrentTier, "percentage %v", p)
		assert.Equal(t, tier.Label, calc.CurrentTier.Label)
		assert.Equal(t, tier.BonusRate, calc.CurrentTier.BonusRate)
	}
}

func TestQualifies_MatchesTierFloor(t *testing.T) {
	tiers := DefaultTiers()

	for p := 0.0; p <= 150; p += 0.5 {
		assert.Equal(t, p >= QualifyingPercentage, tiers.Qualifies(p), "percentage %v", p)
		assert.Equal(t, tiers.TierFor(p) != nil, tiers.Qualifies(p), "percentage %v", p)
	}

	assert.False(t, tiers.Qualifies(math.NaN()))
	assert.Nil(t, tiers.TierFor(math.NaN()))
}

func TestCalculate_ZeroMargin(t *testing.T) {
	tiers := DefaultTiers()

	calc := tiers.Calculate(75, 0)
	require.NotNil(t, calc.CurrentTier)
	assert.Zero(t, calc.BonusAmount)
	assert.Equal(t, "70-79.9%", calc.CurrentTier.Label)
}
