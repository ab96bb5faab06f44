// Package domain implements the bonus tier engine: a declarative tier
// table and pure lookup/calculation functions over it.
package domain

import "math"

// Tier is one row of the bonus policy table. MinPercentage is inclusive,
// MaxPercentage is inclusive; the last tier is unbounded above.
type Tier struct {
	MinPercentage float64 `json:"min_percentage" mapstructure:"min"`
	MaxPercentage float64 `json:"max_percentage" mapstructure:"max"`
	BonusRate     float64 `json:"bonus_rate" mapstructure:"rate"`
	Label         string  `json:"label" mapstructure:"label"`
}

// TierTable is an ordered list of tiers, ascending by MinPercentage,
// contiguous and non-overlapping. No tier matches below the first MinPercentage.
type TierTable []Tier

// QualifyingPercentage is the achievement floor below which no tier matches.
const QualifyingPercentage = 40

// DefaultTiers is the standing bonus policy. Tiers are data, not code:
// adding a tier must never require touching the lookup below.
func DefaultTiers() TierTable {
	return TierTable{
		{MinPercentage: 40, MaxPercentage: 49.9, BonusRate: 0.03, Label: "40-49.9%"},
		{MinPercentage: 50, MaxPercentage: 59.9, BonusRate: 0.05, Label: "50-59.9%"},
		{MinPercentage: 60, MaxPercentage: 69.9, BonusRate: 0.06, Label: "60-69.9%"},
		{MinPercentage: 70, MaxPercentage: 79.9, BonusRate: 0.08, Label: "70-79.9%"},
		{MinPercentage: 80, MaxPercentage: 89.9, BonusRate: 0.10, Label: "80-89.9%"},
		{MinPercentage: 90, MaxPercentage: math.MaxFloat64, BonusRate: 0.12, Label: "90-100%+"},
	}
}

// Calculation is the derived bonus breakdown. It is never persisted.
type Calculation struct {
	BonusAmount           float64 `json:"bonus_amount"`
	CurrentTier           *Tier   `json:"current_tier"`
	NextTier              *Tier   `json:"next_tier"`
	ProgressToNextTier    float64 `json:"progress_to_next_tier"`
	AchievementPercentage float64 `json:"achievement_percentage"`
}

// TierFor returns the tier whose interval contains the percentage, or nil.
// Inputs are not validated: NaN and negatives simply match nothing.
func (t TierTable) TierFor(achievementPercentage float64) *Tier {
	for i := range t {
		if achievementPercentage >= t[i].MinPercentage && achievementPercentage <= t[i].MaxPercentage {
			tier := t[i]
			return &tier
		}
	}
	return nil
}

// Calculate maps an achievement percentage and margin to a bonus breakdown.
// It never fails: when no tier matches, BonusAmount is 0 and CurrentTier nil.
func (t TierTable) Calculate(achievementPercentage, totalMargin float64) Calculation {
	calc := Calculation{AchievementPercentage: achievementPercentage}

	current := t.TierFor(achievementPercentage)
	if current == nil {
		return calc
	}
	calc.CurrentTier = current
	calc.BonusAmount = totalMargin * current.BonusRate

	next := t.nextAfter(current.MinPercentage)
	if next == nil {
		calc.ProgressToNextTier = 100
		return calc
	}
	calc.NextTier = next

	span := next.MinPercentage - current.MinPercentage
	progress := (achievementPercentage - current.MinPercentage) / span * 100
	if progress > 100 {
		progress = 100
	}
	calc.ProgressToNextTier = progress

	return calc
}

// Qualifies reports whether the percentage reaches the bonus floor.
func (t TierTable) Qualifies(achievementPercentage float64) bool {
	return achievementPercentage >= QualifyingPercentage
}

func (t TierTable) nextAfter(minPercentage float64) *Tier {
	for i := range t {
		if t[i].MinPercentage > minPercentage {
			tier := t[i]
			return &tier
		}
	}
	return nil
}
