package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAchievementPercentage(t *testing.T) {
	cases := []struct {
		name   string
		target int64
		actual int64
		want   float64
	}{
		{"zero target", 0, 500, 0},
		{"zero actual", 1000, 0, 0},
		{"half", 1000, 500, 50},
		{"exact", 1000, 1000, 100},
		{"over target", 1000, 1500, 150},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AchievementPercentage(decimal.NewFromInt(tc.target), decimal.NewFromInt(tc.actual))
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestAchievementPercentage_NegativeTarget(t *testing.T) {
	got := AchievementPercentage(decimal.NewFromInt(-100), decimal.NewFromInt(50))
	assert.Zero(t, got)
}

func TestAchievementPercentage_FractionalCents(t *testing.T) {
	target := decimal.RequireFromString("1234.56")
	actual := decimal.RequireFromString("617.28")
	assert.InDelta(t, 50, AchievementPercentage(target, actual), 1e-9)
}
