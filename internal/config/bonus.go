package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	bonusdomain "github.com/fieldscope/fieldscope/internal/bonus/domain"
	"github.com/spf13/viper"
)

// BonusPolicyHolder carries the active bonus tier table. The table is a
// fixed business policy shipped with defaults; deployments may override it
// with a bonus.yml file, reloaded on change without a restart.
type BonusPolicyHolder struct {
	current atomic.Value // holds bonusdomain.TierTable
}

func NewBonusPolicyHolder() (*BonusPolicyHolder, error) {
	v := viper.New()

	v.SetConfigName("bonus")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/fieldscope")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FIELDSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	holder := &BonusPolicyHolder{}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		holder.current.Store(bonusdomain.DefaultTiers())
		return holder, nil
	}

	tiers, err := unmarshalTiers(v)
	if err != nil {
		return nil, err
	}
	holder.current.Store(tiers)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := unmarshalTiers(v)
		if err != nil {
			log.Printf("[bonus-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
	})

	return holder, nil
}

// Tiers returns the active tier table, falling back to the built-in policy.
func (h *BonusPolicyHolder) Tiers() bonusdomain.TierTable {
	if h == nil {
		return bonusdomain.DefaultTiers()
	}
	if tiers, ok := h.current.Load().(bonusdomain.TierTable); ok && len(tiers) > 0 {
		return tiers
	}
	return bonusdomain.DefaultTiers()
}

func unmarshalTiers(v *viper.Viper) (bonusdomain.TierTable, error) {
	var tiers bonusdomain.TierTable
	if err := v.UnmarshalKey("bonus.tiers", &tiers); err != nil {
		return nil, err
	}
	if len(tiers) == 0 {
		return bonusdomain.DefaultTiers(), nil
	}
	if err := validateTiers(tiers); err != nil {
		return nil, err
	}
	return tiers, nil
}

func validateTiers(tiers bonusdomain.TierTable) error {
	for i, tier := range tiers {
		if strings.TrimSpace(tier.Label) == "" {
			return fmt.Errorf("tier %d: label is required", i)
		}
		if tier.BonusRate <= 0 || tier.BonusRate > 1 {
			return fmt.Errorf("tier %q: rate must be in (0,1]", tier.Label)
		}
		if tier.MaxPercentage < tier.MinPercentage {
			return fmt.Errorf("tier %q: max below min", tier.Label)
		}
		if i > 0 && tier.MinPercentage <= tiers[i-1].MinPercentage {
			return fmt.Errorf("tier %q: tiers must ascend by min percentage", tier.Label)
		}
		if i > 0 && tier.MinPercentage <= tiers[i-1].MaxPercentage {
			return fmt.Errorf("tier %q: overlaps previous tier", tier.Label)
		}
	}
	return nil
}
