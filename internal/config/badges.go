package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// BadgeDefinition describes one entry of the static badge catalog.
type BadgeDefinition struct {
	Code             string  `mapstructure:"code"`
	Name             string  `mapstructure:"name"`
	Description      string  `mapstructure:"description"`
	RequirementType  string  `mapstructure:"requirement_type"`
	RequirementValue float64 `mapstructure:"requirement_value"`
	SortOrder        int     `mapstructure:"sort_order"`
}

type BadgeCatalog struct {
	Badges []BadgeDefinition `mapstructure:"badges"`
}

func DefaultBadgeCatalog() BadgeCatalog {
	return BadgeCatalog{
		Badges: []BadgeDefinition{
			{Code: "first-step", Name: "First Step", Description: "Complete your first verified activity", RequirementType: "activities", RequirementValue: 1, SortOrder: 10},
			{Code: "enthusiast", Name: "Enthusiast", Description: "Volunteer for 10 verified hours", RequirementType: "hours", RequirementValue: 10, SortOrder: 20},
			{Code: "explorer", Name: "Explorer", Description: "Volunteer in 3 different places", RequirementType: "locations", RequirementValue: 3, SortOrder: 30},
			{Code: "all-rounder", Name: "All-Rounder", Description: "Volunteer in 3 different categories", RequirementType: "categories", RequirementValue: 3, SortOrder: 40},
			{Code: "devoted", Name: "Devoted", Description: "Volunteer for 50 verified hours", RequirementType: "hours", RequirementValue: 50, SortOrder: 50},
			{Code: "community-pillar", Name: "Community Pillar", Description: "Volunteer for 100 verified hours", RequirementType: "hours", RequirementValue: 100, SortOrder: 60},
		},
	}
}

var validRequirementTypes = map[string]struct{}{
	"hours":      {},
	"activities": {},
	"locations":  {},
	"categories": {},
}

// BadgeCatalogHolder keeps the current catalog and notifies listeners on reload.
type BadgeCatalogHolder struct {
	current atomic.Value // holds BadgeCatalog

	mu        sync.Mutex
	listeners []func(BadgeCatalog)
}

// NewStaticBadgeCatalogHolder wraps a fixed catalog without file watching.
func NewStaticBadgeCatalogHolder(catalog BadgeCatalog) *BadgeCatalogHolder {
	holder := &BadgeCatalogHolder{}
	holder.current.Store(catalog)
	return holder
}

func NewBadgeCatalogHolder(cfg Config) (*BadgeCatalogHolder, error) {
	v := viper.New()

	if cfg.BadgeCatalogPath != "" {
		v.SetConfigFile(cfg.BadgeCatalogPath)
	} else {
		v.SetConfigName("badges")
		v.SetConfigType("yml")
		v.AddConfigPath("/etc/impactmap")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("IMPACTMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	fromFile := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		fromFile = false
		v.SetDefault("badges", DefaultBadgeCatalog().Badges)
	}

	catalog, err := decodeBadgeCatalog(v)
	if err != nil {
		return nil, err
	}

	holder := NewStaticBadgeCatalogHolder(catalog)
	if !fromFile {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := decodeBadgeCatalog(v)
		if err != nil {
			zap.L().Warn("badge catalog reload ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		holder.notify(updated)
		zap.L().Info("badge catalog reloaded", zap.String("path", e.Name))
	})

	return holder, nil
}

func (h *BadgeCatalogHolder) Get() BadgeCatalog {
	return h.current.Load().(BadgeCatalog)
}

// OnChange registers fn to run after every successful reload.
func (h *BadgeCatalogHolder) OnChange(fn func(BadgeCatalog)) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	h.listeners = append(h.listeners, fn)
	h.mu.Unlock()
}

func (h *BadgeCatalogHolder) notify(catalog BadgeCatalog) {
	h.mu.Lock()
	listeners := append([]func(BadgeCatalog){}, h.listeners...)
	h.mu.Unlock()
	for _, fn := range listeners {
		fn(catalog)
	}
}

func decodeBadgeCatalog(v *viper.Viper) (BadgeCatalog, error) {
	var catalog BadgeCatalog
	if err := v.UnmarshalKey("badges", &catalog.Badges); err != nil {
		return BadgeCatalog{}, err
	}
	if err := ValidateBadgeCatalog(catalog); err != nil {
		return BadgeCatalog{}, err
	}
	return catalog, nil
}

func ValidateBadgeCatalog(catalog BadgeCatalog) error {
	if len(catalog.Badges) == 0 {
		return errors.New("badges cannot be empty")
	}
	seen := make(map[string]struct{}, len(catalog.Badges))
	for i, def := range catalog.Badges {
		if strings.TrimSpace(def.Name) == "" {
			return fmt.Errorf("badges[%d].name is required", i)
		}
		if _, ok := validRequirementTypes[strings.ToLower(strings.TrimSpace(def.RequirementType))]; !ok {
			return fmt.Errorf("badges[%d].requirement_type %q is not supported", i, def.RequirementType)
		}
		if def.RequirementValue <= 0 {
			return fmt.Errorf("badges[%d].requirement_value must be positive", i)
		}
		code := strings.TrimSpace(def.Code)
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			return fmt.Errorf("badges[%d].code %q is duplicated", i, code)
		}
		seen[code] = struct{}{}
	}
	return nil
}
