package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	aggregationdomain "github.com/smallbiznis/impactmap/internal/aggregation/domain"
	"github.com/smallbiznis/impactmap/internal/config"
	"gorm.io/gorm"
)

type Response struct {
	ID               string `json:"id"`
	Code             string `json:"code"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	RequirementType  string `json:"requirement_type"`
	RequirementValue string `json:"requirement_value"`
	EarnedCount      int64  `json:"earned_count"`
}

type Award struct {
	Badge    Badge
	EarnedAt time.Time
}

type SyncResult struct {
	Created int
	Updated int
}

type Service interface {
	Catalog(ctx context.Context) ([]Response, error)
	// Sync inserts missing catalog badges and refreshes the text and
	// thresholds of existing ones. Awards are never touched.
	Sync(ctx context.Context, catalog config.BadgeCatalog) (SyncResult, error)
	// AwardEligible evaluates and persists new awards through tx.
	AwardEligible(ctx context.Context, tx *gorm.DB, userID snowflake.ID, agg aggregationdomain.Aggregates) ([]Award, error)
}

var (
	ErrInvalidCatalog = errors.New("invalid_badge_catalog")
	ErrInvalidUser    = errors.New("invalid_user")
)
