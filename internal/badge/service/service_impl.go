package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	aggregationdomain "github.com/smallbiznis/impactmap/internal/aggregation/domain"
	"github.com/smallbiznis/impactmap/internal/badge/domain"
	"github.com/smallbiznis/impactmap/internal/clock"
	"github.com/smallbiznis/impactmap/internal/config"
	obsmetrics "github.com/smallbiznis/impactmap/internal/observability/metrics"
	"github.com/smallbiznis/impactmap/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	metrics *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("badge.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) Catalog(ctx context.Context) ([]domain.Response, error) {
	entries, err := s.repo.ListCatalogWithEarnedCount(ctx, s.db)
	if err != nil {
		return nil, db.StorageError(err)
	}

	resp := make([]domain.Response, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, domain.Response{
			ID:               entry.ID.String(),
			Code:             entry.Code,
			Name:             entry.Name,
			Description:      entry.Description,
			RequirementType:  string(entry.RequirementType),
			RequirementValue: entry.RequirementValue.String(),
			EarnedCount:      entry.EarnedCount,
		})
	}
	return resp, nil
}

func (s *Service) Sync(ctx context.Context, catalog config.BadgeCatalog) (domain.SyncResult, error) {
	if err := config.ValidateBadgeCatalog(catalog); err != nil {
		return domain.SyncResult{}, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}

	var result domain.SyncResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := s.clock.Now()
		for _, def := range catalog.Badges {
			code := BadgeCode(def)
			reqType, _ := domain.ParseRequirementType(strings.ToLower(strings.TrimSpace(def.RequirementType)))

			existing, err := s.repo.FindByCode(ctx, tx, code)
			if err != nil {
				return err
			}

			if existing == nil {
				badge := domain.Badge{
					ID:               s.genID.Generate(),
					Code:             code,
					Name:             strings.TrimSpace(def.Name),
					Description:      strings.TrimSpace(def.Description),
					RequirementType:  reqType,
					RequirementValue: decimal.NewFromFloat(def.RequirementValue).Round(db.DecimalScale),
					SortOrder:        def.SortOrder,
					CreatedAt:        now,
					UpdatedAt:        now,
				}
				if err := s.repo.Insert(ctx, tx, &badge); err != nil {
					return err
				}
				result.Created++
				continue
			}

			existing.Name = strings.TrimSpace(def.Name)
			existing.Description = strings.TrimSpace(def.Description)
			existing.RequirementType = reqType
			existing.RequirementValue = decimal.NewFromFloat(def.RequirementValue).Round(db.DecimalScale)
			existing.SortOrder = def.SortOrder
			existing.UpdatedAt = now
			if err := s.repo.Update(ctx, tx, existing); err != nil {
				return err
			}
			result.Updated++
		}
		return nil
	})
	if err != nil {
		return domain.SyncResult{}, db.StorageError(err)
	}

	s.log.Info("badge catalog synced",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
	)
	return result, nil
}

func (s *Service) AwardEligible(ctx context.Context, tx *gorm.DB, userID snowflake.ID, agg aggregationdomain.Aggregates) ([]domain.Award, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	catalog, err := s.repo.ListCatalog(ctx, tx)
	if err != nil {
		return nil, db.StorageError(err)
	}

	earnedIDs, err := s.repo.ListEarnedIDs(ctx, tx, userID)
	if err != nil {
		return nil, db.StorageError(err)
	}
	earned := make(map[snowflake.ID]struct{}, len(earnedIDs))
	for _, id := range earnedIDs {
		earned[id] = struct{}{}
	}

	eligible := domain.Evaluate(agg, catalog, earned)
	if len(eligible) == 0 {
		return nil, nil
	}

	byID := make(map[snowflake.ID]domain.Badge, len(catalog))
	for _, badge := range catalog {
		byID[badge.ID] = badge
	}

	now := s.clock.Now()
	awards := make([]domain.Award, 0, len(eligible))
	for _, badgeID := range eligible {
		inserted, err := s.repo.InsertUserBadgeIfAbsent(ctx, tx, &domain.UserBadge{
			ID:       s.genID.Generate(),
			UserID:   userID,
			BadgeID:  badgeID,
			EarnedAt: now,
		})
		if err != nil {
			return nil, db.StorageError(err)
		}
		if !inserted {
			continue
		}
		badge := byID[badgeID]
		awards = append(awards, domain.Award{Badge: badge, EarnedAt: now})
		s.metrics.RecordBadgesAwarded(ctx, string(badge.RequirementType), 1)
	}

	if len(awards) > 0 {
		s.log.Info("badges awarded",
			zap.String("user_id", userID.String()),
			zap.Int("count", len(awards)),
		)
	}
	return awards, nil
}

// BadgeCode returns the configured code, or a slug of the name when unset.
func BadgeCode(def config.BadgeDefinition) string {
	if code := strings.TrimSpace(def.Code); code != "" {
		return code
	}
	return slug.Make(def.Name)
}
