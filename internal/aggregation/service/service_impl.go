package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/impactmap/internal/aggregation/domain"
	volunteerdomain "github.com/smallbiznis/impactmap/internal/volunteer/domain"
	"github.com/smallbiznis/impactmap/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	Repo          domain.Repository
	VolunteerRepo volunteerdomain.Repository
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	repo          domain.Repository
	volunteerRepo volunteerdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("aggregation.service"),
		repo:          p.Repo,
		volunteerRepo: p.VolunteerRepo,
	}
}

func (s *Service) Aggregate(ctx context.Context, userID snowflake.ID) (domain.Aggregates, error) {
	return s.AggregateTx(ctx, s.db, userID)
}

func (s *Service) AggregateTx(ctx context.Context, tx *gorm.DB, userID snowflake.ID) (domain.Aggregates, error) {
	if userID == 0 {
		return domain.Aggregates{}, domain.ErrInvalidUser
	}

	user, err := s.volunteerRepo.FindByID(ctx, tx, userID)
	if err != nil {
		return domain.Aggregates{}, db.StorageError(err)
	}
	if user == nil {
		return domain.Aggregates{}, domain.ErrNotFound
	}

	items, err := s.repo.ListVerifiedContributions(ctx, tx, userID)
	if err != nil {
		return domain.Aggregates{}, db.StorageError(err)
	}

	agg := Reduce(items)
	s.log.Debug("aggregated verified activities",
		zap.String("user_id", userID.String()),
		zap.Int64("verified_activity_count", agg.VerifiedActivityCount),
		zap.String("verified_hours", agg.VerifiedHours.String()),
	)
	return agg, nil
}
