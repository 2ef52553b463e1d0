package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/smallbiznis/impactmap/internal/activity/domain"
	aggregationdomain "github.com/smallbiznis/impactmap/internal/aggregation/domain"
	badgedomain "github.com/smallbiznis/impactmap/internal/badge/domain"
	"github.com/smallbiznis/impactmap/internal/clock"
	"github.com/smallbiznis/impactmap/internal/leveling"
	"github.com/smallbiznis/impactmap/internal/lock"
	obslogger "github.com/smallbiznis/impactmap/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/impactmap/internal/observability/metrics"
	"github.com/smallbiznis/impactmap/internal/verification/domain"
	volunteerdomain "github.com/smallbiznis/impactmap/internal/volunteer/domain"
	"github.com/smallbiznis/impactmap/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB             *gorm.DB
	Log            *zap.Logger
	Clock          clock.Clock
	Locker         lock.Locker
	ActivityRepo   activitydomain.Repository
	VolunteerRepo  volunteerdomain.Repository
	AggregationSvc aggregationdomain.Service
	BadgeSvc       badgedomain.Service
	Metrics        *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db             *gorm.DB
	log            *zap.Logger
	clock          clock.Clock
	locker         lock.Locker
	activityRepo   activitydomain.Repository
	volunteerRepo  volunteerdomain.Repository
	aggregationSvc aggregationdomain.Service
	badgeSvc       badgedomain.Service
	metrics        *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:             p.DB,
		log:            p.Log.Named("verification.service"),
		clock:          p.Clock,
		locker:         p.Locker,
		activityRepo:   p.ActivityRepo,
		volunteerRepo:  p.VolunteerRepo,
		aggregationSvc: p.AggregationSvc,
		badgeSvc:       p.BadgeSvc,
		metrics:        p.Metrics,
	}
}

type recomputed struct {
	stats  domain.StatsResponse
	awards []domain.AwardResponse
}

func (s *Service) SetStatus(ctx context.Context, req domain.SetStatusRequest) (domain.Result, error) {
	activityID, err := snowflake.ParseString(strings.TrimSpace(req.ActivityID))
	if err != nil || activityID == 0 {
		return domain.Result{}, domain.ErrInvalidID
	}

	target, err := activitydomain.ParseStatus(req.Status)
	if err != nil {
		return domain.Result{}, domain.ErrInvalidStatus
	}

	activity, err := s.activityRepo.FindByID(ctx, s.db, activityID)
	if err != nil {
		return domain.Result{}, db.StorageError(err)
	}
	if activity == nil {
		return domain.Result{}, domain.ErrNotFound
	}

	previous := activity.VerificationStatus
	changed := previous != target
	affectsTotals := target == activitydomain.StatusVerified || (changed && previous == activitydomain.StatusVerified)

	log := obslogger.WithUser(obslogger.WithContext(ctx, s.log), activity.UserID.String()).With(
		zap.String("activity_id", activityID.String()),
		zap.String("from", string(previous)),
		zap.String("to", string(target)),
	)

	if !changed && !affectsTotals {
		return domain.Result{
			Activity:       activitydomain.ToResponse(activitydomain.ActivityView{Activity: *activity}),
			PreviousStatus: string(previous),
			AwardedBadges:  []domain.AwardResponse{},
		}, nil
	}

	pipeline := obsmetrics.Pipeline()
	start := time.Now()

	release, err := s.acquire(ctx, activity.UserID)
	if err != nil {
		pipeline.IncError(obsmetrics.PipelineStageTransition, err)
		return domain.Result{}, err
	}
	defer release()

	var out *recomputed
	now := s.clock.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if changed {
			ok, err := s.activityRepo.CompareAndSetStatus(ctx, tx, activityID, previous, target, now)
			if err != nil {
				pipeline.IncError(obsmetrics.PipelineStageTransition, err)
				return db.StorageError(err)
			}
			if !ok {
				return domain.ErrConflict
			}
		}

		if !affectsTotals {
			return nil
		}

		res, err := s.recomputeTx(ctx, tx, activity.UserID)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			log.Info("verification status changed concurrently")
		} else {
			log.Error("verification transition failed", zap.Error(err))
		}
		if affectsTotals {
			s.metrics.RecordRecompute(ctx, obsmetrics.PipelineTriggerTransition, "error")
		}
		return domain.Result{}, err
	}

	if changed {
		activity.VerificationStatus = target
		activity.UpdatedAt = now
		pipeline.IncTransition(string(previous), string(target))
		s.metrics.RecordTransition(ctx, string(previous), string(target))
	}

	result := domain.Result{
		Activity:       activitydomain.ToResponse(activitydomain.ActivityView{Activity: *activity}),
		PreviousStatus: string(previous),
		Changed:        changed,
		AwardedBadges:  []domain.AwardResponse{},
	}
	if out != nil {
		stats := out.stats
		result.Stats = &stats
		result.AwardedBadges = out.awards
		pipeline.ObserveRun(obsmetrics.PipelineTriggerTransition, time.Since(start))
		s.metrics.RecordRecompute(ctx, obsmetrics.PipelineTriggerTransition, "ok")
	}

	log.Info("verification status set",
		zap.Bool("changed", changed),
		zap.Int("badges_awarded", len(result.AwardedBadges)),
	)
	return result, nil
}

func (s *Service) Recompute(ctx context.Context, userID string) (domain.RecomputeResult, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(userID))
	if err != nil || id == 0 {
		return domain.RecomputeResult{}, domain.ErrInvalidUser
	}

	pipeline := obsmetrics.Pipeline()
	start := time.Now()

	release, err := s.acquire(ctx, id)
	if err != nil {
		pipeline.IncError(obsmetrics.PipelineStageAggregate, err)
		return domain.RecomputeResult{}, err
	}
	defer release()

	var out *recomputed
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := s.recomputeTx(ctx, tx, id)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		s.metrics.RecordRecompute(ctx, obsmetrics.PipelineTriggerManual, "error")
		return domain.RecomputeResult{}, err
	}

	pipeline.ObserveRun(obsmetrics.PipelineTriggerManual, time.Since(start))
	s.metrics.RecordRecompute(ctx, obsmetrics.PipelineTriggerManual, "ok")
	obslogger.WithUser(obslogger.WithContext(ctx, s.log), id.String()).Info("volunteer recomputed",
		zap.String("verified_hours", out.stats.VerifiedHours),
		zap.Int("level", out.stats.Level),
	)

	return domain.RecomputeResult{
		Stats:         out.stats,
		AwardedBadges: out.awards,
	}, nil
}

func (s *Service) acquire(ctx context.Context, userID snowflake.ID) (func(), error) {
	start := time.Now()
	release, err := s.locker.Acquire(ctx, lock.UserKey(userID.String()))
	obsmetrics.Pipeline().ObserveLockWait(time.Since(start))
	if err != nil {
		return nil, err
	}
	return release, nil
}

// recomputeTx runs aggregate, level and badge evaluation through tx. The user
// row is locked first so concurrent writers for the same volunteer queue up.
func (s *Service) recomputeTx(ctx context.Context, tx *gorm.DB, userID snowflake.ID) (*recomputed, error) {
	pipeline := obsmetrics.Pipeline()

	user, err := s.volunteerRepo.FindByIDForUpdate(ctx, tx, userID)
	if err != nil {
		pipeline.IncError(obsmetrics.PipelineStageAggregate, err)
		return nil, db.StorageError(err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	agg, err := s.aggregationSvc.AggregateTx(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, aggregationdomain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		pipeline.IncError(obsmetrics.PipelineStageAggregate, err)
		return nil, err
	}

	progress, err := leveling.LevelFor(agg.VerifiedHours)
	if err != nil {
		pipeline.IncError(obsmetrics.PipelineStageLevel, err)
		return nil, err
	}

	if err := s.volunteerRepo.UpdateStats(ctx, tx, userID, volunteerdomain.Stats{
		VerifiedHours:         agg.VerifiedHours,
		ExperiencePoints:      progress.ExperiencePoints,
		Level:                 progress.Level,
		VerifiedActivityCount: agg.VerifiedActivityCount,
		DistinctLocationCount: agg.DistinctLocationCount,
		DistinctCategoryCount: agg.DistinctCategoryCount,
		UpdatedAt:             s.clock.Now(),
	}); err != nil {
		pipeline.IncError(obsmetrics.PipelineStageLevel, err)
		return nil, db.StorageError(err)
	}

	awards, err := s.badgeSvc.AwardEligible(ctx, tx, userID, agg)
	if err != nil {
		pipeline.IncError(obsmetrics.PipelineStageBadges, err)
		return nil, err
	}

	out := &recomputed{
		stats: domain.StatsResponse{
			UserID:                userID.String(),
			VerifiedHours:         agg.VerifiedHours.String(),
			ExperiencePoints:      progress.DisplayPoints(),
			Level:                 progress.Level,
			ProgressToNextLevel:   progress.ProgressToNextLevel.String(),
			VerifiedActivityCount: agg.VerifiedActivityCount,
			DistinctLocationCount: agg.DistinctLocationCount,
			DistinctCategoryCount: agg.DistinctCategoryCount,
		},
		awards: make([]domain.AwardResponse, 0, len(awards)),
	}
	for _, award := range awards {
		out.awards = append(out.awards, domain.AwardResponse{
			BadgeID:  award.Badge.ID.String(),
			Code:     award.Badge.Code,
			Name:     award.Badge.Name,
			EarnedAt: award.EarnedAt,
		})
	}
	return out, nil
}
