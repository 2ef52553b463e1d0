package domain

import (
	"context"
	"errors"
	"time"

	activitydomain "github.com/smallbiznis/impactmap/internal/activity/domain"
)

type SetStatusRequest struct {
	ActivityID string `json:"activity_id"`
	Status     string `json:"status"`
}

type StatsResponse struct {
	UserID                string `json:"user_id"`
	VerifiedHours         string `json:"verified_hours"`
	ExperiencePoints      int64  `json:"experience_points"`
	Level                 int    `json:"level"`
	ProgressToNextLevel   string `json:"progress_to_next_level"`
	VerifiedActivityCount int64  `json:"verified_activity_count"`
	DistinctLocationCount int64  `json:"distinct_location_count"`
	DistinctCategoryCount int64  `json:"distinct_category_count"`
}

type AwardResponse struct {
	BadgeID  string    `json:"badge_id"`
	Code     string    `json:"code"`
	Name     string    `json:"name"`
	EarnedAt time.Time `json:"earned_at"`
}

type Result struct {
	Activity       activitydomain.Response `json:"activity"`
	PreviousStatus string                  `json:"previous_status"`
	Changed        bool                    `json:"changed"`
	Stats          *StatsResponse          `json:"stats,omitempty"`
	AwardedBadges  []AwardResponse         `json:"awarded_badges"`
}

type RecomputeResult struct {
	Stats         StatsResponse   `json:"stats"`
	AwardedBadges []AwardResponse `json:"awarded_badges"`
}

type Service interface {
	// SetStatus moves an activity to a new verification status. Changes into
	// or out of verified recompute the owner's totals, level and badges in the
	// same transaction.
	SetStatus(ctx context.Context, req SetStatusRequest) (Result, error)
	// Recompute rebuilds a volunteer's derived totals from the verified set.
	Recompute(ctx context.Context, userID string) (RecomputeResult, error)
}

var (
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidUser   = errors.New("invalid_user")
	ErrInvalidStatus = errors.New("invalid_status")
	ErrNotFound      = errors.New("not_found")
	ErrUserNotFound  = errors.New("user_not_found")
	ErrConflict      = errors.New("status_conflict")
)
