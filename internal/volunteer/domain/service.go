package domain

import (
	"context"
	"errors"
	"time"

	badgedomain "github.com/smallbiznis/impactmap/internal/badge/domain"
)

type CreateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Response struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Email                 string    `json:"email"`
	VerifiedHours         string    `json:"verified_hours"`
	ExperiencePoints      int64     `json:"experience_points"`
	Level                 int       `json:"level"`
	VerifiedActivityCount int64     `json:"verified_activity_count"`
	DistinctLocationCount int64     `json:"distinct_location_count"`
	DistinctCategoryCount int64     `json:"distinct_category_count"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type EarnedBadgeResponse struct {
	ID               string    `json:"id"`
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	RequirementType  string    `json:"requirement_type"`
	RequirementValue string    `json:"requirement_value"`
	EarnedAt         time.Time `json:"earned_at"`
}

type ProfileResponse struct {
	User   Response              `json:"user"`
	Badges []EarnedBadgeResponse `json:"badges"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (Response, error)
	List(ctx context.Context) ([]Response, error)
	GetByID(ctx context.Context, id string) (Response, error)
	GetProfile(ctx context.Context, id string) (ProfileResponse, error)
}

var (
	ErrInvalidID    = errors.New("invalid_id")
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrEmailTaken   = errors.New("email_taken")
	ErrNotFound     = errors.New("not_found")
)

// ToEarnedBadgeResponse flattens an earned badge for the profile view.
func ToEarnedBadgeResponse(b badgedomain.EarnedBadge) EarnedBadgeResponse {
	return EarnedBadgeResponse{
		ID:               b.ID.String(),
		Code:             b.Code,
		Name:             b.Name,
		Description:      b.Description,
		RequirementType:  string(b.RequirementType),
		RequirementValue: b.RequirementValue.String(),
		EarnedAt:         b.EarnedAt,
	}
}
