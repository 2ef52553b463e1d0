package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/impactmap/internal/aggregation/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListVerifiedContributions(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]domain.Contribution, error) {
	var items []domain.Contribution
	err := db.WithContext(ctx).Raw(
		`SELECT hours, location_name, category
		 FROM volunteer_activities
		 WHERE user_id = ? AND verification_status = ?`,
		userID,
		"verified",
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
