package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CountUsers(ctx context.Context, db *gorm.DB) (int64, error)
	VerifiedHours(ctx context.Context, db *gorm.DB) ([]HoursRow, error)
	MapActivities(ctx context.Context, db *gorm.DB) ([]MapActivityRow, error)
	MapOrganizations(ctx context.Context, db *gorm.DB) ([]MapOrganizationRow, error)
}
