package repository

import (
	"context"

	"github.com/smallbiznis/impactmap/internal/stats/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) CountUsers(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM volunteers`).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) VerifiedHours(ctx context.Context, db *gorm.DB) ([]domain.HoursRow, error) {
	var rows []domain.HoursRow
	err := db.WithContext(ctx).Raw(
		`SELECT category, hours
		 FROM volunteer_activities
		 WHERE verification_status = 'verified'`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) MapActivities(ctx context.Context, db *gorm.DB) ([]domain.MapActivityRow, error) {
	var rows []domain.MapActivityRow
	err := db.WithContext(ctx).Raw(
		`SELECT va.id, va.title, va.category, va.hours, va.location_name,
		        va.latitude, va.longitude, va.activity_date,
		        u.name AS user_name, o.name AS organization_name
		 FROM volunteer_activities va
		 JOIN volunteers u ON u.id = va.user_id
		 LEFT JOIN organizations o ON o.id = va.organization_id
		 WHERE va.verification_status = 'verified'
		   AND va.latitude IS NOT NULL
		   AND va.longitude IS NOT NULL
		 ORDER BY va.activity_date DESC, va.id DESC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) MapOrganizations(ctx context.Context, db *gorm.DB) ([]domain.MapOrganizationRow, error) {
	var rows []domain.MapOrganizationRow
	err := db.WithContext(ctx).Raw(
		`SELECT o.id, o.name, o.category, o.address, o.latitude, o.longitude,
		        (SELECT COUNT(*) FROM volunteer_activities va
		          WHERE va.organization_id = o.id AND va.verification_status = 'verified') AS activity_count
		 FROM organizations o
		 WHERE o.latitude IS NOT NULL AND o.longitude IS NOT NULL AND o.verified = ?
		 ORDER BY o.name ASC, o.id ASC`,
		true,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
