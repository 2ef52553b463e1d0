package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/impactmap/internal/activity/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, activity *domain.Activity) error {
	return db.WithContext(ctx).Create(activity).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Activity, error) {
	var activity domain.Activity
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&activity).Error
	if err != nil {
		return nil, err
	}
	if activity.ID == 0 {
		return nil, nil
	}
	return &activity, nil
}

func (r *repo) CompareAndSetStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, from, to domain.Status, at time.Time) (bool, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE volunteer_activities
		 SET verification_status = ?, updated_at = ?
		 WHERE id = ? AND verification_status = ?`,
		to,
		at,
		id,
		from,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.ActivityView, error) {
	var items []domain.ActivityView
	stmt := db.WithContext(ctx).
		Table("volunteer_activities AS va").
		Select(`va.*, u.name AS user_name, o.name AS organization_name`).
		Joins("JOIN volunteers u ON u.id = va.user_id").
		Joins("LEFT JOIN organizations o ON o.id = va.organization_id")
	if filter.UserID != nil {
		stmt = stmt.Where("va.user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		stmt = stmt.Where("va.verification_status = ?", *filter.Status)
	}
	err := stmt.
		Order("va.activity_date desc, va.created_at desc, va.id desc").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
