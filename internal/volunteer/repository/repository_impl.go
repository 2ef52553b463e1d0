package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/impactmap/internal/volunteer/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO volunteers (id, name, email, verified_hours, experience_points, level,
		 verified_activity_count, distinct_location_count, distinct_category_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Name,
		user.Email,
		user.VerifiedHours,
		user.ExperiencePoints,
		user.Level,
		user.VerifiedActivityCount,
		user.DistinctLocationCount,
		user.DistinctCategoryCount,
		user.CreatedAt,
		user.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&user).Error
	if err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, nil
	}
	return &user, nil
}

func (r *repo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Limit(1).
		Find(&user).Error
	if err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, nil
	}
	return &user, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.User, error) {
	var users []*domain.User
	err := db.WithContext(ctx).
		Model(&domain.User{}).
		Order("created_at desc, id desc").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) UpdateStats(ctx context.Context, db *gorm.DB, id snowflake.ID, stats domain.Stats) error {
	return db.WithContext(ctx).Exec(
		`UPDATE volunteers
		 SET verified_hours = ?, experience_points = ?, level = ?,
		     verified_activity_count = ?, distinct_location_count = ?, distinct_category_count = ?,
		     updated_at = ?
		 WHERE id = ?`,
		stats.VerifiedHours,
		stats.ExperiencePoints,
		stats.Level,
		stats.VerifiedActivityCount,
		stats.DistinctLocationCount,
		stats.DistinctCategoryCount,
		stats.UpdatedAt,
		id,
	).Error
}
