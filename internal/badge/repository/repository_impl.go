package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/impactmap/internal/badge/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, badge *domain.Badge) error {
	return db.WithContext(ctx).Create(badge).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, badge *domain.Badge) error {
	return db.WithContext(ctx).
		Model(&domain.Badge{}).
		Where("id = ?", badge.ID).
		Updates(map[string]any{
			"name":              badge.Name,
			"description":       badge.Description,
			"requirement_type":  badge.RequirementType,
			"requirement_value": badge.RequirementValue,
			"sort_order":        badge.SortOrder,
			"updated_at":        badge.UpdatedAt,
		}).Error
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Badge, error) {
	var badge domain.Badge
	err := db.WithContext(ctx).
		Where("code = ?", code).
		Limit(1).
		Find(&badge).Error
	if err != nil {
		return nil, err
	}
	if badge.ID == 0 {
		return nil, nil
	}
	return &badge, nil
}

func (r *repo) ListCatalog(ctx context.Context, db *gorm.DB) ([]domain.Badge, error) {
	var badges []domain.Badge
	err := db.WithContext(ctx).
		Order("sort_order asc, id asc").
		Find(&badges).Error
	if err != nil {
		return nil, err
	}
	return badges, nil
}

func (r *repo) ListCatalogWithEarnedCount(ctx context.Context, db *gorm.DB) ([]domain.CatalogEntry, error) {
	var entries []domain.CatalogEntry
	err := db.WithContext(ctx).Raw(
		`SELECT b.id, b.code, b.name, b.description, b.requirement_type, b.requirement_value,
		        b.sort_order, b.created_at, b.updated_at,
		        COUNT(ub.user_id) AS earned_count
		 FROM badges b
		 LEFT JOIN user_badges ub ON ub.badge_id = b.id
		 GROUP BY b.id, b.code, b.name, b.description, b.requirement_type, b.requirement_value,
		          b.sort_order, b.created_at, b.updated_at
		 ORDER BY b.requirement_value ASC, b.sort_order ASC, b.id ASC`,
	).Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repo) ListEarnedIDs(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]snowflake.ID, error) {
	var ids []snowflake.ID
	err := db.WithContext(ctx).
		Model(&domain.UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repo) ListEarnedByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]domain.EarnedBadge, error) {
	var items []domain.EarnedBadge
	err := db.WithContext(ctx).Raw(
		`SELECT b.id, b.code, b.name, b.description, b.requirement_type, b.requirement_value,
		        b.sort_order, b.created_at, b.updated_at, ub.earned_at
		 FROM user_badges ub
		 JOIN badges b ON b.id = ub.badge_id
		 WHERE ub.user_id = ?
		 ORDER BY ub.earned_at DESC, b.sort_order ASC, b.id ASC`,
		userID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) InsertUserBadgeIfAbsent(ctx context.Context, db *gorm.DB, award *domain.UserBadge) (bool, error) {
	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
			DoNothing: true,
		}).
		Create(award)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
