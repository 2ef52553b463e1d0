package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, badge *Badge) error
	Update(ctx context.Context, db *gorm.DB, badge *Badge) error
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Badge, error)
	ListCatalog(ctx context.Context, db *gorm.DB) ([]Badge, error)
	ListCatalogWithEarnedCount(ctx context.Context, db *gorm.DB) ([]CatalogEntry, error)
	ListEarnedIDs(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]snowflake.ID, error)
	ListEarnedByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]EarnedBadge, error)
	// InsertUserBadgeIfAbsent reports whether a new award row was written.
	InsertUserBadgeIfAbsent(ctx context.Context, db *gorm.DB, award *UserBadge) (bool, error)
}
