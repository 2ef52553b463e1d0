package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *User) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)
	// FindByIDForUpdate row-locks the user where the dialect supports it.
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)
	List(ctx context.Context, db *gorm.DB) ([]*User, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	UpdateStats(ctx context.Context, db *gorm.DB, id snowflake.ID, stats Stats) error
}
