package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	ListVerifiedContributions(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]Contribution, error)
}
