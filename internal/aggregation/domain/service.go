package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Service interface {
	Aggregate(ctx context.Context, userID snowflake.ID) (Aggregates, error)
	// AggregateTx reads through tx so the totals see uncommitted transition writes.
	AggregateTx(ctx context.Context, tx *gorm.DB, userID snowflake.ID) (Aggregates, error)
}

var (
	ErrInvalidUser = errors.New("invalid_user")
	ErrNotFound    = errors.New("not_found")
)
