package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, activity *Activity) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Activity, error)
	// CompareAndSetStatus writes to only if the stored status is still from.
	CompareAndSetStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, from, to Status, at time.Time) (bool, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]ActivityView, error)
}
