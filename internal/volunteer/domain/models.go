package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// User is a volunteer. The verified_* and experience columns are derived and
// only written by the recompute pipeline.
type User struct {
	ID                    snowflake.ID    `gorm:"primaryKey" json:"id"`
	Name                  string          `gorm:"not null" json:"name"`
	Email                 string          `gorm:"not null;uniqueIndex" json:"email"`
	VerifiedHours         decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"verified_hours"`
	ExperiencePoints      decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"experience_points"`
	Level                 int             `gorm:"not null;default:1" json:"level"`
	VerifiedActivityCount int64           `gorm:"not null;default:0" json:"verified_activity_count"`
	DistinctLocationCount int64           `gorm:"not null;default:0" json:"distinct_location_count"`
	DistinctCategoryCount int64           `gorm:"not null;default:0" json:"distinct_category_count"`
	CreatedAt             time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
	return "volunteers"
}

// Stats is the derived block written back after a recompute.
type Stats struct {
	VerifiedHours         decimal.Decimal
	ExperiencePoints      decimal.Decimal
	Level                 int
	VerifiedActivityCount int64
	DistinctLocationCount int64
	DistinctCategoryCount int64
	UpdatedAt             time.Time
}
