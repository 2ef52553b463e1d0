package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type RequirementType string

const (
	RequirementHours      RequirementType = "hours"
	RequirementActivities RequirementType = "activities"
	RequirementLocations  RequirementType = "locations"
	RequirementCategories RequirementType = "categories"
)

type Badge struct {
	ID               snowflake.ID    `gorm:"primaryKey" json:"id"`
	Code             string          `gorm:"not null;uniqueIndex" json:"code"`
	Name             string          `gorm:"not null" json:"name"`
	Description      string          `gorm:"not null;default:''" json:"description"`
	RequirementType  RequirementType `gorm:"type:varchar(32);not null" json:"requirement_type"`
	RequirementValue decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"requirement_value"`
	SortOrder        int             `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt        time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null" json:"updated_at"`
}

func (Badge) TableName() string {
	return "badges"
}

// UserBadge records an award. Rows are insert-if-absent and never deleted.
type UserBadge struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID   snowflake.ID `gorm:"not null;uniqueIndex:ux_user_badges_user_badge" json:"user_id"`
	BadgeID  snowflake.ID `gorm:"not null;uniqueIndex:ux_user_badges_user_badge" json:"badge_id"`
	EarnedAt time.Time    `gorm:"not null" json:"earned_at"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}

type EarnedBadge struct {
	Badge
	EarnedAt time.Time `json:"earned_at"`
}

type CatalogEntry struct {
	Badge
	EarnedCount int64 `json:"earned_count"`
}
