// Package domain contains persistence models for the organization service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Organization hosts volunteer activities. Only verified organizations appear
// on the map.
type Organization struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:text;not null" json:"name"`
	Slug        string       `gorm:"type:text;not null;uniqueIndex:ux_organizations_slug" json:"slug"`
	Description string       `gorm:"type:text;not null;default:''" json:"description"`
	Category    string       `gorm:"type:text;not null" json:"category"`
	Address     *string      `gorm:"type:text" json:"address,omitempty"`
	Latitude    *float64     `json:"latitude,omitempty"`
	Longitude   *float64     `json:"longitude,omitempty"`
	Verified    bool         `gorm:"not null;default:false" json:"verified"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Organization) TableName() string { return "organizations" }

// OrganizationWithStats carries verified activity totals per organization.
type OrganizationWithStats struct {
	Organization
	ActivityCount       int64           `gorm:"column:activity_count"`
	TotalVolunteerHours decimal.Decimal `gorm:"column:total_volunteer_hours"`
}
