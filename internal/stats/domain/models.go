package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// HoursRow is one verified activity's contribution to the platform totals.
type HoursRow struct {
	Category string          `gorm:"column:category"`
	Hours    decimal.Decimal `gorm:"column:hours"`
}

type MapActivityRow struct {
	ID               snowflake.ID    `gorm:"column:id"`
	Title            string          `gorm:"column:title"`
	Category         string          `gorm:"column:category"`
	Hours            decimal.Decimal `gorm:"column:hours"`
	LocationName     *string         `gorm:"column:location_name"`
	Latitude         float64         `gorm:"column:latitude"`
	Longitude        float64         `gorm:"column:longitude"`
	ActivityDate     time.Time       `gorm:"column:activity_date"`
	UserName         string          `gorm:"column:user_name"`
	OrganizationName *string         `gorm:"column:organization_name"`
}

type MapOrganizationRow struct {
	ID            snowflake.ID `gorm:"column:id"`
	Name          string       `gorm:"column:name"`
	Category      string       `gorm:"column:category"`
	Address       *string      `gorm:"column:address"`
	Latitude      float64      `gorm:"column:latitude"`
	Longitude     float64      `gorm:"column:longitude"`
	ActivityCount int64        `gorm:"column:activity_count"`
}
