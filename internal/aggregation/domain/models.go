package domain

import "github.com/shopspring/decimal"

// Aggregates are the verified totals derived for one volunteer.
type Aggregates struct {
	VerifiedHours         decimal.Decimal
	VerifiedActivityCount int64
	DistinctLocationCount int64
	DistinctCategoryCount int64
}

// Contribution is the slice of a verified activity the totals are built from.
type Contribution struct {
	Hours        decimal.Decimal `gorm:"column:hours"`
	LocationName *string         `gorm:"column:location_name"`
	Category     string          `gorm:"column:category"`
}
