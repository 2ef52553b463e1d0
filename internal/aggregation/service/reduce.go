package service

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/impactmap/internal/aggregation/domain"
)

// Reduce folds verified contributions into totals. Location names are trimmed
// and compared case-sensitively; blank names are not counted.
func Reduce(items []domain.Contribution) domain.Aggregates {
	hours := decimal.Zero
	locations := make(map[string]struct{})
	categories := make(map[string]struct{})

	for _, item := range items {
		hours = hours.Add(item.Hours)
		if item.LocationName != nil {
			if name := strings.TrimSpace(*item.LocationName); name != "" {
				locations[name] = struct{}{}
			}
		}
		if category := strings.TrimSpace(item.Category); category != "" {
			categories[category] = struct{}{}
		}
	}

	return domain.Aggregates{
		VerifiedHours:         hours,
		VerifiedActivityCount: int64(len(items)),
		DistinctLocationCount: int64(len(locations)),
		DistinctCategoryCount: int64(len(categories)),
	}
}
