package domain

import (
	"sort"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	aggregationdomain "github.com/smallbiznis/impactmap/internal/aggregation/domain"
)

// Evaluate returns the catalog badges the aggregates qualify for that are not
// already earned, in catalog order (sort order, then id). Thresholds are
// inclusive and unknown requirement types never match.
func Evaluate(agg aggregationdomain.Aggregates, catalog []Badge, earned map[snowflake.ID]struct{}) []snowflake.ID {
	ordered := make([]Badge, len(catalog))
	copy(ordered, catalog)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].SortOrder != ordered[j].SortOrder {
			return ordered[i].SortOrder < ordered[j].SortOrder
		}
		return ordered[i].ID < ordered[j].ID
	})

	var out []snowflake.ID
	for _, badge := range ordered {
		if _, ok := earned[badge.ID]; ok {
			continue
		}
		value, ok := metricFor(agg, badge.RequirementType)
		if !ok {
			continue
		}
		if value.GreaterThanOrEqual(badge.RequirementValue) {
			out = append(out, badge.ID)
		}
	}
	return out
}

func metricFor(agg aggregationdomain.Aggregates, t RequirementType) (decimal.Decimal, bool) {
	switch t {
	case RequirementHours:
		return agg.VerifiedHours, true
	case RequirementActivities:
		return decimal.NewFromInt(agg.VerifiedActivityCount), true
	case RequirementLocations:
		return decimal.NewFromInt(agg.DistinctLocationCount), true
	case RequirementCategories:
		return decimal.NewFromInt(agg.DistinctCategoryCount), true
	default:
		return decimal.Zero, false
	}
}

// ParseRequirementType reports whether value names a known requirement type.
func ParseRequirementType(value string) (RequirementType, bool) {
	switch t := RequirementType(value); t {
	case RequirementHours, RequirementActivities, RequirementLocations, RequirementCategories:
		return t, true
	default:
		return "", false
	}
}
