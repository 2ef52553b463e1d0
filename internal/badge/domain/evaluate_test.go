package domain

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	aggregationdomain "github.com/smallbiznis/impactmap/internal/aggregation/domain"
	"github.com/stretchr/testify/assert"
)

func testCatalog() []Badge {
	return []Badge{
		{ID: 6, Code: "pillar", RequirementType: RequirementHours, RequirementValue: decimal.NewFromInt(100), SortOrder: 60},
		{ID: 1, Code: "first-step", RequirementType: RequirementActivities, RequirementValue: decimal.NewFromInt(1), SortOrder: 10},
		{ID: 2, Code: "enthusiast", RequirementType: RequirementHours, RequirementValue: decimal.NewFromInt(10), SortOrder: 20},
		{ID: 3, Code: "explorer", RequirementType: RequirementLocations, RequirementValue: decimal.NewFromInt(3), SortOrder: 30},
		{ID: 4, Code: "all-rounder", RequirementType: RequirementCategories, RequirementValue: decimal.NewFromInt(3), SortOrder: 40},
		{ID: 5, Code: "devoted", RequirementType: RequirementHours, RequirementValue: decimal.NewFromInt(50), SortOrder: 50},
	}
}

func TestEvaluateFirstVerifiedActivity(t *testing.T) {
	agg := aggregationdomain.Aggregates{
		VerifiedHours:         decimal.NewFromInt(3),
		VerifiedActivityCount: 1,
		DistinctLocationCount: 1,
		DistinctCategoryCount: 1,
	}

	got := Evaluate(agg, testCatalog(), nil)
	assert.Equal(t, []snowflake.ID{1}, got)
}

func TestEvaluateThresholdIsInclusive(t *testing.T) {
	agg := aggregationdomain.Aggregates{
		VerifiedHours:         decimal.NewFromInt(10),
		VerifiedActivityCount: 2,
		DistinctLocationCount: 3,
		DistinctCategoryCount: 2,
	}

	got := Evaluate(agg, testCatalog(), map[snowflake.ID]struct{}{1: {}})
	assert.Equal(t, []snowflake.ID{2, 3}, got)
}

func TestEvaluateSkipsEarnedAndIsIdempotent(t *testing.T) {
	agg := aggregationdomain.Aggregates{
		VerifiedHours:         decimal.RequireFromString("105"),
		VerifiedActivityCount: 12,
		DistinctLocationCount: 4,
		DistinctCategoryCount: 3,
	}

	first := Evaluate(agg, testCatalog(), nil)
	assert.Equal(t, []snowflake.ID{1, 2, 3, 4, 5, 6}, first)

	earned := make(map[snowflake.ID]struct{}, len(first))
	for _, id := range first {
		earned[id] = struct{}{}
	}
	assert.Empty(t, Evaluate(agg, testCatalog(), earned))
}

func TestEvaluateCrossingHundredHours(t *testing.T) {
	catalog := testCatalog()
	earned := map[snowflake.ID]struct{}{1: {}, 2: {}, 5: {}}

	below := aggregationdomain.Aggregates{VerifiedHours: decimal.NewFromInt(95), VerifiedActivityCount: 10}
	assert.Empty(t, Evaluate(below, catalog, earned))

	above := aggregationdomain.Aggregates{VerifiedHours: decimal.NewFromInt(105), VerifiedActivityCount: 11}
	assert.Equal(t, []snowflake.ID{6}, Evaluate(above, catalog, earned))
}

func TestEvaluateIgnoresUnknownRequirementType(t *testing.T) {
	catalog := []Badge{
		{ID: 9, RequirementType: RequirementType("streak"), RequirementValue: decimal.NewFromInt(1)},
	}
	agg := aggregationdomain.Aggregates{VerifiedHours: decimal.NewFromInt(1000), VerifiedActivityCount: 100}
	assert.Empty(t, Evaluate(agg, catalog, nil))
}

func TestEvaluateDoesNotReorderCallerCatalog(t *testing.T) {
	catalog := testCatalog()
	Evaluate(aggregationdomain.Aggregates{}, catalog, nil)
	assert.Equal(t, snowflake.ID(6), catalog[0].ID)
}

func TestParseRequirementType(t *testing.T) {
	got, ok := ParseRequirementType("locations")
	assert.True(t, ok)
	assert.Equal(t, RequirementLocations, got)

	_, ok = ParseRequirementType("streak")
	assert.False(t, ok)
}
