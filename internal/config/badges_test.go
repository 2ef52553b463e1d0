package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBadgeCatalogIsValid(t *testing.T) {
	require.NoError(t, ValidateBadgeCatalog(DefaultBadgeCatalog()))
}

func TestValidateBadgeCatalogRejectsBadEntries(t *testing.T) {
	cases := map[string]BadgeDefinition{
		"missing name": {RequirementType: "hours", RequirementValue: 1},
		"unknown type": {Name: "x", RequirementType: "streak", RequirementValue: 1},
		"non positive": {Name: "x", RequirementType: "hours", RequirementValue: 0},
	}
	for name, def := range cases {
		t.Run(name, func(t *testing.T) {
			err := ValidateBadgeCatalog(BadgeCatalog{Badges: []BadgeDefinition{def}})
			assert.Error(t, err)
		})
	}

	dup := BadgeCatalog{Badges: []BadgeDefinition{
		{Code: "a", Name: "A", RequirementType: "hours", RequirementValue: 1},
		{Code: "a", Name: "B", RequirementType: "hours", RequirementValue: 2},
	}}
	assert.Error(t, ValidateBadgeCatalog(dup))
}

func TestNewBadgeCatalogHolderReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "badges.yml")
	content := []byte(`badges:
  - code: marathon
    name: Marathon
    description: Forty hours
    requirement_type: hours
    requirement_value: 40
    sort_order: 1
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	holder, err := NewBadgeCatalogHolder(Config{BadgeCatalogPath: path})
	require.NoError(t, err)

	catalog := holder.Get()
	require.Len(t, catalog.Badges, 1)
	assert.Equal(t, "marathon", catalog.Badges[0].Code)
	assert.Equal(t, "hours", catalog.Badges[0].RequirementType)
	assert.Equal(t, 40.0, catalog.Badges[0].RequirementValue)
}

func TestBadgeCatalogHolderNotifiesListeners(t *testing.T) {
	holder := NewStaticBadgeCatalogHolder(DefaultBadgeCatalog())

	var got BadgeCatalog
	holder.OnChange(func(c BadgeCatalog) { got = c })
	holder.notify(BadgeCatalog{Badges: []BadgeDefinition{{Name: "n"}}})

	require.Len(t, got.Badges, 1)
	assert.Equal(t, "n", got.Badges[0].Name)
}
