package leveling

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFor(t *testing.T) {
	cases := []struct {
		hours    string
		xp       string
		level    int
		progress string
	}{
		{hours: "0", xp: "0", level: 1, progress: "0"},
		{hours: "3.5", xp: "35", level: 1, progress: "35"},
		{hours: "9.99", xp: "99.9", level: 1, progress: "99.9"},
		{hours: "10", xp: "100", level: 2, progress: "0"},
		{hours: "12", xp: "120", level: 2, progress: "20"},
		{hours: "95", xp: "950", level: 10, progress: "50"},
		{hours: "100", xp: "1000", level: 11, progress: "0"},
		{hours: "105", xp: "1050", level: 11, progress: "50"},
	}

	for _, tc := range cases {
		t.Run(tc.hours, func(t *testing.T) {
			got, err := LevelFor(decimal.RequireFromString(tc.hours))
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tc.xp).Equal(got.ExperiencePoints), "xp %s", got.ExperiencePoints)
			assert.Equal(t, tc.level, got.Level)
			assert.True(t, decimal.RequireFromString(tc.progress).Equal(got.ProgressToNextLevel), "progress %s", got.ProgressToNextLevel)
		})
	}
}

func TestLevelForRejectsNegative(t *testing.T) {
	_, err := LevelFor(decimal.RequireFromString("-0.5"))
	assert.ErrorIs(t, err, ErrInvalidHours)
}

func TestLevelForFloatRejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -1} {
		_, err := LevelForFloat(v)
		assert.ErrorIs(t, err, ErrInvalidHours)
	}

	got, err := LevelForFloat(2.5)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Level)
	assert.Equal(t, int64(25), got.DisplayPoints())
}

func TestDisplayPointsTruncates(t *testing.T) {
	got, err := LevelFor(decimal.RequireFromString("0.15"))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1.5").Equal(got.ExperiencePoints))
	assert.Equal(t, int64(1), got.DisplayPoints())
}

func TestLevelIsMonotonic(t *testing.T) {
	prev := 0
	for h := int64(0); h <= 500; h++ {
		got, err := LevelFor(decimal.NewFromInt(h).Div(decimal.NewFromInt(2)))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.Level, prev)
		prev = got.Level
	}
}
