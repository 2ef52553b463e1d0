// Package leveling converts verified hours into experience points and levels.
package leveling

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

const (
	PointsPerHour  = 10
	PointsPerLevel = 100
)

var ErrInvalidHours = errors.New("invalid_hours")

var (
	pointsPerHour  = decimal.NewFromInt(PointsPerHour)
	pointsPerLevel = decimal.NewFromInt(PointsPerLevel)
)

// Progress is the leveling outcome for a verified-hours total.
type Progress struct {
	ExperiencePoints    decimal.Decimal
	Level               int
	ProgressToNextLevel decimal.Decimal
}

// DisplayPoints truncates experience to whole points for presentation.
func (p Progress) DisplayPoints() int64 {
	return p.ExperiencePoints.Truncate(0).IntPart()
}

// LevelFor computes experience and level; xp is kept exact.
func LevelFor(hours decimal.Decimal) (Progress, error) {
	if hours.IsNegative() {
		return Progress{}, ErrInvalidHours
	}

	xp := hours.Mul(pointsPerHour)
	completed := xp.Div(pointsPerLevel).Floor()

	return Progress{
		ExperiencePoints:    xp,
		Level:               int(completed.IntPart()) + 1,
		ProgressToNextLevel: xp.Sub(completed.Mul(pointsPerLevel)),
	}, nil
}

// LevelForFloat accepts a float total, rejecting NaN, infinities and negatives.
func LevelForFloat(hours float64) (Progress, error) {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours < 0 {
		return Progress{}, ErrInvalidHours
	}
	return LevelFor(decimal.NewFromFloat(hours))
}
