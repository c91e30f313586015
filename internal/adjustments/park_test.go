package adjustments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileForUnknownVenueIsNeutral(t *testing.T) {
	p := ProfileFor("Sandlot Municipal Field")
	assert.Equal(t, 1.0, p.RunsMultiplier)
	assert.Equal(t, 1.0, p.HRMultiplier)
}

func TestProfileForCuratedVenue(t *testing.T) {
	p := ProfileFor("Coors Field")
	assert.Greater(t, p.RunsMultiplier, 1.2)
}

func TestCombinedRunFactor(t *testing.T) {
	calm := CombinedRunFactor(Weather{TempC: 15, WindSpeedMS: 0}, "unknown")
	assert.InDelta(t, 1.0, calm, 1e-9)

	hotWindy := CombinedRunFactor(Weather{TempC: 30, WindSpeedMS: 8}, "unknown")
	assert.Greater(t, hotWindy, calm)

	// Cold never pushes the factor below the park baseline.
	cold := CombinedRunFactor(Weather{TempC: 2, WindSpeedMS: 0}, "unknown")
	assert.InDelta(t, 1.0, cold, 1e-9)

	// Wind direction is unsigned.
	tail := CombinedRunFactor(Weather{TempC: 20, WindSpeedMS: -5}, "unknown")
	head := CombinedRunFactor(Weather{TempC: 20, WindSpeedMS: 5}, "unknown")
	assert.Equal(t, tail, head)
}

func TestCombinedRunFactorAtCoors(t *testing.T) {
	factor := CombinedRunFactor(Weather{TempC: 25, WindSpeedMS: 3}, "Coors Field")
	assert.Greater(t, factor, 1.3)
}
