package engine

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/diamond-edge/internal/models"
)

func prop(player string, confidence float64) models.PropCandidate {
	return models.PropCandidate{
		Player:     player,
		Team:       "NYY",
		PropName:   "Total Bases",
		Line:       1.5,
		Confidence: confidence,
	}
}

func TestRankPropsDescendingConfidence(t *testing.T) {
	props := []models.PropCandidate{
		prop("Volpe", 0.41),
		prop("Judge", 0.88),
		prop("Soto", 0.63),
	}

	ranked := RankProps(props)

	require.Len(t, ranked, 3)
	assert.Equal(t, "Judge", ranked[0].Player)
	assert.Equal(t, "Soto", ranked[1].Player)
	assert.Equal(t, "Volpe", ranked[2].Player)
	assert.True(t, sort.SliceIsSorted(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	}))
}

func TestRankPropsStableOnTies(t *testing.T) {
	props := []models.PropCandidate{
		prop("first", 0.60),
		prop("second", 0.60),
		prop("third", 0.60),
	}

	ranked := RankProps(props)

	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].Player)
	assert.Equal(t, "second", ranked[1].Player)
	assert.Equal(t, "third", ranked[2].Player)
}

func TestRankPropsIsPermutation(t *testing.T) {
	props := []models.PropCandidate{
		prop("a", 0.2), prop("b", 0.9), prop("c", 0.9), prop("d", 0.1),
	}

	ranked := RankProps(props)

	require.Len(t, ranked, len(props))
	seen := map[string]bool{}
	for _, p := range ranked {
		seen[p.Player] = true
	}
	assert.Len(t, seen, len(props))

	// Input order untouched.
	assert.Equal(t, "a", props[0].Player)
	assert.Empty(t, props[0].Band)
}

func TestRankPropsEmptyInput(t *testing.T) {
	assert.Empty(t, RankProps(nil))
	assert.Empty(t, RankProps([]models.PropCandidate{}))
}

func TestBandBoundaries(t *testing.T) {
	tests := []struct {
		confidence float64
		want       models.ConfidenceBand
	}{
		{0.70, models.BandMedium},
		{0.700001, models.BandHigh},
		{0.50, models.BandLow},
		{0.500001, models.BandMedium},
		{0.95, models.BandHigh},
		{0.10, models.BandLow},
		// Out-of-range confidence is classified, never rejected.
		{1.40, models.BandHigh},
		{-0.20, models.BandLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BandFor(tt.confidence), "confidence=%v", tt.confidence)
	}
}

func TestRankPropsTagsBands(t *testing.T) {
	ranked := RankProps([]models.PropCandidate{
		prop("high", 0.80),
		prop("medium", 0.70),
		prop("low", 0.50),
	})

	assert.Equal(t, models.BandHigh, ranked[0].Band)
	assert.Equal(t, models.BandMedium, ranked[1].Band)
	assert.Equal(t, models.BandLow, ranked[2].Band)
}
