package propmodel

import (
	"math"

	"github.com/yourusername/diamond-edge/internal/models"
)

const (
	// Expected innings for a modern starter.
	defaultStarterInnings = 5.5

	defaultSampleStability = 0.6
)

// PitcherStrikeouts projects a starter's strikeouts over 7.5 from K/9 and an
// expected workload.
func PitcherStrikeouts(pitcher models.PitcherMetrics, estInnings float64) Projection {
	if estInnings <= 0 {
		estInnings = defaultStarterInnings
	}

	k9 := orDefault(pitcher.K9, leagueK9)
	stability := orDefault(pitcher.SampleStability, defaultSampleStability)

	expected := k9 / 9.0 * estInnings
	std := math.Max(1.0, expected*0.4)

	return Projection{
		Expected:    expected,
		Std:         std,
		Line:        7.5,
		Probability: normalCDFAbove(expected, std, 7.5),
		Confidence:  clamp(0.25+stability*0.3, minConfidence, maxConfidence),
	}
}
