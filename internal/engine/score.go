// Package engine implements the edge-scoring pipeline: converting team and
// pitcher advanced metrics into a calibrated home win probability, deriving a
// signed edge percentage, and ranking player props by model confidence. Every
// function in this package is pure and safe for concurrent use.
package engine

import (
	"math"

	"github.com/yourusername/diamond-edge/internal/models"
)

// Fixed model weights for the matchup delta blend. Tuned offline by
// backtest, never at runtime.
const (
	weightPitching = 0.45
	weightHitting  = 0.30
	weightBullpen  = 0.15
	weightPark     = 0.10

	// Logistic steepness used to squash the blended score.
	logisticK = 2.5

	// A model must never claim certainty.
	minProbability = 0.01
	maxProbability = 0.99
)

// Score blends matchup deltas into a home win probability in [0.01, 0.99].
// Missing metrics fall back to league-average defaults, so partial data is
// never an error. Identical inputs always yield identical output.
func Score(home, away models.TeamMetrics, homePitcher, awayPitcher models.PitcherMetrics) float64 {
	// Lower xFIP is better, so a strong home starter raises the delta.
	pitchDelta := awayPitcher.EffectiveXFIP() - homePitcher.EffectiveXFIP()
	hitDelta := (home.EffectiveWRCPlus() - away.EffectiveWRCPlus()) / 100.0
	bullpenDelta := away.EffectiveBullpenXFIP() - home.EffectiveBullpenXFIP()
	parkDelta := home.EffectiveParkFactor() - away.EffectiveParkFactor()

	score := weightPitching*pitchDelta +
		weightHitting*hitDelta +
		weightBullpen*bullpenDelta +
		weightPark*parkDelta

	return clampProbability(logistic(score, logisticK))
}

// EdgePct converts a probability into a signed edge percentage around a
// 50/50 baseline, rounded to one decimal. Range is [-98.0, 98.0].
func EdgePct(probability float64) float64 {
	return math.Round((probability-0.5)*200*10) / 10
}

func logistic(x, k float64) float64 {
	return 1.0 / (1.0 + math.Exp(-k*x))
}

func clampProbability(p float64) float64 {
	return math.Min(maxProbability, math.Max(minProbability, p))
}
