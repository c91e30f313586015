// Package propmodel projects single-game player prop outcomes from advanced
// batter and pitcher metrics. Projections feed the engine's prop ranking;
// every function here is pure.
package propmodel

import (
	"math"

	"github.com/yourusername/diamond-edge/internal/models"
)

// Calibrated baselines and league averages. Heuristic values, tuned offline
// with a backtest.
const (
	baseHRRate  = 0.035
	leagueXWOBA = 0.320
	leagueXBA   = 0.24

	leagueBarrelPct = 0.03
	leagueKPct      = 0.22
	leagueBBPct     = 0.08
	leaguePAPerGame = 4.0

	leagueHRFB = 0.10
	leagueCSW  = 0.26
	leagueK9   = 8.5
	leagueBB9  = 3.0

	// Confidence bounds: a projection is never fully trusted or discarded.
	minConfidence = 0.05
	maxConfidence = 0.98

	// Count-stat tails are capped below certainty; a projection is never a
	// lock no matter how inflated its inputs.
	maxTailProbability = 0.99
)

// Projection is one modeled prop outcome: the expected quantity, its spread,
// and the probability of clearing the reference line.
type Projection struct {
	Expected    float64 `json:"expected"`
	Std         float64 `json:"std,omitempty"`
	Line        float64 `json:"line"`
	Probability float64 `json:"probability"`
	Confidence  float64 `json:"confidence"`
}

// HRProbability models the chance of a home run in the game from batter
// power (Barrel%, xwOBA) against pitcher suppression (xFIP, HR/FB, CSW).
func HRProbability(batter models.BatterMetrics, pitcher models.PitcherMetrics, parkFactor float64) Projection {
	barrel := orDefault(batter.BarrelPct, leagueBarrelPct)
	xwoba := orDefault(batter.XWOBA, leagueXWOBA)
	pa := orDefault(batter.PA, leaguePAPerGame)

	xfip := pitcher.EffectiveXFIP()
	hrfb := orDefault(pitcher.HRFB, leagueHRFB)

	powerScore := barrel*20.0 + (xwoba-leagueXWOBA)*2.5
	suppression := 1.0 + (xfip-models.LeagueAvgXFIP)*0.08 + (hrfb - leagueHRFB)

	rate := clamp(baseHRRate*(1.0+powerScore)/suppression*parkFactor, 0.002, 0.8)

	return Projection{
		Expected:    rate,
		Line:        0.5,
		Probability: 1.0 - math.Exp(-rate), // Poisson-style mapping
		Confidence:  clamp(0.25+math.Min(pa/600.0, 0.5)+barrel*3.0, minConfidence, maxConfidence),
	}
}

// TotalBases projects total bases over 1.5 using an xwOBA to TB-per-PA
// calibration dampened by pitcher called-strike-plus-whiff rate.
func TotalBases(batter models.BatterMetrics, pitcher models.PitcherMetrics, parkFactor float64) Projection {
	pa := orDefault(batter.PA, leaguePAPerGame)
	xwoba := orDefault(batter.XWOBA, leagueXWOBA)
	csw := orDefault(pitcher.CSW, leagueCSW)

	tbPerPA := (xwoba - 0.18) * 1.8
	pitcherFactor := 1.0 - (csw-leagueCSW)*0.7
	expected := pa * tbPerPA * pitcherFactor * parkFactor
	std := math.Max(0.5, expected*0.35)

	return Projection{
		Expected:    expected,
		Std:         std,
		Line:        1.5,
		Probability: normalCDFAbove(expected, std, 1.5),
		Confidence:  clamp(0.25+(pa/600.0)*0.4, minConfidence, 0.95),
	}
}

// Hits projects the chance of one or more hits from expected batting average
// dampened by pitcher called-strike-plus-whiff rate.
func Hits(batter models.BatterMetrics, pitcher models.PitcherMetrics, parkFactor float64) Projection {
	pa := orDefault(batter.PA, leaguePAPerGame)
	xba := orDefault(batter.XBA, orDefault(batter.XWOBA, leagueXBA))
	csw := orDefault(pitcher.CSW, leagueCSW)

	pitcherFactor := 1.0 - (csw-leagueCSW)*0.7
	expected := pa * xba * pitcherFactor * parkFactor

	return Projection{
		Expected:    expected,
		Line:        0.5,
		Probability: clamp(1.0-math.Exp(-expected), 0.0, maxTailProbability),
		Confidence:  clamp(0.25+(pa/600.0)*0.4, minConfidence, 0.95),
	}
}

// WalkProbability models a walk from batter BB% scaled by pitcher wildness.
func WalkProbability(batter models.BatterMetrics, pitcher models.PitcherMetrics) Projection {
	bb := orDefault(batter.BBPct, leagueBBPct)
	pb9 := orDefault(pitcher.BB9, leagueBB9)
	pa := orDefault(batter.PA, leaguePAPerGame)

	return Projection{
		Expected:    bb,
		Line:        0.5,
		Probability: clamp(bb*(1.0+(pb9-leagueBB9)*0.05), 0.01, 0.45),
		Confidence:  clamp(0.2+(pa/600.0)*0.4, minConfidence, 0.95),
	}
}

// BatterStrikeouts projects strikeouts over 1.5 via a Poisson tail on
// expected strikeouts per game.
func BatterStrikeouts(batter models.BatterMetrics, pitcher models.PitcherMetrics) Projection {
	kPct := orDefault(batter.KPct, leagueKPct)
	pa := orDefault(batter.PA, leaguePAPerGame)
	k9 := orDefault(pitcher.K9, leagueK9)

	expected := pa * kPct * (1.0 + (k9-leagueK9)*0.05)

	// P(X >= 2) for Poisson with mean expected.
	probOver := clamp(1.0-math.Exp(-expected)*(1.0+expected), 0.0, maxTailProbability)

	return Projection{
		Expected:    expected,
		Line:        1.5,
		Probability: probOver,
		Confidence:  clamp(0.2+(pa/600.0)*0.35, minConfidence, 0.95),
	}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// normalCDFAbove returns P(X > line) for X ~ N(mean, std).
func normalCDFAbove(mean, std, line float64) float64 {
	if std <= 0 {
		if mean > line {
			return 1
		}
		return 0
	}
	z := (mean - line) / std
	return 0.5 * (1.0 + math.Erf(z/math.Sqrt2))
}
