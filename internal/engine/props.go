package engine

import (
	"sort"

	"github.com/yourusername/diamond-edge/internal/models"
)

// Band thresholds. A confidence of exactly 0.70 is medium and exactly 0.50
// is low; both boundaries are exclusive on the upside.
const (
	highConfidenceFloor   = 0.70
	mediumConfidenceFloor = 0.50
)

// BandFor maps a numeric confidence to its qualitative display tier.
// Out-of-range values are classified as-is; the engine trusts upstream
// bounds and must not crash on them.
func BandFor(confidence float64) models.ConfidenceBand {
	switch {
	case confidence > highConfidenceFloor:
		return models.BandHigh
	case confidence > mediumConfidenceFloor:
		return models.BandMedium
	default:
		return models.BandLow
	}
}

// RankProps returns the candidates sorted by descending confidence, each
// tagged with its confidence band. The sort is stable: equal-confidence
// candidates keep their input order. The input slice is not modified.
func RankProps(props []models.PropCandidate) []models.PropCandidate {
	ranked := make([]models.PropCandidate, len(props))
	copy(ranked, props)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	})

	for i := range ranked {
		ranked[i].Band = BandFor(ranked[i].Confidence)
	}
	return ranked
}
