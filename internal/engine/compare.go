package engine

import "github.com/yourusername/diamond-edge/internal/models"

// ComparisonAxes lists the fixed head-to-head display axes in render order.
var ComparisonAxes = [5]string{"wRC+", "xwOBA", "HardHit%", "K-BB%", "SIERA"}

// Comparison pairs two projected metric vectors for head-to-head display.
// Values are passed through verbatim; nil entries mark feed gaps that the
// rendering collaborator handles.
type Comparison struct {
	Axes [5]string   `json:"axes"`
	Home [5]*float64 `json:"home"`
	Away [5]*float64 `json:"away"`
}

// CompareTeams projects two batting profiles onto the comparison axes.
// Pure reshaping: no ranking or scoring happens here.
func CompareTeams(home, away models.TeamBattingProfile) Comparison {
	return Comparison{
		Axes: ComparisonAxes,
		Home: axisValues(home),
		Away: axisValues(away),
	}
}

func axisValues(p models.TeamBattingProfile) [5]*float64 {
	return [5]*float64{p.WRCPlus, p.XWOBA, p.HardHitPct, p.KBBPct, p.SIERA}
}
