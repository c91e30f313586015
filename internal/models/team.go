package models

// League-average fallbacks applied when an upstream feed omits a metric.
// Substitution is always explicit so a missing value is never confused with
// a legitimate zero.
const (
	LeagueAvgXFIP       = 4.0
	LeagueAvgBullpenFIP = 4.0
	LeagueAvgWRCPlus    = 100.0
	NeutralParkFactor   = 1.0
)

// TeamMetrics holds team-level advanced metrics for one side of a matchup.
// Optional fields are pointers; absent values fall back to league averages.
type TeamMetrics struct {
	Team        string   `db:"team" json:"team" validate:"required"`
	XFIP        *float64 `db:"xfip" json:"xFIP,omitempty"`
	BullpenXFIP *float64 `db:"bullpen_xfip" json:"bullpen_xFIP,omitempty"`
	WRCPlus     *float64 `db:"wrc_plus" json:"wRC_plus,omitempty"`
	ParkFactor  *float64 `db:"park_factor" json:"park_factor,omitempty"`
	RestDays    *int     `db:"rest_days" json:"rest_days,omitempty"`
}

// EffectiveBullpenXFIP returns bullpen xFIP or the league-average default.
func (t *TeamMetrics) EffectiveBullpenXFIP() float64 {
	if t.BullpenXFIP == nil {
		return LeagueAvgBullpenFIP
	}
	return *t.BullpenXFIP
}

// EffectiveWRCPlus returns wRC+ or the league-average default.
func (t *TeamMetrics) EffectiveWRCPlus() float64 {
	if t.WRCPlus == nil {
		return LeagueAvgWRCPlus
	}
	return *t.WRCPlus
}

// EffectiveParkFactor returns the park factor or neutral 1.0.
func (t *TeamMetrics) EffectiveParkFactor() float64 {
	if t.ParkFactor == nil {
		return NeutralParkFactor
	}
	return *t.ParkFactor
}

// PitcherMetrics holds advanced metrics for a starting pitcher.
type PitcherMetrics struct {
	Name            string   `db:"name" json:"name"`
	XFIP            *float64 `db:"xfip" json:"xFIP,omitempty"`
	K9              *float64 `db:"k9" json:"K9,omitempty"`
	BB9             *float64 `db:"bb9" json:"BB9,omitempty"`
	CSW             *float64 `db:"csw" json:"CSW,omitempty"`
	HRFB            *float64 `db:"hrfb" json:"HRFB,omitempty"`
	SampleStability *float64 `db:"sample_stability" json:"sample_stability,omitempty"`
}

// EffectiveXFIP returns the pitcher xFIP or the league-average default.
func (p *PitcherMetrics) EffectiveXFIP() float64 {
	if p.XFIP == nil {
		return LeagueAvgXFIP
	}
	return *p.XFIP
}

// BatterMetrics holds advanced metrics for a hitter, used by the prop models.
type BatterMetrics struct {
	Name       string   `db:"name" json:"name"`
	Team       string   `db:"team" json:"team"`
	XWOBA      *float64 `db:"xwoba" json:"xwOBA,omitempty"`
	XBA        *float64 `db:"xba" json:"xBA,omitempty"`
	BarrelPct  *float64 `db:"barrel_pct" json:"barrel_pct,omitempty"`
	HardHitPct *float64 `db:"hardhit_pct" json:"hardhit_pct,omitempty"`
	KPct       *float64 `db:"k_pct" json:"K_pct,omitempty"`
	BBPct      *float64 `db:"bb_pct" json:"BB_pct,omitempty"`
	WRCPlus    *float64 `db:"wrc_plus" json:"wRC_plus,omitempty"`
	PA         *float64 `db:"pa" json:"PA,omitempty"`
	SBRate     *float64 `db:"sb_rate" json:"SB_rate,omitempty"`
}

// TeamBattingProfile is the record projected onto the head-to-head
// comparison axes. Values stay nil when the feed has gaps; the renderer
// decides how to display them.
type TeamBattingProfile struct {
	Team       string   `json:"team" validate:"required"`
	WRCPlus    *float64 `json:"wRC_plus,omitempty"`
	XWOBA      *float64 `json:"xwOBA,omitempty"`
	HardHitPct *float64 `json:"hardhit_pct,omitempty"`
	KBBPct     *float64 `json:"k_bb_pct,omitempty"`
	SIERA      *float64 `json:"siera,omitempty"`
}
