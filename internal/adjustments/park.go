// Package adjustments derives run-environment multipliers from ballpark and
// weather conditions. Multipliers feed the park_factor inputs of the scoring
// engine and prop models.
package adjustments

// ParkProfile holds curated run and home-run multipliers for a venue.
// 1.0 is a neutral park.
type ParkProfile struct {
	RunsMultiplier float64 `json:"runs_multiplier"`
	HRMultiplier   float64 `json:"hr_multiplier"`
}

// Curated park factors. Maintained by hand from multi-season data; venues
// not listed are treated as neutral.
var parkProfiles = map[string]ParkProfile{
	"Coors Field":              {RunsMultiplier: 1.28, HRMultiplier: 1.15},
	"Great American Ball Park": {RunsMultiplier: 1.12, HRMultiplier: 1.30},
	"Fenway Park":              {RunsMultiplier: 1.08, HRMultiplier: 0.96},
	"Yankee Stadium":           {RunsMultiplier: 1.05, HRMultiplier: 1.10},
	"Citizens Bank Park":       {RunsMultiplier: 1.04, HRMultiplier: 1.14},
	"Wrigley Field":            {RunsMultiplier: 1.02, HRMultiplier: 1.02},
	"Dodger Stadium":           {RunsMultiplier: 0.98, HRMultiplier: 1.08},
	"Petco Park":               {RunsMultiplier: 0.94, HRMultiplier: 0.95},
	"T-Mobile Park":            {RunsMultiplier: 0.92, HRMultiplier: 0.94},
	"Oracle Park":              {RunsMultiplier: 0.90, HRMultiplier: 0.85},
}

var neutralPark = ParkProfile{RunsMultiplier: 1.0, HRMultiplier: 1.0}

// ProfileFor returns the curated profile for a venue, or a neutral profile
// when the venue is unknown.
func ProfileFor(venue string) ParkProfile {
	if p, ok := parkProfiles[venue]; ok {
		return p
	}
	return neutralPark
}

// Weather holds the conditions that move run expectation.
type Weather struct {
	TempC       float64 `json:"temp_c"`
	WindSpeedMS float64 `json:"wind_speed_ms"`
}

// CombinedRunFactor blends temperature, wind, and the venue's run profile
// into a single multiplier. Warm air and wind both favor offense.
func CombinedRunFactor(w Weather, venue string) float64 {
	tempFactor := 1.0
	if w.TempC > 15 {
		tempFactor += (w.TempC - 15) * 0.005
	}
	windFactor := 1.0 + abs(w.WindSpeedMS)*0.01
	return tempFactor * windFactor * ProfileFor(venue).RunsMultiplier
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
