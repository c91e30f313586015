package models

import "time"

// Matchup pairs two teams with their probable starters for one game.
// A matchup is immutable once constructed for a scoring pass.
type Matchup struct {
	ShortMatch  string          `json:"shortMatch" validate:"required"`
	Home        TeamMetrics     `json:"home" validate:"required"`
	Away        TeamMetrics     `json:"away" validate:"required"`
	HomePitcher PitcherMetrics  `json:"homePitcher"`
	AwayPitcher PitcherMetrics  `json:"awayPitcher"`
	Odds        *MarketLine     `json:"odds,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	StartTime   time.Time       `json:"start_time,omitempty"`
	Venue       string          `json:"venue,omitempty"`
}

// SlatePayload is the per-day input envelope for team edge scoring.
type SlatePayload struct {
	Date  string    `json:"date,omitempty"`
	Games []Matchup `json:"games" validate:"required"`
}
