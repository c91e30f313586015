package models

import (
	"time"

	"github.com/google/uuid"
)

// EdgeResult is the scored outcome for a single matchup. Results are derived
// on every scoring pass and never mutate their input matchup.
type EdgeResult struct {
	Match       string  `db:"match" json:"match"`
	Pick        string  `db:"pick" json:"pick"`
	Probability float64 `db:"probability" json:"probability"`
	EdgePct     float64 `db:"edge_pct" json:"edge_pct"`
	Reason      string  `db:"reason" json:"reason"`
}

// PickSnapshot is a persisted scoring pass: the full slate of edge results
// generated at one point in time.
type PickSnapshot struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	Date        string       `db:"date" json:"date"`
	GeneratedAt time.Time    `db:"generated_at" json:"generated_at_utc"`
	Results     []EdgeResult `db:"-" json:"games"`
}

// PropSnapshot is a persisted prop ranking pass.
type PropSnapshot struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	GeneratedAt time.Time       `db:"generated_at" json:"generated_at"`
	Props       []PropCandidate `db:"-" json:"props"`
}
