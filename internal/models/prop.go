package models

// ConfidenceBand is the qualitative tier derived from a numeric confidence
// score. It affects display only, never ranking.
type ConfidenceBand string

const (
	BandHigh   ConfidenceBand = "high"
	BandMedium ConfidenceBand = "medium"
	BandLow    ConfidenceBand = "low"
)

// PropCandidate is a player prop produced by an upstream model. The engine
// ranks and classifies candidates; it never computes ModelEV itself.
type PropCandidate struct {
	Player        string         `json:"player" validate:"required"`
	Team          string         `json:"team" validate:"required"`
	PropName      string         `json:"prop_name" validate:"required"`
	Line          float64        `json:"line"`
	ModelEV       float64        `json:"model_ev"`
	Confidence    float64        `json:"confidence"`
	Justification string         `json:"justification"`
	Band          ConfidenceBand `json:"band,omitempty"`
}

// PropsPayload is the input envelope for prop ranking.
type PropsPayload struct {
	Props []PropCandidate `json:"props" validate:"required"`
}
