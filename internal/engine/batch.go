package engine

import (
	"fmt"

	"github.com/yourusername/diamond-edge/internal/models"
)

// Warning records a matchup that was skipped during a scoring pass.
type Warning struct {
	Index  int    `json:"index"`
	Match  string `json:"match,omitempty"`
	Reason string `json:"reason"`
}

// ScoreSlate scores each matchup independently and returns one EdgeResult per
// well-formed matchup. Malformed matchups are skipped and reported as
// warnings; a bad record never aborts the batch. Output order follows input
// order, but callers own any display ordering.
func ScoreSlate(matchups []models.Matchup) ([]models.EdgeResult, []Warning) {
	results := make([]models.EdgeResult, 0, len(matchups))
	var warnings []Warning

	for i, m := range matchups {
		if err := validateMatchup(&m); err != nil {
			warnings = append(warnings, Warning{Index: i, Match: m.ShortMatch, Reason: err.Error()})
			continue
		}

		prob := Score(m.Home, m.Away, m.HomePitcher, m.AwayPitcher)
		results = append(results, models.EdgeResult{
			Match:       m.ShortMatch,
			Pick:        moneylinePick(&m, prob),
			Probability: prob,
			EdgePct:     EdgePct(prob),
			Reason:      reasonText(&m, prob),
		})
	}

	return results, warnings
}

func validateMatchup(m *models.Matchup) error {
	if m.ShortMatch == "" {
		return fmt.Errorf("%w: shortMatch is empty", models.ErrMissingIdentity)
	}
	if m.Home.Team == "" || m.Away.Team == "" {
		return fmt.Errorf("%w: team names are required", models.ErrMissingIdentity)
	}
	return nil
}

func moneylinePick(m *models.Matchup, prob float64) string {
	if prob > 0.5 {
		return m.Home.Team + " ML"
	}
	return m.Away.Team + " ML"
}

func reasonText(m *models.Matchup, prob float64) string {
	if m.Reason != "" {
		return m.Reason
	}
	reason := fmt.Sprintf("Model probability home_win=%.3f", prob)
	// Rest days never move the score, but a differential is worth surfacing
	// to the reader alongside the number.
	if m.Home.RestDays != nil && m.Away.RestDays != nil && *m.Home.RestDays != *m.Away.RestDays {
		reason += fmt.Sprintf(", home rest differential %+d days", *m.Home.RestDays-*m.Away.RestDays)
	}
	return reason
}
