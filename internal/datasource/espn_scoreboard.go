package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ESPNScoreboard fetches the daily MLB slate from the public ESPN
// scoreboard endpoint.
type ESPNScoreboard struct {
	baseURL string
	client  *RateLimitedHTTPClient
}

// NewESPNScoreboard creates a scoreboard source against the given base URL.
func NewESPNScoreboard(baseURL string, client *RateLimitedHTTPClient) *ESPNScoreboard {
	return &ESPNScoreboard{baseURL: baseURL, client: client}
}

// Name returns the source name
func (s *ESPNScoreboard) Name() string { return "espn_scoreboard" }

// scoreboard feed shapes, trimmed to the fields we consume
type espnScoreboard struct {
	Events []espnEvent `json:"events"`
}

type espnEvent struct {
	ID           string            `json:"id"`
	ShortName    string            `json:"shortName"`
	Competitions []espnCompetition `json:"competitions"`
}

type espnCompetition struct {
	Date        string           `json:"date"`
	Venue       espnVenue        `json:"venue"`
	Competitors []espnCompetitor `json:"competitors"`
}

type espnVenue struct {
	FullName string `json:"fullName"`
}

type espnCompetitor struct {
	HomeAway        string       `json:"homeAway"`
	Team            espnTeam     `json:"team"`
	ProbablePitcher *espnAthlete `json:"probablePitcher,omitempty"`
}

type espnTeam struct {
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
}

type espnAthlete struct {
	FullName string `json:"fullName"`
}

// FetchGames fetches today's slate with probable starters.
func (s *ESPNScoreboard) FetchGames(ctx context.Context) ([]GameInfo, error) {
	resp, err := s.client.Get(ctx, s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scoreboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scoreboard returned status %d", resp.StatusCode)
	}

	var sb espnScoreboard
	if err := json.NewDecoder(resp.Body).Decode(&sb); err != nil {
		return nil, fmt.Errorf("failed to decode scoreboard: %w", err)
	}

	games := make([]GameInfo, 0, len(sb.Events))
	for _, ev := range sb.Events {
		if len(ev.Competitions) == 0 {
			continue
		}
		comp := ev.Competitions[0]

		game := GameInfo{
			GameID:    ev.ID,
			ShortName: ev.ShortName,
			Venue:     comp.Venue.FullName,
		}
		if t, err := time.Parse(time.RFC3339, comp.Date); err == nil {
			game.StartTime = t
		}

		for _, c := range comp.Competitors {
			side := TeamSide{
				Name: c.Team.DisplayName,
				Abbr: c.Team.Abbreviation,
			}
			if c.ProbablePitcher != nil {
				side.ProbablePitcher = c.ProbablePitcher.FullName
			}
			switch c.HomeAway {
			case "home":
				game.Home = side
			case "away":
				game.Away = side
			}
		}

		games = append(games, game)
	}

	return games, nil
}
