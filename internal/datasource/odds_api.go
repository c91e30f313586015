package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/diamond-edge/internal/models"
)

// TheOddsAPI fetches moneylines and player-prop quotes from
// the-odds-api.com.
type TheOddsAPI struct {
	baseURL  string
	apiKey   string
	sportKey string
	regions  string
	client   *RateLimitedHTTPClient
}

// NewTheOddsAPI creates an odds source. An empty apiKey is allowed; fetches
// then return empty snapshots so a missing key degrades rather than fails.
func NewTheOddsAPI(baseURL, apiKey, sportKey, regions string, client *RateLimitedHTTPClient) *TheOddsAPI {
	return &TheOddsAPI{
		baseURL:  baseURL,
		apiKey:   apiKey,
		sportKey: sportKey,
		regions:  regions,
		client:   client,
	}
}

// Name returns the source name
func (s *TheOddsAPI) Name() string { return "the_odds_api" }

// odds feed shapes, trimmed to the fields we consume
type oddsEvent struct {
	HomeTeam   string          `json:"home_team"`
	AwayTeam   string          `json:"away_team"`
	Bookmakers []oddsBookmaker `json:"bookmakers"`
}

type oddsBookmaker struct {
	Title   string       `json:"title"`
	Markets []oddsMarket `json:"markets"`
}

type oddsMarket struct {
	Key      string        `json:"key"`
	Outcomes []oddsOutcome `json:"outcomes"`
}

type oddsOutcome struct {
	Name  string      `json:"name"`
	Price json.Number `json:"price"`
}

func (s *TheOddsAPI) fetch(ctx context.Context, markets string) ([]oddsEvent, error) {
	if s.apiKey == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("apiKey", s.apiKey)
	q.Set("regions", s.regions)
	q.Set("markets", markets)
	q.Set("oddsFormat", "american")

	endpoint := fmt.Sprintf("%s/sports/%s/odds?%s", s.baseURL, s.sportKey, q.Encode())
	resp, err := s.client.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch odds: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("odds api returned status %d", resp.StatusCode)
	}

	var events []oddsEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("failed to decode odds: %w", err)
	}
	return events, nil
}

// FetchMoneylines fetches one h2h line per game, taking the first bookmaker
// quoting both sides.
func (s *TheOddsAPI) FetchMoneylines(ctx context.Context) ([]models.MarketLine, error) {
	events, err := s.fetch(ctx, "h2h")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var lines []models.MarketLine
	for _, ev := range events {
		line, ok := moneylineFor(ev, now)
		if !ok {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func moneylineFor(ev oddsEvent, fetchedAt time.Time) (models.MarketLine, bool) {
	for _, book := range ev.Bookmakers {
		for _, market := range book.Markets {
			if market.Key != "h2h" {
				continue
			}
			line := models.MarketLine{
				HomeTeam:  ev.HomeTeam,
				AwayTeam:  ev.AwayTeam,
				Book:      book.Title,
				MarketKey: market.Key,
				FetchedAt: fetchedAt,
			}
			for _, outcome := range market.Outcomes {
				price := formatAmerican(outcome.Price)
				switch outcome.Name {
				case ev.HomeTeam:
					line.HomePrice = price
				case ev.AwayTeam:
					line.AwayPrice = price
				}
			}
			if line.HomePrice != "" && line.AwayPrice != "" {
				return line, true
			}
		}
	}
	return models.MarketLine{}, false
}

// FetchPlayerProps fetches player-prop outcomes across bookmakers.
func (s *TheOddsAPI) FetchPlayerProps(ctx context.Context) ([]models.PropQuote, error) {
	events, err := s.fetch(ctx, "batter_home_runs,batter_total_bases,batter_hits,pitcher_strikeouts")
	if err != nil {
		return nil, err
	}

	var quotes []models.PropQuote
	for _, ev := range events {
		game := ev.AwayTeam + " vs " + ev.HomeTeam
		for _, book := range ev.Bookmakers {
			for _, market := range book.Markets {
				if !strings.HasPrefix(market.Key, "batter_") && !strings.HasPrefix(market.Key, "pitcher_") {
					continue
				}
				for _, outcome := range market.Outcomes {
					quotes = append(quotes, models.PropQuote{
						Game:      game,
						Site:      book.Title,
						MarketKey: market.Key,
						Label:     outcome.Name,
						Price:     formatAmerican(outcome.Price),
					})
				}
			}
		}
	}
	return quotes, nil
}

// formatAmerican renders a numeric feed price with its conventional sign.
func formatAmerican(n json.Number) string {
	s := n.String()
	if s == "" {
		return ""
	}
	if v, err := n.Int64(); err == nil && v > 0 {
		return "+" + strconv.FormatInt(v, 10)
	}
	return s
}
