// Package datasource fetches raw slate data from upstream feeds: the MLB
// scoreboard, bookmaker odds, and weather conditions.
package datasource

import (
	"context"
	"time"

	"github.com/yourusername/diamond-edge/internal/adjustments"
	"github.com/yourusername/diamond-edge/internal/models"
)

// TeamSide describes one side of a scheduled game as the scoreboard feed
// reports it.
type TeamSide struct {
	Name            string `json:"name"`
	Abbr            string `json:"abbr"`
	ProbablePitcher string `json:"probable_pitcher,omitempty"`
}

// GameInfo is a scheduled game with probable starters.
type GameInfo struct {
	GameID    string    `json:"game_id"`
	ShortName string    `json:"short_name"`
	StartTime time.Time `json:"start_time_utc"`
	Venue     string    `json:"venue"`
	Home      TeamSide  `json:"home"`
	Away      TeamSide  `json:"away"`
}

// ScoreboardSource fetches the day's game slate.
type ScoreboardSource interface {
	Name() string
	FetchGames(ctx context.Context) ([]GameInfo, error)
}

// OddsSource fetches bookmaker quotes.
type OddsSource interface {
	Name() string
	FetchMoneylines(ctx context.Context) ([]models.MarketLine, error)
	FetchPlayerProps(ctx context.Context) ([]models.PropQuote, error)
}

// WeatherSource fetches current conditions for a venue's city.
type WeatherSource interface {
	FetchCityWeather(ctx context.Context, city string) (adjustments.Weather, error)
}
