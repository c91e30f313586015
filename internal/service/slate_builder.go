package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/adjustments"
	"github.com/yourusername/diamond-edge/internal/datasource"
	"github.com/yourusername/diamond-edge/internal/models"
	"github.com/yourusername/diamond-edge/internal/stats"
)

// SlateBuilder assembles scoring-ready matchups from scheduled games,
// cached player metrics, park profiles, and bookmaker lines.
type SlateBuilder struct {
	stats   *stats.Cache
	weather datasource.WeatherSource
	log     *logrus.Logger
}

// NewSlateBuilder creates a slate builder. The weather source may be nil;
// park adjustments then use the static profile alone.
func NewSlateBuilder(statsCache *stats.Cache, weather datasource.WeatherSource, log *logrus.Logger) *SlateBuilder {
	return &SlateBuilder{stats: statsCache, weather: weather, log: log}
}

// BuildMatchups converts the day's games into matchups. Missing metrics stay
// nil so the engine applies league-average defaults explicitly.
func (b *SlateBuilder) BuildMatchups(ctx context.Context, games []datasource.GameInfo, lines []models.MarketLine) []models.Matchup {
	matchups := make([]models.Matchup, 0, len(games))
	for _, g := range games {
		m := models.Matchup{
			ShortMatch: shortMatch(g),
			Home:       b.teamMetrics(g.Home),
			Away:       b.teamMetrics(g.Away),
			StartTime:  g.StartTime,
			Venue:      g.Venue,
		}
		m.HomePitcher = b.pitcherMetrics(g.Home.ProbablePitcher)
		m.AwayPitcher = b.pitcherMetrics(g.Away.ProbablePitcher)

		if pf := b.parkFactor(ctx, g.Venue); pf != nil {
			m.Home.ParkFactor = pf
		}
		if line := matchLine(g, lines); line != nil {
			m.Odds = line
		}
		matchups = append(matchups, m)
	}
	return matchups
}

func shortMatch(g datasource.GameInfo) string {
	if g.ShortName != "" {
		return g.ShortName
	}
	if g.Away.Abbr != "" && g.Home.Abbr != "" {
		return fmt.Sprintf("%s @ %s", g.Away.Abbr, g.Home.Abbr)
	}
	return fmt.Sprintf("%s @ %s", g.Away.Name, g.Home.Name)
}

func (b *SlateBuilder) teamMetrics(side datasource.TeamSide) models.TeamMetrics {
	tm := models.TeamMetrics{Team: side.Name}
	if tm.Team == "" {
		tm.Team = side.Abbr
	}
	if wrc := b.teamWRCPlus(side.Name); wrc != nil {
		tm.WRCPlus = wrc
	}
	return tm
}

// teamWRCPlus averages the cached hitters' wRC+ for a team. Returns nil when
// nothing is cached so the engine falls back to the league average.
func (b *SlateBuilder) teamWRCPlus(team string) *float64 {
	hitters := b.stats.HittersForTeam(team)
	var sum float64
	var n int
	for _, h := range hitters {
		if h.WRCPlus != nil {
			sum += *h.WRCPlus
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

func (b *SlateBuilder) pitcherMetrics(name string) models.PitcherMetrics {
	if name == "" {
		return models.PitcherMetrics{}
	}
	if p, ok := b.stats.Pitcher(name); ok {
		return p
	}
	return models.PitcherMetrics{Name: name}
}

// parkFactor combines the static park profile with live weather when a
// weather source is configured. Weather failures degrade to the profile.
func (b *SlateBuilder) parkFactor(ctx context.Context, venue string) *float64 {
	profile := adjustments.ProfileFor(venue)
	factor := profile.RunsMultiplier
	if b.weather != nil {
		w, err := b.weather.FetchCityWeather(ctx, venue)
		if err != nil {
			b.log.WithError(err).WithField("venue", venue).Debug("Weather lookup failed, using park profile only")
		} else {
			factor = adjustments.CombinedRunFactor(w, venue)
		}
	}
	if factor == models.NeutralParkFactor {
		return nil
	}
	return &factor
}

// matchLine finds the first bookmaker line quoting this game's home team.
func matchLine(g datasource.GameInfo, lines []models.MarketLine) *models.MarketLine {
	for i := range lines {
		if teamsEqual(lines[i].HomeTeam, g.Home.Name) || teamsEqual(lines[i].HomeTeam, g.Home.Abbr) {
			line := lines[i]
			return &line
		}
	}
	return nil
}

func teamsEqual(a, b string) bool {
	return a != "" && b != "" && strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
