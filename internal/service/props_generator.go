package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/adjustments"
	"github.com/yourusername/diamond-edge/internal/datasource"
	"github.com/yourusername/diamond-edge/internal/engine"
	"github.com/yourusername/diamond-edge/internal/metrics"
	"github.com/yourusername/diamond-edge/internal/models"
	"github.com/yourusername/diamond-edge/internal/odds"
	"github.com/yourusername/diamond-edge/internal/propmodel"
	"github.com/yourusername/diamond-edge/internal/repository"
	"github.com/yourusername/diamond-edge/internal/stats"
)

// Market keys the props pipeline models, matching the bookmaker feed.
const (
	marketBatterHomeRuns   = "batter_home_runs"
	marketBatterTotalBases = "batter_total_bases"
	marketBatterHits       = "batter_hits"
	marketPitcherKs        = "pitcher_strikeouts"
)

// PropsGenerator runs one prop ranking pass: project every cached hitter
// against the opposing starter, price the projections against bookmaker
// quotes, and rank the candidates.
type PropsGenerator struct {
	scoreboard datasource.ScoreboardSource
	odds       datasource.OddsSource
	stats      *stats.Cache
	repos      *repository.Repositories
	broadcast  Broadcaster
	log        *logrus.Logger
}

// NewPropsGenerator creates a props generator. Repositories and broadcaster
// may be nil.
func NewPropsGenerator(
	scoreboard datasource.ScoreboardSource,
	oddsSource datasource.OddsSource,
	statsCache *stats.Cache,
	repos *repository.Repositories,
	broadcast Broadcaster,
	log *logrus.Logger,
) *PropsGenerator {
	return &PropsGenerator{
		scoreboard: scoreboard,
		odds:       oddsSource,
		stats:      statsCache,
		repos:      repos,
		broadcast:  broadcast,
		log:        log,
	}
}

// Generate ranks prop candidates for today's slate. A quote fetch failure
// degrades to model-only expected value against an even market.
func (g *PropsGenerator) Generate(ctx context.Context) (*models.PropSnapshot, error) {
	timer := prometheus.NewTimer(metrics.GenerationDuration.WithLabelValues("props"))
	defer timer.ObserveDuration()

	games, err := g.scoreboard.FetchGames(ctx)
	if err != nil {
		metrics.FetchErrorsTotal.WithLabelValues(g.scoreboard.Name()).Inc()
		return nil, fmt.Errorf("fetch scoreboard: %w", err)
	}

	var quotes []models.PropQuote
	if g.odds != nil {
		quotes, err = g.odds.FetchPlayerProps(ctx)
		if err != nil {
			metrics.FetchErrorsTotal.WithLabelValues(g.odds.Name()).Inc()
			g.log.WithError(err).Warn("Prop quote fetch failed, pricing against an even market")
			quotes = nil
		}
	}

	var candidates []models.PropCandidate
	for _, game := range games {
		parkRuns := adjustments.ProfileFor(game.Venue).RunsMultiplier
		candidates = append(candidates, g.sideCandidates(game.Home, game.Away, parkRuns, quotes)...)
		candidates = append(candidates, g.sideCandidates(game.Away, game.Home, parkRuns, quotes)...)
	}

	ranked := engine.RankProps(candidates)
	metrics.PropsRankedTotal.Add(float64(len(ranked)))

	snapshot := &models.PropSnapshot{
		ID:          uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Props:       ranked,
	}
	if g.repos != nil {
		if err := g.repos.Props.Save(ctx, snapshot); err != nil {
			g.log.WithError(err).Error("Failed to persist prop snapshot")
		}
	}
	if g.broadcast != nil {
		g.broadcast.BroadcastProps(snapshot)
	}

	g.log.WithField("props", len(ranked)).Info("Prop ranking pass complete")
	return snapshot, nil
}

// sideCandidates projects one lineup against the opposing probable starter,
// plus that lineup's opposing starter strikeout prop.
func (g *PropsGenerator) sideCandidates(batting, pitching datasource.TeamSide, parkRuns float64, quotes []models.PropQuote) []models.PropCandidate {
	var starter models.PitcherMetrics
	if pitching.ProbablePitcher != "" {
		if p, ok := g.stats.Pitcher(pitching.ProbablePitcher); ok {
			starter = p
		} else {
			starter = models.PitcherMetrics{Name: pitching.ProbablePitcher}
		}
	}

	var out []models.PropCandidate
	for _, hitter := range g.stats.HittersForTeam(batting.Name) {
		out = append(out,
			g.candidate(hitter.Name, batting.Name, "Home Run", marketBatterHomeRuns,
				propmodel.HRProbability(hitter, starter, parkRuns), quotes),
			g.candidate(hitter.Name, batting.Name, "Total Bases", marketBatterTotalBases,
				propmodel.TotalBases(hitter, starter, parkRuns), quotes),
			g.candidate(hitter.Name, batting.Name, "Hits", marketBatterHits,
				propmodel.Hits(hitter, starter, parkRuns), quotes),
		)
	}

	if starter.Name != "" {
		proj := propmodel.PitcherStrikeouts(starter, 0)
		out = append(out, g.candidate(starter.Name, pitching.Name, "Strikeouts", marketPitcherKs, proj, quotes))
	}
	return out
}

// candidate prices one projection. Expected value is the model probability
// minus the market's implied probability, or minus 0.5 when no quote matches.
func (g *PropsGenerator) candidate(player, team, propName, marketKey string, proj propmodel.Projection, quotes []models.PropQuote) models.PropCandidate {
	implied := 0.5
	book := ""
	if q, ok := quoteFor(player, marketKey, quotes); ok {
		if p, err := odds.ImpliedProbability(q.Price); err == nil {
			implied = p
			book = q.Site
		}
	}

	justification := fmt.Sprintf("Model %.1f%% over %.1f (expected %.2f)",
		proj.Probability*100, proj.Line, proj.Expected)
	if book != "" {
		justification += fmt.Sprintf("; %s implies %.1f%%", book, implied*100)
	}

	return models.PropCandidate{
		Player:        player,
		Team:          team,
		PropName:      fmt.Sprintf("%s %.1f", propName, proj.Line),
		Line:          proj.Line,
		ModelEV:       proj.Probability - implied,
		Confidence:    proj.Confidence,
		Justification: justification,
	}
}

// quoteFor finds the first quote in a market whose outcome label names the
// player.
func quoteFor(player, marketKey string, quotes []models.PropQuote) (models.PropQuote, bool) {
	needle := strings.ToLower(strings.TrimSpace(player))
	if needle == "" {
		return models.PropQuote{}, false
	}
	for _, q := range quotes {
		if q.MarketKey == marketKey && strings.Contains(strings.ToLower(q.Label), needle) {
			return q, true
		}
	}
	return models.PropQuote{}, false
}
