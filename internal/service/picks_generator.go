package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/datasource"
	"github.com/yourusername/diamond-edge/internal/engine"
	"github.com/yourusername/diamond-edge/internal/metrics"
	"github.com/yourusername/diamond-edge/internal/models"
	"github.com/yourusername/diamond-edge/internal/odds"
	"github.com/yourusername/diamond-edge/internal/repository"
)

// Broadcaster pushes freshly generated snapshots to connected dashboard
// clients.
type Broadcaster interface {
	BroadcastPicks(snapshot *models.PickSnapshot)
	BroadcastProps(snapshot *models.PropSnapshot)
}

// PicksGenerator runs one full scoring pass: fetch the slate and market,
// build matchups, score them, persist the snapshot, and broadcast it.
type PicksGenerator struct {
	scoreboard datasource.ScoreboardSource
	odds       datasource.OddsSource
	builder    *SlateBuilder
	repos      *repository.Repositories
	broadcast  Broadcaster
	log        *logrus.Logger
}

// NewPicksGenerator creates a picks generator. Repositories and broadcaster
// may be nil; generation then runs without persistence or push.
func NewPicksGenerator(
	scoreboard datasource.ScoreboardSource,
	odds datasource.OddsSource,
	builder *SlateBuilder,
	repos *repository.Repositories,
	broadcast Broadcaster,
	log *logrus.Logger,
) *PicksGenerator {
	return &PicksGenerator{
		scoreboard: scoreboard,
		odds:       odds,
		builder:    builder,
		repos:      repos,
		broadcast:  broadcast,
		log:        log,
	}
}

// Generate executes a scoring pass over today's slate. A scoreboard failure
// aborts the pass; an odds failure degrades to scoring without market lines.
func (g *PicksGenerator) Generate(ctx context.Context) (*models.PickSnapshot, []engine.Warning, error) {
	timer := prometheus.NewTimer(metrics.GenerationDuration.WithLabelValues("picks"))
	defer timer.ObserveDuration()

	games, err := g.scoreboard.FetchGames(ctx)
	if err != nil {
		metrics.FetchErrorsTotal.WithLabelValues(g.scoreboard.Name()).Inc()
		return nil, nil, fmt.Errorf("fetch scoreboard: %w", err)
	}

	var lines []models.MarketLine
	if g.odds != nil {
		lines, err = g.odds.FetchMoneylines(ctx)
		if err != nil {
			metrics.FetchErrorsTotal.WithLabelValues(g.odds.Name()).Inc()
			g.log.WithError(err).Warn("Moneyline fetch failed, scoring without market lines")
			lines = nil
		}
	}
	g.saveOddsSnapshot(ctx, lines)

	matchups := g.builder.BuildMatchups(ctx, games, lines)
	results, warnings := engine.ScoreSlate(matchups)
	blendMarketContext(results, matchups)
	for _, w := range warnings {
		g.log.WithFields(logrus.Fields{
			"index": w.Index,
			"match": w.Match,
		}).Warn(w.Reason)
	}

	now := time.Now().UTC()
	snapshot := &models.PickSnapshot{
		ID:          uuid.New(),
		Date:        now.Format("2006-01-02"),
		GeneratedAt: now,
		Results:     results,
	}

	metrics.ScoringPassesTotal.Inc()
	metrics.PicksGeneratedTotal.Add(float64(len(results)))
	metrics.SlateWarningsTotal.Add(float64(len(warnings)))
	metrics.LastSlateSize.Set(float64(len(matchups)))
	metrics.TopEdgePct.Set(topAbsEdge(results))

	if g.repos != nil {
		if err := g.repos.Picks.Save(ctx, snapshot); err != nil {
			g.log.WithError(err).Error("Failed to persist pick snapshot")
		}
	}
	if g.broadcast != nil {
		g.broadcast.BroadcastPicks(snapshot)
	}

	g.log.WithFields(logrus.Fields{
		"games":    len(results),
		"warnings": len(warnings),
	}).Info("Scoring pass complete")
	return snapshot, warnings, nil
}

func (g *PicksGenerator) saveOddsSnapshot(ctx context.Context, lines []models.MarketLine) {
	if g.repos == nil || len(lines) == 0 {
		return
	}
	snapshot := &models.OddsSnapshot{
		ID:          uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Lines:       lines,
	}
	if err := g.repos.Odds.Save(ctx, snapshot); err != nil {
		g.log.WithError(err).Error("Failed to persist odds snapshot")
	}
}

// blendMarketContext appends the market's fair home probability to the reason
// text of every result whose matchup carried a moneyline.
func blendMarketContext(results []models.EdgeResult, matchups []models.Matchup) {
	linesByMatch := make(map[string]*models.MarketLine, len(matchups))
	for i := range matchups {
		if matchups[i].Odds != nil {
			linesByMatch[matchups[i].ShortMatch] = matchups[i].Odds
		}
	}
	for i := range results {
		line, ok := linesByMatch[results[i].Match]
		if !ok {
			continue
		}
		fair, err := odds.HomeFairProbability(line.HomePrice, line.AwayPrice)
		if err != nil {
			continue
		}
		results[i].Reason = fmt.Sprintf("%s; market implies home_win=%.3f", results[i].Reason, fair)
	}
}

func topAbsEdge(results []models.EdgeResult) float64 {
	var top float64
	for _, r := range results {
		if a := math.Abs(r.EdgePct); a > top {
			top = a
		}
	}
	return top
}
