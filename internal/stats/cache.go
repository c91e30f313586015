// Package stats provides in-memory TTL caching for hitter and pitcher
// advanced metrics between scoring passes.
package stats

import (
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/diamond-edge/internal/metrics"
	"github.com/yourusername/diamond-edge/internal/models"
)

// Cache holds hitter and pitcher metric records keyed by player name.
type Cache struct {
	hitters  *cache.Cache
	pitchers *cache.Cache
}

// NewCache creates a stats cache with the given record TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		hitters:  cache.New(ttl, ttl*2),
		pitchers: cache.New(ttl, ttl*2),
	}
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// PutHitter stores a hitter record.
func (c *Cache) PutHitter(b models.BatterMetrics) {
	if b.Name == "" {
		return
	}
	c.hitters.SetDefault(key(b.Name), b)
}

// Hitter retrieves a hitter record by player name.
func (c *Cache) Hitter(name string) (models.BatterMetrics, bool) {
	if v, found := c.hitters.Get(key(name)); found {
		metrics.StatsCacheHitsTotal.Inc()
		if b, ok := v.(models.BatterMetrics); ok {
			return b, true
		}
	}
	metrics.StatsCacheMissesTotal.Inc()
	return models.BatterMetrics{}, false
}

// PutPitcher stores a pitcher record.
func (c *Cache) PutPitcher(p models.PitcherMetrics) {
	if p.Name == "" {
		return
	}
	c.pitchers.SetDefault(key(p.Name), p)
}

// Pitcher retrieves a pitcher record by name. The second return is false on
// a miss; callers fall back to league-average metrics, never to an error.
func (c *Cache) Pitcher(name string) (models.PitcherMetrics, bool) {
	if v, found := c.pitchers.Get(key(name)); found {
		metrics.StatsCacheHitsTotal.Inc()
		if p, ok := v.(models.PitcherMetrics); ok {
			return p, true
		}
	}
	metrics.StatsCacheMissesTotal.Inc()
	return models.PitcherMetrics{}, false
}

// HittersForTeam returns all cached hitters on the given team.
func (c *Cache) HittersForTeam(team string) []models.BatterMetrics {
	var out []models.BatterMetrics
	for _, item := range c.hitters.Items() {
		if b, ok := item.Object.(models.BatterMetrics); ok && b.Team == team {
			out = append(out, b)
		}
	}
	return out
}

// Counts reports cached record totals, for readiness reporting.
func (c *Cache) Counts() (hitters, pitchers int) {
	return c.hitters.ItemCount(), c.pitchers.ItemCount()
}

// Flush drops every cached record.
func (c *Cache) Flush() {
	c.hitters.Flush()
	c.pitchers.Flush()
}
