package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/diamond-edge/internal/models"
)

func fptr(v float64) *float64 { return &v }

func TestCacheRoundTrip(t *testing.T) {
	c := NewCache(time.Minute)

	c.PutHitter(models.BatterMetrics{Name: "Aaron Judge", Team: "NYY", XWOBA: fptr(0.41)})
	c.PutPitcher(models.PitcherMetrics{Name: "Gerrit Cole", XFIP: fptr(3.2)})

	b, ok := c.Hitter("aaron judge") // lookup is case-insensitive
	require.True(t, ok)
	assert.Equal(t, "NYY", b.Team)

	p, ok := c.Pitcher(" Gerrit Cole ")
	require.True(t, ok)
	assert.Equal(t, 3.2, *p.XFIP)
}

func TestCacheMiss(t *testing.T) {
	c := NewCache(time.Minute)
	_, ok := c.Pitcher("Nobody")
	assert.False(t, ok)
}

func TestCacheIgnoresUnnamedRecords(t *testing.T) {
	c := NewCache(time.Minute)
	c.PutHitter(models.BatterMetrics{Team: "NYY"})
	hitters, pitchers := c.Counts()
	assert.Zero(t, hitters)
	assert.Zero(t, pitchers)
}

func TestHittersForTeam(t *testing.T) {
	c := NewCache(time.Minute)
	c.PutHitter(models.BatterMetrics{Name: "Judge", Team: "NYY"})
	c.PutHitter(models.BatterMetrics{Name: "Soto", Team: "NYY"})
	c.PutHitter(models.BatterMetrics{Name: "Devers", Team: "BOS"})

	assert.Len(t, c.HittersForTeam("NYY"), 2)
	assert.Len(t, c.HittersForTeam("BOS"), 1)
	assert.Empty(t, c.HittersForTeam("LAD"))
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(10 * time.Millisecond)
	c.PutPitcher(models.PitcherMetrics{Name: "Cole"})

	time.Sleep(30 * time.Millisecond)
	_, ok := c.Pitcher("Cole")
	assert.False(t, ok)
}

func TestFlush(t *testing.T) {
	c := NewCache(time.Minute)
	c.PutHitter(models.BatterMetrics{Name: "Judge", Team: "NYY"})
	c.Flush()
	hitters, _ := c.Counts()
	assert.Zero(t, hitters)
}
