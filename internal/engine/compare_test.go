package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/diamond-edge/internal/models"
)

func TestCompareTeamsPassThrough(t *testing.T) {
	home := models.TeamBattingProfile{
		Team:       "NYY",
		WRCPlus:    fptr(112),
		XWOBA:      fptr(0.335),
		HardHitPct: fptr(0.44),
		KBBPct:     fptr(0.12),
		SIERA:      fptr(3.7),
	}
	away := models.TeamBattingProfile{
		Team:    "BOS",
		WRCPlus: fptr(98),
		// xwOBA and the remaining axes missing from the feed.
	}

	cmp := CompareTeams(home, away)

	assert.Equal(t, ComparisonAxes, cmp.Axes)

	require.NotNil(t, cmp.Home[0])
	assert.Equal(t, 112.0, *cmp.Home[0])
	assert.Equal(t, 0.335, *cmp.Home[1])
	assert.Equal(t, 0.44, *cmp.Home[2])
	assert.Equal(t, 0.12, *cmp.Home[3])
	assert.Equal(t, 3.7, *cmp.Home[4])

	require.NotNil(t, cmp.Away[0])
	assert.Equal(t, 98.0, *cmp.Away[0])
	for i := 1; i < 5; i++ {
		assert.Nil(t, cmp.Away[i], "axis %s should pass the gap through", cmp.Axes[i])
	}
}
