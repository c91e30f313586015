package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *RateLimitedHTTPClient {
	cfg := DefaultHTTPClientConfig()
	cfg.RateLimit = 1000
	cfg.MaxRetries = 1
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = 2 * time.Millisecond
	return NewRateLimitedHTTPClient(cfg, nil)
}

const scoreboardFixture = `{
  "events": [
    {
      "id": "401",
      "shortName": "BOS @ NYY",
      "competitions": [
        {
          "date": "2026-08-30T17:05:00Z",
          "venue": {"fullName": "Yankee Stadium"},
          "competitors": [
            {
              "homeAway": "home",
              "team": {"displayName": "New York Yankees", "abbreviation": "NYY"},
              "probablePitcher": {"fullName": "Gerrit Cole"}
            },
            {
              "homeAway": "away",
              "team": {"displayName": "Boston Red Sox", "abbreviation": "BOS"}
            }
          ]
        }
      ]
    },
    {"id": "402", "shortName": "empty", "competitions": []}
  ]
}`

func TestESPNScoreboardFetchGames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(scoreboardFixture))
	}))
	defer srv.Close()

	source := NewESPNScoreboard(srv.URL, testClient())
	games, err := source.FetchGames(context.Background())
	require.NoError(t, err)
	require.Len(t, games, 1)

	g := games[0]
	assert.Equal(t, "BOS @ NYY", g.ShortName)
	assert.Equal(t, "Yankee Stadium", g.Venue)
	assert.Equal(t, "New York Yankees", g.Home.Name)
	assert.Equal(t, "Gerrit Cole", g.Home.ProbablePitcher)
	assert.Equal(t, "BOS", g.Away.Abbr)
	assert.Empty(t, g.Away.ProbablePitcher)
	assert.Equal(t, 2026, g.StartTime.Year())
}

func TestESPNScoreboardServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewESPNScoreboard(srv.URL, testClient()).FetchGames(context.Background())
	assert.Error(t, err)
}

const oddsFixture = `[
  {
    "home_team": "New York Yankees",
    "away_team": "Boston Red Sox",
    "bookmakers": [
      {
        "title": "DraftKings",
        "markets": [
          {
            "key": "h2h",
            "outcomes": [
              {"name": "New York Yankees", "price": -150},
              {"name": "Boston Red Sox", "price": 130}
            ]
          }
        ]
      }
    ]
  }
]`

func TestTheOddsAPIFetchMoneylines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "h2h", r.URL.Query().Get("markets"))
		w.Write([]byte(oddsFixture))
	}))
	defer srv.Close()

	source := NewTheOddsAPI(srv.URL, "secret", "baseball_mlb", "us", testClient())
	lines, err := source.FetchMoneylines(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 1)

	line := lines[0]
	assert.Equal(t, "New York Yankees", line.HomeTeam)
	assert.Equal(t, "DraftKings", line.Book)
	assert.Equal(t, "-150", line.HomePrice)
	assert.Equal(t, "+130", line.AwayPrice)
}

func TestTheOddsAPINoKeyDegrades(t *testing.T) {
	source := NewTheOddsAPI("http://unused", "", "baseball_mlb", "us", testClient())

	lines, err := source.FetchMoneylines(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lines)

	quotes, err := source.FetchPlayerProps(context.Background())
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

const propsFixture = `[
  {
    "home_team": "New York Yankees",
    "away_team": "Boston Red Sox",
    "bookmakers": [
      {
        "title": "FanDuel",
        "markets": [
          {
            "key": "batter_home_runs",
            "outcomes": [{"name": "Aaron Judge Over 0.5", "price": 210}]
          },
          {
            "key": "h2h",
            "outcomes": [{"name": "New York Yankees", "price": -150}]
          }
        ]
      }
    ]
  }
]`

func TestTheOddsAPIFetchPlayerProps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(propsFixture))
	}))
	defer srv.Close()

	source := NewTheOddsAPI(srv.URL, "secret", "baseball_mlb", "us", testClient())
	quotes, err := source.FetchPlayerProps(context.Background())
	require.NoError(t, err)
	require.Len(t, quotes, 1)

	assert.Equal(t, "batter_home_runs", quotes[0].MarketKey)
	assert.Equal(t, "Boston Red Sox vs New York Yankees", quotes[0].Game)
	assert.Equal(t, "+210", quotes[0].Price)
}

func TestOpenWeatherFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Write([]byte(`{"main": {"temp": 27.5}, "wind": {"speed": 6.2}}`))
	}))
	defer srv.Close()

	source := NewOpenWeather(srv.URL, "wkey", testClient())
	weather, err := source.FetchCityWeather(context.Background(), "New York")
	require.NoError(t, err)
	assert.Equal(t, 27.5, weather.TempC)
	assert.Equal(t, 6.2, weather.WindSpeedMS)
}

func TestOpenWeatherRequiresKey(t *testing.T) {
	_, err := NewOpenWeather("http://unused", "", testClient()).FetchCityWeather(context.Background(), "NY")
	assert.Error(t, err)
}

func TestHTTPClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	resp, err := testClient().Get(context.Background(), srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPClientDoRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "slate-fetch", r.Header.Get("X-Client-Tag"))
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set("X-Client-Tag", "slate-fetch")

	resp, err := testClient().Do(context.Background(), req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTPClientHonorsCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient().Get(ctx, srv.URL)
	assert.Error(t, err)
}
