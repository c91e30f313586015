package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/diamond-edge/internal/datasource"
	"github.com/yourusername/diamond-edge/internal/engine"
	"github.com/yourusername/diamond-edge/internal/models"
	"github.com/yourusername/diamond-edge/internal/repository"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type stubPickRepo struct {
	snapshot *models.PickSnapshot
	byDate   map[string]*models.PickSnapshot
	err      error
}

func (s *stubPickRepo) Save(ctx context.Context, snapshot *models.PickSnapshot) error { return s.err }

func (s *stubPickRepo) GetLatest(ctx context.Context) (*models.PickSnapshot, error) {
	if s.snapshot == nil {
		return nil, models.ErrNotFound
	}
	return s.snapshot, s.err
}

func (s *stubPickRepo) GetByDate(ctx context.Context, date string) (*models.PickSnapshot, error) {
	if snap, ok := s.byDate[date]; ok {
		return snap, nil
	}
	return nil, models.ErrNotFound
}

type stubPropRepo struct {
	snapshot *models.PropSnapshot
}

func (s *stubPropRepo) Save(ctx context.Context, snapshot *models.PropSnapshot) error { return nil }

func (s *stubPropRepo) GetLatest(ctx context.Context) (*models.PropSnapshot, error) {
	if s.snapshot == nil {
		return nil, models.ErrNotFound
	}
	return s.snapshot, nil
}

type stubOddsRepo struct {
	snapshot *models.OddsSnapshot
}

func (s *stubOddsRepo) Save(ctx context.Context, snapshot *models.OddsSnapshot) error { return nil }

func (s *stubOddsRepo) GetLatest(ctx context.Context) (*models.OddsSnapshot, error) {
	if s.snapshot == nil {
		return nil, models.ErrNotFound
	}
	return s.snapshot, nil
}

type stubScoreboard struct {
	games []datasource.GameInfo
	err   error
}

func (s *stubScoreboard) Name() string { return "stub-scoreboard" }

func (s *stubScoreboard) FetchGames(ctx context.Context) ([]datasource.GameInfo, error) {
	return s.games, s.err
}

type stubPicksRunner struct {
	snapshot *models.PickSnapshot
	err      error
	calls    int
}

func (s *stubPicksRunner) Generate(ctx context.Context) (*models.PickSnapshot, []engine.Warning, error) {
	s.calls++
	return s.snapshot, nil, s.err
}

type stubPropsRunner struct {
	snapshot *models.PropSnapshot
}

func (s *stubPropsRunner) Generate(ctx context.Context) (*models.PropSnapshot, error) {
	return s.snapshot, nil
}

func pickSnapshot() *models.PickSnapshot {
	return &models.PickSnapshot{
		ID:          uuid.New(),
		Date:        "2026-06-12",
		GeneratedAt: time.Date(2026, 6, 12, 13, 0, 0, 0, time.UTC),
		Results: []models.EdgeResult{
			{Match: "BOS @ NYY", Pick: "New York Yankees ML", Probability: 0.712, EdgePct: 42.4},
		},
	}
}

func newTestServer(repos *repository.Repositories) *Server {
	return NewServer(Config{
		ServiceName: "diamond-edge",
		Logger:      quietLogger(),
		Repos:       repos,
	})
}

func TestGetPicksLatest(t *testing.T) {
	repos := &repository.Repositories{Picks: &stubPickRepo{snapshot: pickSnapshot()}}
	srv := newTestServer(repos)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/picks", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.PickSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Results, 1)
	assert.Equal(t, "BOS @ NYY", got.Results[0].Match)
}

func TestGetPicksByDate(t *testing.T) {
	snap := pickSnapshot()
	repos := &repository.Repositories{Picks: &stubPickRepo{
		byDate: map[string]*models.PickSnapshot{"2026-06-12": snap},
	}}
	srv := newTestServer(repos)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/picks?date=2026-06-12", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/picks?date=2026-06-13", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPicksEmpty(t *testing.T) {
	repos := &repository.Repositories{Picks: &stubPickRepo{}}
	srv := newTestServer(repos)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/picks", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEndpointsWithoutPersistence(t *testing.T) {
	srv := newTestServer(nil)
	for _, path := range []string{"/api/picks", "/api/props", "/api/odds"} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
	}
}

func TestGetProps(t *testing.T) {
	repos := &repository.Repositories{Props: &stubPropRepo{snapshot: &models.PropSnapshot{
		ID: uuid.New(),
		Props: []models.PropCandidate{
			{Player: "Aaron Judge", Team: "NYY", PropName: "Home Run 0.5", Confidence: 0.74, Band: models.BandHigh},
		},
	}}}
	srv := newTestServer(repos)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/props", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Aaron Judge")
}

func TestGetScoreboard(t *testing.T) {
	srv := NewServer(Config{
		Logger: quietLogger(),
		Scoreboard: &stubScoreboard{games: []datasource.GameInfo{
			{ShortName: "BOS @ NYY", Venue: "Yankee Stadium"},
		}},
	})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scoreboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "BOS @ NYY")
}

func TestGetScoreboardFeedDown(t *testing.T) {
	srv := NewServer(Config{
		Logger:     quietLogger(),
		Scoreboard: &stubScoreboard{err: errors.New("timeout")},
	})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scoreboard", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestPostGenerate(t *testing.T) {
	picks := &stubPicksRunner{snapshot: pickSnapshot()}
	srv := NewServer(Config{
		Logger: quietLogger(),
		Picks:  picks,
		Props:  &stubPropsRunner{snapshot: &models.PropSnapshot{ID: uuid.New()}},
	})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, picks.calls)
	assert.Contains(t, rec.Body.String(), "picks")

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/generate", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPostScore(t *testing.T) {
	srv := newTestServer(nil)
	body := `{
		"date": "2026-06-12",
		"games": [
			{"shortMatch": "BOS @ NYY", "home": {"team": "NYY", "wRC_plus": 110}, "away": {"team": "BOS", "wRC_plus": 95}},
			{"shortMatch": "", "home": {"team": "LAD"}, "away": {"team": "SD"}}
		]
	}`

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/score", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Date     string              `json:"date"`
		Games    []models.EdgeResult `json:"games"`
		Warnings []engine.Warning    `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-06-12", resp.Date)
	require.Len(t, resp.Games, 1)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, 1, resp.Warnings[0].Index)
	assert.Greater(t, resp.Games[0].Probability, 0.5)
}

func TestPostScoreRejectsMalformedEnvelope(t *testing.T) {
	srv := newTestServer(nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/score", strings.NewReader(`{"games": "nope"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostRankProps(t *testing.T) {
	srv := newTestServer(nil)
	body := `{"props": [
		{"player": "A", "team": "NYY", "prop_name": "Hits 0.5", "confidence": 0.40},
		{"player": "B", "team": "BOS", "prop_name": "Hits 0.5", "confidence": 0.80}
	]}`

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/rank-props", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Props []models.PropCandidate `json:"props"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Props, 2)
	assert.Equal(t, "B", resp.Props[0].Player)
	assert.Equal(t, models.BandHigh, resp.Props[0].Band)
}

func TestPostCompare(t *testing.T) {
	srv := newTestServer(nil)
	body := `{
		"home": {"team": "NYY", "wRC_plus": 112, "xwOBA": 0.335},
		"away": {"team": "BOS", "wRC_plus": 103}
	}`

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/compare", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "wRC+")
	assert.Contains(t, rec.Body.String(), "SIERA")

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/compare", strings.NewReader(`{"home": {"team": "NYY"}}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	srv := NewServer(Config{ServiceName: "diamond-edge", Version: "1.2.3", Logger: quietLogger()})
	handler := srv.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "1.2.3", health.Version)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	srv.SetReady(true)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsRoute(t *testing.T) {
	srv := NewServer(Config{Logger: quietLogger(), MetricsEnabled: true, MetricsPath: "/metrics"})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "diamond_edge_scoring_passes_total")
}

func TestWebsocketBroadcast(t *testing.T) {
	hub := NewHub(quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := NewServer(Config{Logger: quietLogger(), Hub: hub})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	// Registration races the broadcast; give the hub a beat.
	time.Sleep(50 * time.Millisecond)
	hub.BroadcastPicks(pickSnapshot())

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var envelope struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg, &envelope))
	assert.Equal(t, "picks", envelope.Type)
	assert.Contains(t, string(envelope.Data), "BOS @ NYY")
}
