// Package server exposes the dashboard HTTP API: stored picks and props,
// live slate data, on-demand regeneration, probes, and the websocket stream.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/datasource"
	"github.com/yourusername/diamond-edge/internal/engine"
	"github.com/yourusername/diamond-edge/internal/metrics"
	"github.com/yourusername/diamond-edge/internal/models"
	"github.com/yourusername/diamond-edge/internal/repository"
	"github.com/yourusername/diamond-edge/internal/service"
)

// DatabasePinger defines the interface for checking database connectivity.
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// PicksRunner triggers a pick generation pass.
type PicksRunner interface {
	Generate(ctx context.Context) (*models.PickSnapshot, []engine.Warning, error)
}

// PropsRunner triggers a prop ranking pass.
type PropsRunner interface {
	Generate(ctx context.Context) (*models.PropSnapshot, error)
}

// Config holds the dependencies and settings for the API server.
type Config struct {
	ServiceName    string
	Version        string
	Commit         string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MetricsEnabled bool
	MetricsPath    string
	Logger         *logrus.Logger
	DB             DatabasePinger
	Repos          *repository.Repositories
	Scoreboard     datasource.ScoreboardSource
	Picks          PicksRunner
	Props          PropsRunner
	Hub            *Hub
}

// Server is the dashboard API server.
type Server struct {
	cfg    Config
	log    *logrus.Logger
	server *http.Server
	mu     sync.RWMutex
	ready  bool
}

// NewServer creates an API server from its dependencies. Optional
// dependencies (repos, runners, hub, db) may be nil; the matching endpoints
// then report service unavailable.
func NewServer(cfg Config) *Server {
	if cfg.Port == 0 {
		cfg.Port = 5000
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 5 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	return &Server{cfg: cfg, log: cfg.Logger}
}

// SetReady marks the server as ready to accept traffic.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady returns whether the server is ready.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Handler builds the full route table. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/picks", s.handlePicks)
	mux.HandleFunc("/api/props", s.handleProps)
	mux.HandleFunc("/api/odds", s.handleOdds)
	mux.HandleFunc("/api/scoreboard", s.handleScoreboard)
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/score", s.handleScore)
	mux.HandleFunc("/api/rank-props", s.handleRankProps)
	mux.HandleFunc("/api/compare", s.handleCompare)

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.HandleFunc("/live", s.handleLive)

	if s.cfg.MetricsEnabled {
		path := s.cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle(path, metrics.Handler())
	}
	if s.cfg.Hub != nil {
		mux.HandleFunc("/ws", s.cfg.Hub.ServeWS)
	}
	return mux
}

// Start starts the API server in the background.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.log.WithFields(logrus.Fields{
			"port":    s.cfg.Port,
			"service": s.cfg.ServiceName,
		}).Info("API server starting")

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.WithError(err).Error("API server error")
		}
	}()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	return nil
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}
	s.log.Info("API server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// errorResponse is the JSON body for every non-2xx API response.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// handlePicks returns the latest pick snapshot, or the snapshot for an
// explicit ?date=YYYY-MM-DD.
func (s *Server) handlePicks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.cfg.Repos == nil {
		s.writeError(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}

	var snapshot *models.PickSnapshot
	var err error
	if date := r.URL.Query().Get("date"); date != "" {
		snapshot, err = s.cfg.Repos.Picks.GetByDate(r.Context(), date)
	} else {
		snapshot, err = s.cfg.Repos.Picks.GetLatest(r.Context())
	}
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "no picks generated yet")
			return
		}
		s.log.WithError(err).Error("Failed to load pick snapshot")
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleProps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.cfg.Repos == nil {
		s.writeError(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}

	snapshot, err := s.cfg.Repos.Props.GetLatest(r.Context())
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "no props generated yet")
			return
		}
		s.log.WithError(err).Error("Failed to load prop snapshot")
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleOdds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.cfg.Repos == nil {
		s.writeError(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}

	snapshot, err := s.cfg.Repos.Odds.GetLatest(r.Context())
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "no odds captured yet")
			return
		}
		s.log.WithError(err).Error("Failed to load odds snapshot")
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.writeJSON(w, http.StatusOK, snapshot)
}

// handleScoreboard proxies today's schedule straight from the feed.
func (s *Server) handleScoreboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.cfg.Scoreboard == nil {
		s.writeError(w, http.StatusServiceUnavailable, "scoreboard not configured")
		return
	}

	games, err := s.cfg.Scoreboard.FetchGames(r.Context())
	if err != nil {
		s.log.WithError(err).Error("Scoreboard fetch failed")
		s.writeError(w, http.StatusBadGateway, "scoreboard feed unavailable")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"games": games})
}

// handleGenerate runs pick and prop generation on demand.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.cfg.Picks == nil {
		s.writeError(w, http.StatusServiceUnavailable, "generation not configured")
		return
	}

	snapshot, warnings, err := s.cfg.Picks.Generate(r.Context())
	if err != nil {
		s.log.WithError(err).Error("On-demand generation failed")
		s.writeError(w, http.StatusBadGateway, "generation failed")
		return
	}

	var props *models.PropSnapshot
	if s.cfg.Props != nil {
		if props, err = s.cfg.Props.Generate(r.Context()); err != nil {
			s.log.WithError(err).Warn("Prop generation failed during on-demand run")
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"picks":    snapshot,
		"props":    props,
		"warnings": warnings,
	})
}

// handleScore scores a caller-supplied slate without touching upstream feeds
// or persistence.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body, err := readBody(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	payload, err := service.DecodeSlatePayload(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, warnings := engine.ScoreSlate(payload.Games)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":     payload.Date,
		"games":    results,
		"warnings": warnings,
	})
}

// handleRankProps ranks caller-supplied prop candidates.
func (s *Server) handleRankProps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body, err := readBody(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	payload, err := service.DecodePropsPayload(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"props": engine.RankProps(payload.Props),
	})
}

// compareRequest is the body for the head-to-head comparison endpoint.
type compareRequest struct {
	Home models.TeamBattingProfile `json:"home"`
	Away models.TeamBattingProfile `json:"away"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body, err := readBody(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req compareRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid payload: %v", err))
		return
	}
	if req.Home.Team == "" || req.Away.Team == "" {
		s.writeError(w, http.StatusBadRequest, "both teams are required")
		return
	}

	s.writeJSON(w, http.StatusOK, engine.CompareTeams(req.Home, req.Away))
}

const maxBodyBytes = 1 << 20

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
}

// ReadyResponse represents the JSON response for readiness check endpoints.
type ReadyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks,omitempty"`
	Duration string            `json:"duration,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   s.cfg.ServiceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.cfg.Version,
		Commit:    s.cfg.Commit,
	})
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Service: s.cfg.ServiceName})
}

// handleReady checks readiness and database connectivity.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks := make(map[string]string)
	allHealthy := true

	if !s.IsReady() {
		allHealthy = false
		checks["service"] = "not_ready"
	} else {
		checks["service"] = "ok"
	}

	if s.cfg.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := s.cfg.DB.Ping(ctx); err != nil {
			allHealthy = false
			checks["database"] = fmt.Sprintf("error: %v", err)
		} else {
			checks["database"] = "ok"
		}
	}

	response := ReadyResponse{
		Service:  s.cfg.ServiceName,
		Checks:   checks,
		Duration: time.Since(start).String(),
	}
	if allHealthy {
		response.Status = "ok"
		s.writeJSON(w, http.StatusOK, response)
		return
	}
	response.Status = "not_ready"
	s.writeJSON(w, http.StatusServiceUnavailable, response)
}
