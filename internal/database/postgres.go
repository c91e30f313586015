// Package database manages the PostgreSQL connection pool.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yourusername/diamond-edge/internal/config"
)

// DB wraps the pgxpool.Pool to provide database operations
type DB struct {
	pool *pgxpool.Pool
}

// NewDB creates a new database connection pool from configuration
func NewDB(ctx context.Context, cfg *config.DatabaseConfig) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 5 * time.Minute
	poolConfig.MaxConnIdleTime = 1 * time.Minute
	poolConfig.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// GetPool returns the underlying connection pool
func (db *DB) GetPool() *pgxpool.Pool {
	return db.pool
}

// Ping verifies database connectivity
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Close gracefully closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the snapshot tables if they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS pick_snapshots (
			id UUID PRIMARY KEY,
			date TEXT NOT NULL,
			generated_at TIMESTAMPTZ NOT NULL,
			results JSONB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pick_snapshots_generated_at ON pick_snapshots (generated_at DESC)`,
		`CREATE TABLE IF NOT EXISTS prop_snapshots (
			id UUID PRIMARY KEY,
			generated_at TIMESTAMPTZ NOT NULL,
			props JSONB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_prop_snapshots_generated_at ON prop_snapshots (generated_at DESC)`,
		`CREATE TABLE IF NOT EXISTS odds_snapshots (
			id UUID PRIMARY KEY,
			generated_at TIMESTAMPTZ NOT NULL,
			lines JSONB NOT NULL,
			props JSONB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_odds_snapshots_generated_at ON odds_snapshots (generated_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
