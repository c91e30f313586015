package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/diamond-edge/internal/database"
	"github.com/yourusername/diamond-edge/internal/models"
)

// PostgresOddsRepository implements OddsRepository for PostgreSQL
type PostgresOddsRepository struct {
	db *database.DB
}

// NewPostgresOddsRepository creates a new odds repository
func NewPostgresOddsRepository(db *database.DB) OddsRepository {
	return &PostgresOddsRepository{db: db}
}

// Save inserts an odds snapshot
func (r *PostgresOddsRepository) Save(ctx context.Context, snapshot *models.OddsSnapshot) error {
	lines, err := json.Marshal(snapshot.Lines)
	if err != nil {
		return fmt.Errorf("failed to marshal lines: %w", err)
	}
	props, err := json.Marshal(snapshot.Props)
	if err != nil {
		return fmt.Errorf("failed to marshal prop quotes: %w", err)
	}

	query := `
		INSERT INTO odds_snapshots (id, generated_at, lines, props)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.GetPool().Exec(ctx, query, snapshot.ID, snapshot.GeneratedAt, lines, props); err != nil {
		return fmt.Errorf("failed to save odds snapshot: %w", err)
	}
	return nil
}

// GetLatest retrieves the most recent odds snapshot
func (r *PostgresOddsRepository) GetLatest(ctx context.Context) (*models.OddsSnapshot, error) {
	query := `
		SELECT id, generated_at, lines, props
		FROM odds_snapshots
		ORDER BY generated_at DESC
		LIMIT 1
	`

	snapshot := &models.OddsSnapshot{}
	var lines, props []byte

	err := r.db.GetPool().QueryRow(ctx, query).Scan(&snapshot.ID, &snapshot.GeneratedAt, &lines, &props)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan odds snapshot: %w", err)
	}

	if err := json.Unmarshal(lines, &snapshot.Lines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lines: %w", err)
	}
	if err := json.Unmarshal(props, &snapshot.Props); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prop quotes: %w", err)
	}
	return snapshot, nil
}
