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

// PostgresPickRepository implements PickRepository for PostgreSQL
type PostgresPickRepository struct {
	db *database.DB
}

// NewPostgresPickRepository creates a new pick repository
func NewPostgresPickRepository(db *database.DB) PickRepository {
	return &PostgresPickRepository{db: db}
}

// Save inserts a pick snapshot
func (r *PostgresPickRepository) Save(ctx context.Context, snapshot *models.PickSnapshot) error {
	payload, err := json.Marshal(snapshot.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal pick results: %w", err)
	}

	query := `
		INSERT INTO pick_snapshots (id, date, generated_at, results)
		VALUES ($1, $2, $3, $4)
	`
	_, err = r.db.GetPool().Exec(ctx, query,
		snapshot.ID, snapshot.Date, snapshot.GeneratedAt, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save pick snapshot: %w", err)
	}
	return nil
}

// GetLatest retrieves the most recent pick snapshot
func (r *PostgresPickRepository) GetLatest(ctx context.Context) (*models.PickSnapshot, error) {
	query := `
		SELECT id, date, generated_at, results
		FROM pick_snapshots
		ORDER BY generated_at DESC
		LIMIT 1
	`
	return r.scanOne(r.db.GetPool().QueryRow(ctx, query))
}

// GetByDate retrieves the most recent pick snapshot for a slate date
func (r *PostgresPickRepository) GetByDate(ctx context.Context, date string) (*models.PickSnapshot, error) {
	query := `
		SELECT id, date, generated_at, results
		FROM pick_snapshots
		WHERE date = $1
		ORDER BY generated_at DESC
		LIMIT 1
	`
	return r.scanOne(r.db.GetPool().QueryRow(ctx, query, date))
}

func (r *PostgresPickRepository) scanOne(row pgx.Row) (*models.PickSnapshot, error) {
	snapshot := &models.PickSnapshot{}
	var payload []byte

	err := row.Scan(&snapshot.ID, &snapshot.Date, &snapshot.GeneratedAt, &payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan pick snapshot: %w", err)
	}

	if err := json.Unmarshal(payload, &snapshot.Results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pick results: %w", err)
	}
	return snapshot, nil
}
