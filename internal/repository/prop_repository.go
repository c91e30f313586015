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

// PostgresPropRepository implements PropRepository for PostgreSQL
type PostgresPropRepository struct {
	db *database.DB
}

// NewPostgresPropRepository creates a new prop repository
func NewPostgresPropRepository(db *database.DB) PropRepository {
	return &PostgresPropRepository{db: db}
}

// Save inserts a prop snapshot
func (r *PostgresPropRepository) Save(ctx context.Context, snapshot *models.PropSnapshot) error {
	payload, err := json.Marshal(snapshot.Props)
	if err != nil {
		return fmt.Errorf("failed to marshal props: %w", err)
	}

	query := `
		INSERT INTO prop_snapshots (id, generated_at, props)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.GetPool().Exec(ctx, query, snapshot.ID, snapshot.GeneratedAt, payload); err != nil {
		return fmt.Errorf("failed to save prop snapshot: %w", err)
	}
	return nil
}

// GetLatest retrieves the most recent prop snapshot
func (r *PostgresPropRepository) GetLatest(ctx context.Context) (*models.PropSnapshot, error) {
	query := `
		SELECT id, generated_at, props
		FROM prop_snapshots
		ORDER BY generated_at DESC
		LIMIT 1
	`

	snapshot := &models.PropSnapshot{}
	var payload []byte

	err := r.db.GetPool().QueryRow(ctx, query).Scan(&snapshot.ID, &snapshot.GeneratedAt, &payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan prop snapshot: %w", err)
	}

	if err := json.Unmarshal(payload, &snapshot.Props); err != nil {
		return nil, fmt.Errorf("failed to unmarshal props: %w", err)
	}
	return snapshot, nil
}
