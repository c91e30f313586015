// Package repository provides persistence for pick, prop, and odds
// snapshots. The scoring engine itself never touches storage; snapshots are
// recorded so the dashboard can replay historical picks.
package repository

import (
	"context"

	"github.com/yourusername/diamond-edge/internal/database"
	"github.com/yourusername/diamond-edge/internal/models"
)

// PickRepository defines the interface for pick snapshot access
type PickRepository interface {
	Save(ctx context.Context, snapshot *models.PickSnapshot) error
	GetLatest(ctx context.Context) (*models.PickSnapshot, error)
	GetByDate(ctx context.Context, date string) (*models.PickSnapshot, error)
}

// PropRepository defines the interface for prop snapshot access
type PropRepository interface {
	Save(ctx context.Context, snapshot *models.PropSnapshot) error
	GetLatest(ctx context.Context) (*models.PropSnapshot, error)
}

// OddsRepository defines the interface for odds snapshot access
type OddsRepository interface {
	Save(ctx context.Context, snapshot *models.OddsSnapshot) error
	GetLatest(ctx context.Context) (*models.OddsSnapshot, error)
}

// Repositories bundles all repositories behind one constructor
type Repositories struct {
	Picks PickRepository
	Props PropRepository
	Odds  OddsRepository
}

// NewRepositories creates PostgreSQL-backed repositories
func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Picks: NewPostgresPickRepository(db),
		Props: NewPostgresPropRepository(db),
		Odds:  NewPostgresOddsRepository(db),
	}
}
