// Package store defines persistence for strategies. Implementations are
// PostgreSQL (JSONB documents, last write wins) and in-memory (tests and
// ephemeral runs). The "current strategy" is stored as a selected id only;
// the current view is always recomputed by lookup.
package store

import (
	"context"
	"errors"

	"github.com/fundora/ledger/internal/domain"
)

// ErrNotFound indicates the referenced strategy does not exist in the store.
var ErrNotFound = errors.New("strategy not found")

// Store is the persistence interface. SaveStrategy is a total replace: the
// caller always writes a complete strategy value, never a partial update.
type Store interface {
	// ListStrategies returns all strategies in creation order.
	ListStrategies(ctx context.Context) ([]domain.Strategy, error)

	// GetStrategy retrieves one strategy by id.
	GetStrategy(ctx context.Context, id string) (domain.Strategy, error)

	// SaveStrategy inserts the strategy or replaces it entirely.
	SaveStrategy(ctx context.Context, s domain.Strategy) error

	// CurrentStrategyID returns the selected strategy id, or "" when none is selected.
	CurrentStrategyID(ctx context.Context) (string, error)

	// SetCurrentStrategyID selects a strategy. The id must exist.
	SetCurrentStrategyID(ctx context.Context, id string) error
}
