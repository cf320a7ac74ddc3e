package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fundora/ledger/internal/domain"
)

// PgStore implements Store with PostgreSQL. Each strategy is one JSONB
// document; SaveStrategy upserts the whole document, so the last write wins.
// Dates inside the document round-trip as RFC 3339 strings and are
// re-hydrated by json.Unmarshal on every read.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a PostgreSQL-backed store.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

func (p *PgStore) ListStrategies(ctx context.Context) ([]domain.Strategy, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT data FROM strategies ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("listing strategies: %w", err)
	}
	defer rows.Close()

	var strategies []domain.Strategy
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning strategy: %w", err)
		}
		var s domain.Strategy
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decoding strategy: %w", err)
		}
		strategies = append(strategies, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating strategies: %w", err)
	}
	return strategies, nil
}

func (p *PgStore) GetStrategy(ctx context.Context, id string) (domain.Strategy, error) {
	var data []byte
	err := p.pool.QueryRow(ctx,
		`SELECT data FROM strategies WHERE id = $1`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Strategy{}, ErrNotFound
		}
		return domain.Strategy{}, fmt.Errorf("getting strategy %s: %w", id, err)
	}

	var s domain.Strategy
	if err := json.Unmarshal(data, &s); err != nil {
		return domain.Strategy{}, fmt.Errorf("decoding strategy %s: %w", id, err)
	}
	return s, nil
}

func (p *PgStore) SaveStrategy(ctx context.Context, s domain.Strategy) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding strategy %s: %w", s.ID, err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO strategies (id, data)
		 VALUES ($1, $2::jsonb)
		 ON CONFLICT (id) DO UPDATE SET data = $2::jsonb`,
		s.ID, data)
	if err != nil {
		return fmt.Errorf("saving strategy %s: %w", s.ID, err)
	}
	return nil
}

func (p *PgStore) CurrentStrategyID(ctx context.Context) (string, error) {
	var id string
	err := p.pool.QueryRow(ctx,
		`SELECT strategy_id FROM current_strategy WHERE singleton`).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("getting current strategy: %w", err)
	}
	return id, nil
}

func (p *PgStore) SetCurrentStrategyID(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx,
		`INSERT INTO current_strategy (singleton, strategy_id)
		 SELECT TRUE, $1 WHERE EXISTS (SELECT 1 FROM strategies WHERE id = $1)
		 ON CONFLICT (singleton) DO UPDATE SET strategy_id = $1`,
		id)
	if err != nil {
		return fmt.Errorf("setting current strategy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
