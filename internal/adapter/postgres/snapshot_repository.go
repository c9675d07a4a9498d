package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oakfield/doortrack/internal/domain"
	"github.com/oakfield/doortrack/internal/interfaces"
)

// slot is the single row holding the whole serialized dataset. The store
// writes the full snapshot on every save; postgres here is a durable blob
// slot, not a relational model of orders.
const slot = "orders"

type snapshotRepository struct {
	db DB
}

func NewSnapshotRepository(ctx context.Context, db DB) (interfaces.BlobStore, error) {
	query := `
		CREATE TABLE IF NOT EXISTS order_snapshots (
			slot       TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if err := db.Exec(ctx, query); err != nil {
		return nil, fmt.Errorf("failed to ensure snapshot table: %w", err)
	}
	return &snapshotRepository{db: db}, nil
}

func (r *snapshotRepository) Load(ctx context.Context) (*domain.Dataset, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `SELECT data FROM order_snapshots WHERE slot = $1`, slot).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var ds domain.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return &ds, nil
}

func (r *snapshotRepository) Save(ctx context.Context, ds *domain.Dataset) error {
	data, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}

	query := `
		INSERT INTO order_snapshots (slot, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (slot) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`
	if err := r.db.Exec(ctx, query, slot, data); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
