package interfaces

import (
	"context"

	"github.com/oakfield/doortrack/internal/domain"
)

// OrderStore holds the in-memory dataset and persists a snapshot after
// every mutation. Get/All return copies; mutation happens only through
// Create and AppendLog.
type OrderStore interface {
	Get(key string) (domain.Order, bool)
	All() []domain.Order
	Create(ctx context.Context, order *domain.Order) error
	AppendLog(ctx context.Context, key, tsKey string, entry domain.LogEntry, eff domain.Effect) error
	Snapshot() *domain.Dataset
}

// BlobStore is the persistence slot holding the whole serialized dataset.
// Load returns (nil, nil) when the slot is empty.
type BlobStore interface {
	Load(ctx context.Context) (*domain.Dataset, error)
	Save(ctx context.Context, ds *domain.Dataset) error
}
