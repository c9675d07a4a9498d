package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/oakfield/doortrack/internal/adapter/logger"
	"github.com/oakfield/doortrack/internal/domain"
	"github.com/oakfield/doortrack/internal/interfaces"
)

// Store owns the in-memory dataset. It is loaded once at startup and a
// full snapshot is written back through the blob slot after every
// mutation. A failed save is logged and the session continues in memory
// only; mutations never roll back on persistence failure.
type Store struct {
	mu   sync.Mutex
	data *domain.Dataset
	blob interfaces.BlobStore
	lgr  logger.Logger
}

func New(blob interfaces.BlobStore, lgr logger.Logger) *Store {
	return &Store{
		data: domain.NewDataset(),
		blob: blob,
		lgr:  lgr,
	}
}

// Load reads the persisted dataset. An empty slot leaves the store empty;
// a read failure does the same but reports it, so the caller can surface
// a non-fatal message.
func (s *Store) Load(ctx context.Context) error {
	ds, err := s.blob.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}
	if ds == nil || ds.Orders == nil {
		return nil
	}
	// Legacy exports can carry null LOGS.
	for _, o := range ds.Orders {
		if o.Logs == nil {
			o.Logs = make(map[string]domain.LogEntry)
		}
	}

	s.mu.Lock()
	s.data = ds
	s.mu.Unlock()
	return nil
}

// Seed replaces an empty store with a bulk-loaded dataset. No-op when the
// store already holds orders.
func (s *Store) Seed(ctx context.Context, ds *domain.Dataset) {
	if ds == nil || ds.Orders == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.data.Orders) > 0 {
		return
	}
	for _, o := range ds.Orders {
		if o.Logs == nil {
			o.Logs = make(map[string]domain.LogEntry)
		}
	}
	s.data = ds
	s.save(ctx)
}

func (s *Store) Get(key string) (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, found := s.data.Orders[key]
	if !found {
		return domain.Order{}, false
	}
	return o.Clone(), true
}

// All returns a copy of every order, sorted by key for a stable baseline
// order in views.
func (s *Store) All() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.data.Orders))
	for k := range s.data.Orders {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	orders := make([]domain.Order, 0, len(keys))
	for _, k := range keys {
		orders = append(orders, s.data.Orders[k].Clone())
	}
	return orders
}

// Create inserts a new order and persists. The key must not exist yet.
func (s *Store) Create(ctx context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := order.Key()
	if _, exists := s.data.Orders[key]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateOrder, key)
	}
	if order.Logs == nil {
		order.Logs = make(map[string]domain.LogEntry)
	}

	s.data.Orders[key] = order
	s.save(ctx)
	return nil
}

// AppendLog records a log entry and applies the scan's status effect in
// one step, then persists once. Two events in the same minute share a
// timestamp key and the later one wins; minute granularity is an accepted
// limitation of the key format.
func (s *Store) AppendLog(ctx context.Context, key, tsKey string, entry domain.LogEntry, eff domain.Effect) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, found := s.data.Orders[key]
	if !found {
		return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, key)
	}

	order.Logs[tsKey] = entry
	domain.ApplyEffect(order, eff)
	s.save(ctx)
	return nil
}

// Snapshot returns a deep copy of the whole dataset, for export.
func (s *Store) Snapshot() *domain.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds := domain.NewDataset()
	for k, o := range s.data.Orders {
		c := o.Clone()
		ds.Orders[k] = &c
	}
	return ds
}

// save writes the snapshot under the lock. Persistence failures are not
// fatal: the mutation already happened in memory.
func (s *Store) save(ctx context.Context) {
	if err := s.blob.Save(ctx, s.data); err != nil {
		s.lgr.Error("persist_failed", "Failed to save dataset snapshot", "", map[string]interface{}{
			"orders": len(s.data.Orders),
		}, err)
	}
}
