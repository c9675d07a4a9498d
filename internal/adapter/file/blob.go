package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/oakfield/doortrack/internal/domain"
	"github.com/oakfield/doortrack/internal/interfaces"
)

// BlobStore keeps the dataset snapshot in a single JSON file, the same
// shape the export endpoint emits, so an exported test.json loads back
// directly.
type BlobStore struct {
	path string
}

func New(path string) interfaces.BlobStore {
	return &BlobStore{path: path}
}

func (b *BlobStore) Load(ctx context.Context) (*domain.Dataset, error) {
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", b.path, err)
	}

	var ds domain.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", b.path, err)
	}
	return &ds, nil
}

func (b *BlobStore) Save(ctx context.Context, ds *domain.Dataset) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}
	if err := os.WriteFile(b.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", b.path, err)
	}
	return nil
}

// WriteExport dumps a dataset as pretty-printed JSON to path, for the
// export command.
func WriteExport(path string, ds *domain.Dataset) error {
	return (&BlobStore{path: path}).Save(context.Background(), ds)
}
