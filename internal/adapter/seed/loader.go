package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/oakfield/doortrack/internal/domain"
)

// Loader does the one-shot bulk load of an initial dataset from a
// well-known resource returning {"orders": {...}}. Used only when the
// storage slot starts empty; any failure leaves the store empty.
type Loader struct {
	url    string
	client *http.Client
}

func NewLoader(url string) *Loader {
	return &Loader{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (l *Loader) Fetch(ctx context.Context) (*domain.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build seed request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seed data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("seed fetch returned status %d", resp.StatusCode)
	}

	var ds domain.Dataset
	if err := json.NewDecoder(resp.Body).Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &ds, nil
}
