package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/josephkohhh/DataLoader/metrics"
	"github.com/josephkohhh/DataLoader/schemas"
	"github.com/josephkohhh/DataLoader/store"
)

var (
	// ErrNoURL means EXTERNAL_API_URL was never configured. Surfaces as a
	// request-time failure, not a startup failure.
	ErrNoURL = errors.New("external API URL is not configured")
	// ErrEmptyPayload means the upstream answered but carried no products.
	ErrEmptyPayload = errors.New("no products found in external payload")
)

// Loader pulls raw product records from the external source and feeds
// them through validation into the store, one at a time.
type Loader struct {
	store  *store.ProductStore
	url    string
	client *http.Client
	log    *slog.Logger
}

func New(st *store.ProductStore, url string, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{
		store:  st,
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log,
	}
}

type payload struct {
	Products []json.RawMessage `json:"products"`
}

// Fetch retrieves the upstream payload and returns its product records,
// each kept as raw JSON so a malformed record only fails itself.
func (l *Loader) Fetch(ctx context.Context) ([]json.RawMessage, error) {
	if l.url == "" {
		return nil, ErrNoURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching products: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("external API returned %s", resp.Status)
	}
	var p payload
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding products payload: %w", err)
	}
	return p.Products, nil
}

// BulkCreate validates and inserts raw records sequentially, in input
// order. Invalid records, duplicates, and per-record persistence failures
// are logged and skipped; one bad record never aborts the batch. Returns
// how many rows were actually created.
func (l *Loader) BulkCreate(raw []json.RawMessage) int {
	created := 0
	for _, r := range raw {
		var in schemas.ProductCreate
		if err := json.Unmarshal(r, &in); err != nil {
			l.log.Warn("skipping malformed product record", "err", err)
			continue
		}
		if err := in.Validate(); err != nil {
			l.log.Warn("skipping invalid product record", "id", in.ID, "err", err)
			continue
		}
		_, wasCreated, err := l.store.InsertIfAbsent(in.ToModel())
		if err != nil || !wasCreated {
			continue
		}
		created++
	}
	l.log.Info("bulk load finished", "created", created, "received", len(raw))
	metrics.AddProductsLoaded(created)
	return created
}

// LoadProducts runs one full ingestion round: fetch, validate, insert.
func (l *Loader) LoadProducts(ctx context.Context) (int, error) {
	raw, err := l.Fetch(ctx)
	if err != nil {
		return 0, err
	}
	if len(raw) == 0 {
		return 0, ErrEmptyPayload
	}
	return l.BulkCreate(raw), nil
}
