package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ferabensrl/mare-pedidos-backend/pkg/config"
	"github.com/sethvargo/go-retry"
)

const maxFeedBytes = 16 << 20

// Fetcher downloads the raw catalog document over HTTP, retrying
// transient failures with exponential backoff.
type Fetcher struct {
	url     string
	client  *http.Client
	retries uint64
}

// NewFetcher builds a fetcher from the catalog configuration.
func NewFetcher(cfg config.CatalogConfig) (*Fetcher, error) {
	if cfg.FeedURL == "" {
		return nil, fmt.Errorf("catalog feed url is required")
	}
	return &Fetcher{
		url:     cfg.FeedURL,
		client:  &http.Client{Timeout: cfg.RequestTimeout},
		retries: cfg.FetchRetries,
	}, nil
}

// Fetch returns the raw feed document bytes.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	backoff := retry.WithMaxRetries(f.retries, retry.NewExponential(500*time.Millisecond))

	var body []byte
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		data, err := f.fetchOnce(ctx)
		if err != nil {
			return retry.RetryableError(err)
		}
		body = data
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetching catalog feed: %w", err)
	}
	return body, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed responded %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("reading feed body: %w", err)
	}
	return body, nil
}
