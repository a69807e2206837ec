package catalog

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	pkgerrors "github.com/ferabensrl/mare-pedidos-backend/pkg/errors"
	"github.com/ferabensrl/mare-pedidos-backend/pkg/logger"
	"github.com/ferabensrl/mare-pedidos-backend/pkg/metrics"
)

type feedFetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

type snapshotCache interface {
	Store(ctx context.Context, payload []byte, fetchedAt time.Time) error
	Load(ctx context.Context) (payload []byte, fetchedAt time.Time, found bool, err error)
}

// Service holds the current catalog snapshot and refreshes it from the
// remote feed. Reads never block on a refresh; the snapshot is swapped
// atomically. Refresh failures leave the current snapshot (and all cart
// state) untouched.
type Service struct {
	fetcher  feedFetcher
	cache    snapshotCache
	metrics  *metrics.CatalogMetrics
	logg     *logger.Logger
	snapshot atomic.Pointer[Feed]
}

// NewService builds a catalog service. The cache is optional.
func NewService(fetcher feedFetcher, cache snapshotCache, m *metrics.CatalogMetrics, logg *logger.Logger) (*Service, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("feed fetcher required")
	}
	return &Service{
		fetcher: fetcher,
		cache:   cache,
		metrics: m,
		logg:    logg,
	}, nil
}

// Refresh fetches and swaps in a new snapshot. On fetch failure with no
// snapshot loaded yet, the last cached document is restored so the API
// can serve stale data instead of nothing.
func (s *Service) Refresh(ctx context.Context) error {
	body, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.metrics.IncRefreshFailure()
		if s.snapshot.Load() == nil {
			s.restoreFromCache(ctx)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh catalog")
	}

	feed, err := DecodeFeed(body)
	if err != nil {
		s.metrics.IncRefreshFailure()
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode catalog feed")
	}

	s.snapshot.Store(feed)
	s.metrics.IncRefreshSuccess(len(feed.Products))

	if s.cache != nil {
		if err := s.cache.Store(ctx, body, time.Now()); err != nil {
			if s.logg != nil {
				s.logg.Error(ctx, "caching catalog snapshot failed", err)
			}
		}
	}
	return nil
}

func (s *Service) restoreFromCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	payload, fetchedAt, found, err := s.cache.Load(ctx)
	if err != nil || !found {
		if err != nil && s.logg != nil {
			s.logg.Error(ctx, "loading cached catalog failed", err)
		}
		return
	}
	feed, err := DecodeFeed(payload)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "decoding cached catalog failed", err)
		}
		return
	}
	s.snapshot.Store(feed)
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"products":   len(feed.Products),
			"fetched_at": fetchedAt,
		})
		s.logg.Warn(ctx, "serving catalog from local cache")
	}
}

// Run refreshes the snapshot on the given interval until ctx is done.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil && s.logg != nil {
				s.logg.Error(ctx, "catalog refresh failed", err)
			}
		}
	}
}

// Loaded reports whether a snapshot is available.
func (s *Service) Loaded() bool {
	return s.snapshot.Load() != nil
}

// Products returns the products matching the filter, in feed order.
func (s *Service) Products(f Filter) []Product {
	feed := s.snapshot.Load()
	if feed == nil {
		return nil
	}
	out := make([]Product, 0, len(feed.Products))
	for _, p := range feed.Products {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Get looks up a product by code in the current snapshot.
func (s *Service) Get(code string) (Product, bool) {
	feed := s.snapshot.Load()
	if feed == nil {
		return Product{}, false
	}
	for _, p := range feed.Products {
		if p.Code == code {
			return p, true
		}
	}
	return Product{}, false
}

// Categories returns the category list of the current snapshot.
func (s *Service) Categories() []string {
	feed := s.snapshot.Load()
	if feed == nil {
		return nil
	}
	return feed.Categories
}
