package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/ferabensrl/mare-pedidos-backend/pkg/errors"
)

func TestServiceRefreshSwapsSnapshot(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{body: []byte(arrayFeed)}
	svc := newTestService(t, fetcher, nil)

	if svc.Loaded() {
		t.Fatal("snapshot should be empty before first refresh")
	}

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected refresh error: %v", err)
	}
	if !svc.Loaded() {
		t.Fatal("snapshot should be loaded after refresh")
	}

	if _, ok := svc.Get("A1"); !ok {
		t.Fatal("expected product A1 in snapshot")
	}
	if _, ok := svc.Get("ZZ"); ok {
		t.Fatal("unexpected product ZZ")
	}
	if got := len(svc.Products(Filter{})); got != 2 {
		t.Fatalf("expected 2 products, got %d", got)
	}
	if got := len(svc.Products(Filter{Category: "cintos"})); got != 1 {
		t.Fatalf("expected 1 cinto, got %d", got)
	}
}

func TestServiceRefreshFailureKeepsSnapshot(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{body: []byte(arrayFeed)}
	svc := newTestService(t, fetcher, nil)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected refresh error: %v", err)
	}

	fetcher.err = errors.New("feed down")
	err := svc.Refresh(context.Background())
	if err == nil {
		t.Fatal("expected refresh error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("unexpected error code: %v", err)
	}

	if !svc.Loaded() {
		t.Fatal("failed refresh must not clear existing snapshot")
	}
	if _, ok := svc.Get("A1"); !ok {
		t.Fatal("existing snapshot should survive a failed refresh")
	}
}

func TestServiceFallsBackToCache(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{err: errors.New("feed down")}
	cache := &stubCache{payload: []byte(envelopeFeed), found: true}
	svc := newTestService(t, fetcher, cache)

	if err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error even when cache restores")
	}
	if !svc.Loaded() {
		t.Fatal("expected snapshot restored from cache")
	}
	if _, ok := svc.Get("B2"); !ok {
		t.Fatal("expected cached product B2")
	}
}

func TestServiceStoresSnapshotInCache(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{body: []byte(arrayFeed)}
	cache := &stubCache{}
	svc := newTestService(t, fetcher, cache)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected refresh error: %v", err)
	}
	if cache.stored == nil {
		t.Fatal("expected refreshed document to be cached")
	}
}

func newTestService(t *testing.T, fetcher feedFetcher, cache snapshotCache) *Service {
	t.Helper()
	svc, err := NewService(fetcher, cache, nil, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

type stubFetcher struct {
	body []byte
	err  error
}

func (s *stubFetcher) Fetch(ctx context.Context) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.body, nil
}

type stubCache struct {
	payload []byte
	found   bool
	stored  []byte
}

func (s *stubCache) Store(ctx context.Context, payload []byte, fetchedAt time.Time) error {
	s.stored = payload
	return nil
}

func (s *stubCache) Load(ctx context.Context) ([]byte, time.Time, bool, error) {
	return s.payload, time.Time{}, s.found, nil
}
