// Package cache holds the current catalog snapshot and bounds how
// often the upstream listing is fetched.
//
// The Store keeps exactly one snapshot. Within the TTL every reader
// gets the cached catalog without touching the network; after it
// expires the next reader triggers a refresh. Readers are lock-free
// (the snapshot sits behind an atomic pointer and is replaced
// wholesale), and refreshes are serialized through a singleflight
// group so at most one fetch is in flight at a time.
package cache

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/snowdex/snowdex/pkg/catalog"
	errs "github.com/snowdex/snowdex/pkg/errors"
	"github.com/snowdex/snowdex/pkg/observability"
)

// refreshKey is the singleflight key; one key means one in-flight
// refresh across all callers.
const refreshKey = "catalog"

// RefreshFunc produces a fresh catalog snapshot. The Store invokes it
// when the cached one has expired or a refresh is forced.
type RefreshFunc func(ctx context.Context) (*catalog.Catalog, error)

// snapshot pairs a catalog with the time the Store accepted it.
type snapshot struct {
	catalog   *catalog.Catalog
	fetchedAt time.Time
}

// valid reports whether the snapshot is within ttl at the given time.
func (s *snapshot) valid(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.fetchedAt) < ttl
}

// Store is the TTL cache for catalog snapshots.
type Store struct {
	refresh RefreshFunc
	ttl     time.Duration
	logger  *log.Logger
	now     func() time.Time

	current atomic.Pointer[snapshot]
	group   singleflight.Group
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for stale-serve warnings.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock overrides the time source, for TTL tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a Store that refreshes through fn and considers a
// snapshot fresh for ttl.
func New(fn RefreshFunc, ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		refresh: fn,
		ttl:     ttl,
		logger:  log.New(io.Discard),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrRefresh returns the current catalog, fetching a new one only
// when the cached snapshot has expired. A failed refresh falls back to
// the stale snapshot with a warning; the error surfaces only when
// there is nothing cached at all, wrapped as REFRESH_FAILED.
func (s *Store) GetOrRefresh(ctx context.Context) (*catalog.Catalog, error) {
	if snap := s.current.Load(); snap != nil && snap.valid(s.now(), s.ttl) {
		observability.Cache().OnHit(ctx)
		return snap.catalog, nil
	}
	observability.Cache().OnMiss(ctx)

	fresh, err := s.refreshOnce(ctx)
	if err == nil {
		return fresh, nil
	}

	if stale := s.current.Load(); stale != nil {
		age := s.now().Sub(stale.fetchedAt)
		s.logger.Warn("refresh failed, serving stale catalog", "error", err, "age", age)
		observability.Cache().OnStaleServe(ctx, age)
		return stale.catalog, nil
	}
	return nil, errs.Wrap(errs.ErrCodeRefreshFailed, err, "no catalog available")
}

// Refresh forces a fetch regardless of TTL. Unlike GetOrRefresh it
// reports failure instead of falling back to a stale snapshot.
func (s *Store) Refresh(ctx context.Context) (*catalog.Catalog, error) {
	return s.refreshOnce(ctx)
}

// Peek returns the cached catalog without fetching, even when stale.
func (s *Store) Peek() (*catalog.Catalog, bool) {
	snap := s.current.Load()
	if snap == nil {
		return nil, false
	}
	return snap.catalog, true
}

// Valid reports whether a cached snapshot exists and is within TTL.
func (s *Store) Valid() bool {
	snap := s.current.Load()
	return snap != nil && snap.valid(s.now(), s.ttl)
}

// refreshOnce runs the refresh function through the singleflight
// group; concurrent callers share one fetch and its result. The swap
// happens inside the flight, so there is exactly one writer at a time
// and readers observe either the old snapshot or the new one.
func (s *Store) refreshOnce(ctx context.Context) (*catalog.Catalog, error) {
	v, err, _ := s.group.Do(refreshKey, func() (any, error) {
		start := time.Now()
		fresh, err := s.refresh(ctx)
		if err != nil {
			observability.Cache().OnRefresh(ctx, 0, time.Since(start), err)
			return nil, err
		}
		observability.Cache().OnRefresh(ctx, fresh.Len(), time.Since(start), nil)
		s.current.Store(&snapshot{catalog: fresh, fetchedAt: s.now()})
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*catalog.Catalog), nil
}
