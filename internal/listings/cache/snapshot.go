// Package cache holds the active-listing snapshot that the browse pipeline
// runs over. The snapshot lives in process memory, backed by a JSON copy in
// Redis so that restarts and sibling instances do not all hit Postgres.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"estate_portal_backend/internal/listings/domain"
	platformcache "estate_portal_backend/platform/cache"
	"estate_portal_backend/platform/logger"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	snapshotKey = "listings:active:v1"
	defaultTTL  = 5 * time.Minute

	// maxFillAttempts bounds reloads when invalidations keep landing while a
	// fill is running.
	maxFillAttempts = 3
)

// Loader reads the active listings from the source of truth.
type Loader func(ctx context.Context) ([]domain.Listing, error)

// SnapshotStore caches the active-listing snapshot.
type SnapshotStore struct {
	client redis.Cmdable
	ttl    time.Duration
	log    *logger.Logger
	now    func() time.Time

	group singleflight.Group

	mu        sync.RWMutex
	current   *domain.Snapshot
	expiresAt time.Time
	version   uint64
	// generation advances on every Invalidate. A fill that started under an
	// older generation may hold pre-write data and is never cached.
	generation uint64
}

// NewSnapshotStore creates a store. client may be nil, in which case only
// the in-process copy is kept.
func NewSnapshotStore(client redis.Cmdable, ttl time.Duration, log *logger.Logger) *SnapshotStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &SnapshotStore{client: client, ttl: ttl, log: log, now: time.Now}
}

type cachedSnapshot struct {
	Listings []domain.Listing `json:"listings"`
}

// Get returns the current snapshot, filling it through load on a miss.
// Concurrent misses share one fill.
func (s *SnapshotStore) Get(ctx context.Context, load Loader) (domain.Snapshot, error) {
	if snap, ok := s.cached(); ok {
		return snap, nil
	}

	v, err, _ := s.group.Do(snapshotKey, func() (any, error) {
		if snap, ok := s.cached(); ok {
			return snap, nil
		}
		return s.reload(ctx, load)
	})
	if err != nil {
		return domain.Snapshot{}, err
	}
	return v.(domain.Snapshot), nil
}

// reload fills and installs the snapshot, starting over when an Invalidate
// lands mid-fill. After maxFillAttempts the last result is returned to the
// caller without being cached.
func (s *SnapshotStore) reload(ctx context.Context, load Loader) (domain.Snapshot, error) {
	for attempt := 1; ; attempt++ {
		gen := s.currentGeneration()
		listings, err := s.fill(ctx, load, gen)
		if err != nil {
			return domain.Snapshot{}, err
		}
		snap, installed := s.install(gen, listings)
		if installed || attempt == maxFillAttempts {
			return snap, nil
		}
	}
}

func (s *SnapshotStore) currentGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

func (s *SnapshotStore) cached() (domain.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil || !s.now().Before(s.expiresAt) {
		return domain.Snapshot{}, false
	}
	return *s.current, true
}

func (s *SnapshotStore) fill(ctx context.Context, load Loader, gen uint64) ([]domain.Listing, error) {
	if s.client != nil {
		var cached cachedSnapshot
		err := platformcache.GetJSON(ctx, s.client, snapshotKey, &cached)
		switch {
		case err == nil:
			return cached.Listings, nil
		case !errors.Is(err, platformcache.ErrMiss):
			s.log.CacheError("get listing snapshot", err)
		}
	}

	listings, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if s.client != nil && s.currentGeneration() == gen {
		if err := platformcache.SetJSON(ctx, s.client, snapshotKey, cachedSnapshot{Listings: listings}, s.ttl); err != nil {
			s.log.CacheError("set listing snapshot", err)
		}
	}
	return listings, nil
}

// install publishes listings as the current snapshot unless the store was
// invalidated after gen was read. Either way the snapshot gets a fresh
// version so memoized results never mix two loads.
func (s *SnapshotStore) install(gen uint64, listings []domain.Listing) (domain.Snapshot, bool) {
	if listings == nil {
		listings = []domain.Listing{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	snap := domain.Snapshot{Version: s.version, Listings: listings}
	if s.generation != gen {
		return snap, false
	}
	s.current = &snap
	s.expiresAt = s.now().Add(s.ttl)
	return snap, true
}

// Invalidate drops the in-process copy and the Redis copy. The next Get
// reloads from the source of truth, and a fill already in flight is neither
// installed nor written back to Redis.
func (s *SnapshotStore) Invalidate(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.generation++
	s.mu.Unlock()
	s.group.Forget(snapshotKey)

	if s.client == nil {
		return nil
	}
	if err := s.client.Del(ctx, snapshotKey).Err(); err != nil {
		s.log.CacheError("invalidate listing snapshot", err)
		return err
	}
	return nil
}
