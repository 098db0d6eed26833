package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const itemsKey = "items"

// backgroundRefreshTimeout bounds a fire-and-forget refresh so a hung
// upstream cannot hold the in-flight flag forever.
const backgroundRefreshTimeout = 2 * time.Minute

// Loader fetches the full collection from the upstream API.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Status describes the health of one cached collection.
type Status struct {
	LastRefreshed        time.Time `json:"last_refreshed"`
	ItemCount            int       `json:"item_count"`
	ActiveCount          int       `json:"active_count"`
	IsRefreshing         bool      `json:"is_refreshing"`
	LastAttempt          time.Time `json:"last_attempt"`
	LastAttemptSucceeded bool      `json:"last_attempt_succeeded"`
}

// Collection is a read-through, time-expiring cache for one small reference
// collection (priorities, document types, clients, ...). The cached value is
// replaced wholesale on refresh so readers never observe a partial update.
//
// Foreground misses are deliberately not serialized against each other: two
// concurrent first-callers may both fetch, both write the same derived
// value, and the last write wins. Background refreshes, in contrast, are
// limited to one in flight per collection.
type Collection[T any] struct {
	name   string
	ttl    time.Duration
	load   Loader[T]
	active func(T) bool // classifier for ActiveCount, may be nil
	store  *gocache.Cache
	logger *zap.Logger

	refreshing atomic.Bool

	statusMu      sync.Mutex
	lastRefreshed time.Time
	lastAttempt   time.Time
	lastAttemptOK bool
}

// NewCollection creates a cached collection with the given TTL and loader.
// The active classifier feeds Status().ActiveCount and may be nil.
func NewCollection[T any](name string, ttl time.Duration, load Loader[T], active func(T) bool, logger *zap.Logger) *Collection[T] {
	return &Collection[T]{
		name:   name,
		ttl:    ttl,
		load:   load,
		active: active,
		store:  gocache.New(ttl, 10*time.Minute),
		logger: logger.With(zap.String("cache", name)),
	}
}

// GetAll returns the cached collection, loading it from upstream on a miss.
// A failed load propagates the error; nothing is cached.
func (c *Collection[T]) GetAll(ctx context.Context) ([]T, error) {
	if items, ok := c.cached(); ok {
		c.logger.Debug("Cache hit", zap.Int("count", len(items)))
		return items, nil
	}
	return c.loadAndStore(ctx)
}

// Refresh forces a reload from upstream, replacing the cached entry.
func (c *Collection[T]) Refresh(ctx context.Context) ([]T, error) {
	c.logger.Info("Forcing cache refresh")
	return c.loadAndStore(ctx)
}

// RefreshInBackground starts a fire-and-forget reload. It is a no-op when a
// background refresh is already in flight; the second request is dropped
// with a warning, not queued. A failed refresh leaves the previous value in
// place and only flips the status flags.
func (c *Collection[T]) RefreshInBackground() {
	if !c.refreshing.CompareAndSwap(false, true) {
		c.logger.Warn("Cache refresh already in progress, skipping")
		return
	}

	go func() {
		defer c.refreshing.Store(false)

		ctx, cancel := context.WithTimeout(context.Background(), backgroundRefreshTimeout)
		defer cancel()

		c.logger.Info("Starting background cache refresh")
		if _, err := c.loadAndStore(ctx); err != nil {
			c.logger.Error("Background cache refresh failed", zap.Error(err))
			return
		}
		c.logger.Info("Background cache refresh completed")
	}()
}

// Status reports the collection's refresh bookkeeping.
func (c *Collection[T]) Status() Status {
	items, _ := c.cached()

	activeCount := 0
	if c.active != nil {
		for _, item := range items {
			if c.active(item) {
				activeCount++
			}
		}
	}

	c.statusMu.Lock()
	defer c.statusMu.Unlock()
	return Status{
		LastRefreshed:        c.lastRefreshed,
		ItemCount:            len(items),
		ActiveCount:          activeCount,
		IsRefreshing:         c.refreshing.Load(),
		LastAttempt:          c.lastAttempt,
		LastAttemptSucceeded: c.lastAttemptOK,
	}
}

// Find returns the first cached item matching pred, populating the cache if
// needed. Derived lookups run in memory over the cached collection; they
// never issue extra upstream calls.
func (c *Collection[T]) Find(ctx context.Context, pred func(T) bool) (T, bool, error) {
	var zero T
	items, err := c.GetAll(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, item := range items {
		if pred(item) {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// Where returns all cached items matching pred, populating the cache if needed.
func (c *Collection[T]) Where(ctx context.Context, pred func(T) bool) ([]T, error) {
	items, err := c.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]T, 0, len(items))
	for _, item := range items {
		if pred(item) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (c *Collection[T]) cached() ([]T, bool) {
	v, ok := c.store.Get(itemsKey)
	if !ok {
		return nil, false
	}
	items, ok := v.([]T)
	return items, ok
}

func (c *Collection[T]) loadAndStore(ctx context.Context) ([]T, error) {
	c.markAttempt()

	items, err := c.load(ctx)
	if err != nil {
		c.markResult(false)
		return nil, err
	}

	// Whole-value swap; go-cache serializes the write internally.
	c.store.Set(itemsKey, items, c.ttl)
	c.markResult(true)

	c.logger.Info("Cached collection refreshed", zap.Int("count", len(items)))
	return items, nil
}

func (c *Collection[T]) markAttempt() {
	c.statusMu.Lock()
	c.lastAttempt = time.Now()
	c.statusMu.Unlock()
}

func (c *Collection[T]) markResult(ok bool) {
	c.statusMu.Lock()
	c.lastAttemptOK = ok
	if ok {
		c.lastRefreshed = time.Now()
	}
	c.statusMu.Unlock()
}
