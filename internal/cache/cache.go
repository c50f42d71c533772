// Package cache memoizes lemma lookups in Redis in front of a query.Engine.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/index"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/lexicon"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/internal/query"
	"github.com/Adithya-Monish-Kumar-K/lexigraph/pkg/resilience"
)

// KeyPrefix namespaces every key the cache writes.
const KeyPrefix = "lexigraph:lookup:"

// Store is the key-value surface the cache needs. *redis.Client from
// pkg/redis implements it.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) (int64, error)
}

// Observer is told about every hit and miss. *metrics.Metrics implements it.
type Observer interface {
	CacheHit()
	CacheMiss()
}

type Options struct {
	TTL      time.Duration
	Breaker  *resilience.CircuitBreaker
	Observer Observer
}

// LookupCache is a query.Engine that serves LookupEntries from the store
// when it can and delegates everything else. Store failures are logged and
// fall through to the wrapped engine.
type LookupCache struct {
	query.Engine

	store    Store
	ttl      time.Duration
	breaker  *resilience.CircuitBreaker
	observer Observer
	group    singleflight.Group
	logger   *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

func New(next query.Engine, store Store, opts Options) *LookupCache {
	if opts.TTL <= 0 {
		opts.TTL = 10 * time.Minute
	}
	if opts.Breaker == nil {
		opts.Breaker = resilience.NewCircuitBreaker("lookup-cache", resilience.CircuitBreakerConfig{})
	}
	return &LookupCache{
		Engine:   next,
		store:    store,
		ttl:      opts.TTL,
		breaker:  opts.Breaker,
		observer: opts.Observer,
		logger:   slog.Default().With("component", "lookup-cache"),
	}
}

// Key derives the cache key for a lookup. Lemmas are folded the same way the
// index folds them, so "Cat" and "cat" share an entry.
func Key(lemma string, pos *lexicon.PartOfSpeech) string {
	raw := index.Fold(lemma) + "|"
	if pos != nil {
		raw += string(*pos)
	}
	sum := sha256.Sum256([]byte(raw))
	return KeyPrefix + hex.EncodeToString(sum[:])
}

func (c *LookupCache) LookupEntries(ctx context.Context, lemma string, pos *lexicon.PartOfSpeech) ([]lexicon.LexicalEntry, error) {
	key := Key(lemma, pos)
	if entries, ok := c.get(ctx, key); ok {
		c.recordHit()
		return entries, nil
	}
	c.recordMiss()

	// The shared load outlives any one caller's cancellation; each waiter
	// still honours its own context.
	shared := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(key, func() (any, error) {
		if entries, ok := c.get(shared, key); ok {
			return entries, nil
		}
		entries, err := c.Engine.LookupEntries(shared, lemma, pos)
		if err != nil {
			return nil, err
		}
		c.set(shared, key, entries)
		return entries, nil
	})
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, err
	}
	return v.([]lexicon.LexicalEntry), nil
}

func (c *LookupCache) get(ctx context.Context, key string) ([]lexicon.LexicalEntry, bool) {
	var data []byte
	var found bool
	err := c.breaker.Execute(func() error {
		var err error
		data, found, err = c.store.Get(ctx, key)
		return err
	})
	if err != nil {
		c.logger.Warn("cache get failed", "key", key, "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}
	var entries []lexicon.LexicalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		c.logger.Warn("discarding undecodable cache value", "key", key, "error", err)
		return nil, false
	}
	return entries, true
}

func (c *LookupCache) set(ctx context.Context, key string, entries []lexicon.LexicalEntry) {
	data, err := json.Marshal(entries)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	err = c.breaker.Execute(func() error {
		return c.store.Set(ctx, key, data, c.ttl)
	})
	if err != nil {
		c.logger.Warn("cache set failed", "key", key, "error", err)
	}
}

func (c *LookupCache) recordHit() {
	c.hits.Add(1)
	if c.observer != nil {
		c.observer.CacheHit()
	}
}

func (c *LookupCache) recordMiss() {
	c.misses.Add(1)
	if c.observer != nil {
		c.observer.CacheMiss()
	}
}

// Invalidate deletes every cached lookup. It is called when a new index has
// been published.
func (c *LookupCache) Invalidate(ctx context.Context) error {
	deleted, err := c.store.DeleteByPrefix(ctx, KeyPrefix)
	if err != nil {
		return fmt.Errorf("invalidating lookup cache: %w", err)
	}
	c.logger.Info("lookup cache invalidated", "keys_deleted", deleted)
	return nil
}

func (c *LookupCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
