package connector

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"gitlab.apk-group.net/siem/backend/qualys-client/config"
	cacheDomain "gitlab.apk-group.net/siem/backend/qualys-client/internal/cache/domain"
	cachePort "gitlab.apk-group.net/siem/backend/qualys-client/internal/cache/port"
	"gitlab.apk-group.net/siem/backend/qualys-client/internal/connector/port"
	"gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/domain"
	"gitlab.apk-group.net/siem/backend/qualys-client/pkg/logger"
)

var ErrInvalidCacheSize = errors.New("cache size must be positive")

// dependents lists, per mutated call, the other calls whose cached reads the
// mutation makes stale.
var dependents = map[string][]string{
	domain.CallAssetGroup: {domain.CallAssetGroupList},
}

// CachingConnector serves repeated read calls from memory and, when a repo is
// attached, from the response cache table.
type CachingConnector struct {
	next  port.Connector
	lru   *lru.Cache[string, cacheDomain.Entry]
	repo  cachePort.Repo
	ttl   time.Duration
	calls map[string]struct{}
	now   func() time.Time
}

type CacheOption func(*CachingConnector)

func WithCacheRepo(repo cachePort.Repo) CacheOption {
	return func(c *CachingConnector) {
		c.repo = repo
	}
}

func WithCacheClock(now func() time.Time) CacheOption {
	return func(c *CachingConnector) {
		c.now = now
	}
}

func NewCachingConnector(next port.Connector, cfg config.CacheConfig, opts ...CacheOption) (*CachingConnector, error) {
	if cfg.Size <= 0 {
		return nil, ErrInvalidCacheSize
	}
	mem, err := lru.New[string, cacheDomain.Entry](cfg.Size)
	if err != nil {
		return nil, err
	}

	calls := make(map[string]struct{}, len(cfg.Calls))
	for _, call := range cfg.Calls {
		calls[call] = struct{}{}
	}

	c := &CachingConnector{
		next:  next,
		lru:   mem,
		ttl:   time.Duration(cfg.TTLMinutes) * time.Minute,
		calls: calls,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CacheKey identifies one call with its parameters.
func CacheKey(call string, params port.Params) string {
	sum := sha256.Sum256([]byte(call + "?" + params.Encode()))
	return hex.EncodeToString(sum[:])
}

func (c *CachingConnector) Settings() port.Settings {
	return c.next.Settings()
}

// Stream is never cached.
func (c *CachingConnector) Stream(ctx context.Context, call string, params port.Params) (io.ReadCloser, error) {
	return c.next.Stream(ctx, call, params)
}

func (c *CachingConnector) Request(ctx context.Context, call string, params port.Params) ([]byte, error) {
	if action := params.Action(); action != "" && action != domain.ActionList {
		body, err := c.next.Request(ctx, call, params)
		c.invalidate(ctx, c.staleAfter(call))
		return body, err
	}

	if _, ok := c.calls[call]; !ok {
		return c.next.Request(ctx, call, params)
	}

	key := CacheKey(call, params)
	if !port.IsFreshRead(ctx) {
		if body, ok := c.lookup(ctx, key); ok {
			logger.DebugContextWithFields(ctx, "Qualys response served from cache", map[string]interface{}{
				"call": call,
				"key":  key,
			})
			return body, nil
		}
	}

	body, err := c.next.Request(ctx, call, params)
	if err != nil {
		return nil, err
	}
	if _, isErr := domain.IsErrorEnvelope(body); isErr {
		return body, nil
	}
	c.store(ctx, cacheDomain.Entry{
		Key:       key,
		Call:      call,
		Body:      body,
		ExpiresAt: c.now().Add(c.ttl),
	})
	return body, nil
}

// staleAfter returns the cached calls a mutation of call invalidates.
func (c *CachingConnector) staleAfter(call string) []string {
	var stale []string
	for _, candidate := range append([]string{call}, dependents[call]...) {
		if _, ok := c.calls[candidate]; ok {
			stale = append(stale, candidate)
		}
	}
	return stale
}

func (c *CachingConnector) lookup(ctx context.Context, key string) ([]byte, bool) {
	now := c.now()
	if entry, ok := c.lru.Get(key); ok {
		if !entry.Expired(now) {
			return entry.Body, true
		}
		c.lru.Remove(key)
	}

	if c.repo == nil {
		return nil, false
	}
	entry, err := c.repo.Get(ctx, key, now)
	if err != nil {
		if !errors.Is(err, cacheDomain.ErrEntryNotFound) {
			logger.WarnContext(ctx, "response cache lookup failed: %v", err)
		}
		return nil, false
	}
	c.lru.Add(key, *entry)
	return entry.Body, true
}

func (c *CachingConnector) store(ctx context.Context, entry cacheDomain.Entry) {
	c.lru.Add(entry.Key, entry)
	if c.repo == nil {
		return
	}
	if err := c.repo.Put(ctx, entry); err != nil {
		logger.WarnContext(ctx, "response cache write failed: %v", err)
	}
}

func (c *CachingConnector) invalidate(ctx context.Context, calls []string) {
	if len(calls) == 0 {
		return
	}
	stale := make(map[string]struct{}, len(calls))
	for _, call := range calls {
		stale[call] = struct{}{}
	}

	removed := 0
	for _, key := range c.lru.Keys() {
		if entry, ok := c.lru.Peek(key); ok {
			if _, hit := stale[entry.Call]; hit {
				c.lru.Remove(key)
				removed++
			}
		}
	}

	var stored int64
	if c.repo != nil {
		for _, call := range calls {
			n, err := c.repo.InvalidateCall(ctx, call)
			if err != nil {
				logger.WarnContext(ctx, "response cache invalidation of %s failed: %v", call, err)
				continue
			}
			stored += n
		}
	}

	logger.DebugContextWithFields(ctx, "Qualys response cache invalidated", map[string]interface{}{
		"calls":          calls,
		"memory_entries": removed,
		"stored_entries": stored,
	})
}

// PurgeExpired drops expired rows from the persistent tier.
func (c *CachingConnector) PurgeExpired(ctx context.Context) (int64, error) {
	if c.repo == nil {
		return 0, nil
	}
	return c.repo.PurgeExpired(ctx, c.now())
}
