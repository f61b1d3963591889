package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/wonny/valuecalc/pkg/logger"
)

// ResultCache memoizes calculation results in memory
// ⭐ SSOT: 계산 결과 캐싱은 이 구조체에서만
// 키는 항상 엔드포인트 + 전체 입력. 부분 입력으로 키를 만들지 않는다
type ResultCache struct {
	mu         sync.RWMutex
	entries    map[string]*entry
	ttl        time.Duration
	maxEntries int
	hits       uint64
	misses     uint64

	sf     singleflight.Group
	logger *logger.Logger
	now    func() time.Time
}

type entry struct {
	value    interface{}
	storedAt time.Time
}

// Stats 캐시 상태
type Stats struct {
	Entries    int    `json:"entries"`
	MaxEntries int    `json:"maxEntries"`
	Hits       uint64 `json:"hits"`
	Misses     uint64 `json:"misses"`
	TTL        string `json:"ttl"`
}

// NewResultCache creates a new result cache
func NewResultCache(ttl time.Duration, maxEntries int, log *logger.Logger) *ResultCache {
	return &ResultCache{
		entries:    make(map[string]*entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		logger:     log,
		now:        time.Now,
	}
}

// Key hashes the endpoint and the canonical JSON of the full input.
func Key(endpoint string, input interface{}) (string, error) {
	data, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("encode cache key: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(endpoint))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Get retrieves a result; expired entries count as misses.
func (c *ResultCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, exists := c.entries[key]
	fresh := exists && c.now().Sub(e.storedAt) <= c.ttl
	c.mu.RUnlock()

	c.mu.Lock()
	if fresh {
		c.hits++
	} else {
		c.misses++
	}
	c.mu.Unlock()

	if !fresh {
		return nil, false
	}
	return e.value, true
}

// Set stores a result, evicting expired entries and then the oldest one
// when the cache is full.
func (c *ResultCache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLocked(now)
	}

	c.entries[key] = &entry{value: value, storedAt: now}
}

func (c *ResultCache) evictLocked(now time.Time) {
	for k, e := range c.entries {
		if now.Sub(e.storedAt) > c.ttl {
			delete(c.entries, k)
		}
	}
	if len(c.entries) < c.maxEntries {
		return
	}

	var oldestKey string
	var oldest time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.storedAt.Before(oldest) {
			oldestKey, oldest = k, e.storedAt
		}
	}
	delete(c.entries, oldestKey)

	c.logger.WithField("evicted", shortKey(oldestKey)).Debug("Result cache full, evicted oldest entry")
}

func shortKey(k string) string {
	if len(k) > 12 {
		return k[:12]
	}
	return k
}

// GetOrCompute returns the cached result or computes it once.
// 동시에 들어온 같은 키 요청은 singleflight로 한 번만 계산. 오류는 캐싱하지 않음
func (c *ResultCache) GetOrCompute(key string, compute func() (interface{}, error)) (interface{}, bool, error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}

	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Double-check after joining the flight
		c.mu.RLock()
		e, exists := c.entries[key]
		fresh := exists && c.now().Sub(e.storedAt) <= c.ttl
		c.mu.RUnlock()
		if fresh {
			return e.value, nil
		}

		result, err := compute()
		if err != nil {
			return nil, err
		}
		c.Set(key, result)
		return result, nil
	})
	if err != nil {
		return nil, false, err
	}

	return v, false, nil
}

// Clear clears all entries
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
	c.logger.Info("Cleared result cache")
}

// Len returns the number of entries in cache
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Stats returns hit/miss counters
func (c *ResultCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Stats{
		Entries:    len(c.entries),
		MaxEntries: c.maxEntries,
		Hits:       c.hits,
		Misses:     c.misses,
		TTL:        c.ttl.String(),
	}
}
