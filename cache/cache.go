// Package cache provides an in-memory LRU cache for explanation results.
// Results are immutable once assembled, so identical snippets can be served
// without re-running inference. A Bloom filter fronts the map so that the
// common miss path stays cheap; false positives only cost a map lookup.
package cache

import (
	"container/list"
	"encoding/hex"
	"sync"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/cespare/xxhash/v2"
)

// Ensure Cache implements explainer.ResultCache.
var _ explainer.ResultCache = (*Cache)(nil)

// falsePositiveRate is the acceptable Bloom filter false positive rate.
const falsePositiveRate = 0.01

// Key derives the cache key for a snippet: the xxHash of the language and
// code text. Results are only shared between byte-identical submissions.
func Key(lang explainer.Language, code string) string {
	h := xxhash.New()
	_, _ = h.WriteString(string(lang))
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(code)
	return hex.EncodeToString(h.Sum(nil))
}

type entry struct {
	key    string
	result *explainer.ExplanationResult
}

// Cache is a bounded LRU over completed results. Safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
	seen     *bloom.BloomFilter
}

// New creates a Cache holding up to capacity results.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
		seen:     bloom.NewWithEstimates(uint(capacity)*4, falsePositiveRate),
	}
}

// Get returns the cached result for the key, if present, and marks it
// most recently used.
func (c *Cache) Get(key string) (*explainer.ExplanationResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Cheap negative check before touching the map.
	if !c.seen.TestString(key) {
		return nil, false
	}

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*entry).result, true
}

// Put stores a result, evicting the least recently used entry when full.
// The Bloom filter is append-only, so evicted keys may still cost a map
// lookup later; they simply miss.
func (c *Cache) Put(key string, result *explainer.ExplanationResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*entry).result = result
		c.ll.MoveToFront(el)
		return
	}

	c.items[key] = c.ll.PushFront(&entry{key: key, result: result})
	c.seen.AddString(key)

	if c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		c.ll.Remove(oldest)
		delete(c.items, oldest.Value.(*entry).key)
	}
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
