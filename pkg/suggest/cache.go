package suggest

import (
	"sync"
)

// resultCache memoizes scored suggestion lists per (letters, target) pair.
// Ladder authoring revisits the same letter sets constantly, so the hit
// rate is high. Writers are serialized by the lock; eviction is LRU by a
// monotonic access counter.
type resultCache struct {
	entries     map[cacheKey][]Suggestion
	accessTime  map[cacheKey]int64
	accessCount int64
	maxEntries  int
	mu          sync.RWMutex
}

type cacheKey struct {
	letters string
	target  int
}

func newResultCache(maxEntries int) *resultCache {
	return &resultCache{
		entries:    make(map[cacheKey][]Suggestion, maxEntries),
		accessTime: make(map[cacheKey]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

func (rc *resultCache) get(letters string, target int) ([]Suggestion, bool) {
	key := cacheKey{letters: letters, target: target}
	rc.mu.RLock()
	cached, ok := rc.entries[key]
	rc.mu.RUnlock()
	if !ok {
		return nil, false
	}

	rc.mu.Lock()
	rc.accessCount++
	rc.accessTime[key] = rc.accessCount
	rc.mu.Unlock()

	// Callers sort and truncate their copy.
	out := make([]Suggestion, len(cached))
	copy(out, cached)
	return out, true
}

func (rc *resultCache) put(letters string, target int, suggestions []Suggestion) {
	key := cacheKey{letters: letters, target: target}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if len(rc.entries) >= rc.maxEntries {
		rc.evictLRU()
	}
	stored := make([]Suggestion, len(suggestions))
	copy(stored, suggestions)
	rc.entries[key] = stored
	rc.accessCount++
	rc.accessTime[key] = rc.accessCount
}

func (rc *resultCache) evictLRU() {
	var oldestKey cacheKey
	var oldestTime int64 = 9223372036854775807

	for key, accessTime := range rc.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldestKey = key
		}
	}
	delete(rc.entries, oldestKey)
	delete(rc.accessTime, oldestKey)
}

func (rc *resultCache) stats() map[string]int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return map[string]int{
		"cachedLetterSets": len(rc.entries),
		"cacheAccesses":    int(rc.accessCount),
	}
}
