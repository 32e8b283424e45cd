package shelldisplay

import "time"

const (
	// defaultCacheCapacity bounds the number of cached display states.
	defaultCacheCapacity = 64
	// defaultCacheTTL is the base time-to-live before frequency scaling.
	defaultCacheTTL = 30 * time.Second
	// sweepInterval limits how often expiry sweeps run.
	sweepInterval = time.Second
	// agePenaltyAfter halves an entry's eviction score once it is older than this.
	agePenaltyAfter = 5 * time.Second
)

// cacheEntry is one slot in the display cache. The content buffer is owned
// exclusively by the cache; get always copies out.
type cacheEntry struct {
	fingerprint string
	content     []byte
	accessCount int
	createdAt   time.Time
	valid       bool
}

// cache is a bounded, slot-based store of composed display content keyed by
// fingerprint. Eviction favors keeping frequently reused entries while
// aggressively reclaiming single-use, old ones.
type cache struct {
	entries   []cacheEntry
	count     int
	capacity  int
	ttl       time.Duration
	lastSweep time.Time

	hits          uint64
	misses        uint64
	evictions     uint64
	invalidations uint64
}

// newCache creates a cache with the given capacity and base TTL.
// Non-positive values fall back to defaults.
func newCache(capacity int, ttl time.Duration) *cache {
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &cache{
		entries:  make([]cacheEntry, 0, capacity),
		capacity: capacity,
		ttl:      ttl,
	}
}

// get returns a copy of the cached content for fingerprint, if present.
// A hit increments the entry's access count.
func (c *cache) get(fingerprint string) ([]byte, bool) {
	c.maybeSweep(time.Now())

	for i := range c.entries {
		e := &c.entries[i]
		if !e.valid || e.fingerprint != fingerprint {
			continue
		}
		e.accessCount++
		c.hits++

		out := make([]byte, len(e.content))
		copy(out, e.content)
		return out, true
	}

	c.misses++
	return nil, false
}

// put stores content under fingerprint, copying the buffer so the caller
// keeps no alias into the cache. At capacity exactly one entry is evicted
// first: the one with the minimum score.
func (c *cache) put(fingerprint string, content []byte) {
	now := time.Now()
	owned := make([]byte, len(content))
	copy(owned, content)

	// Replace an existing entry with the same fingerprint in place.
	for i := range c.entries {
		e := &c.entries[i]
		if e.valid && e.fingerprint == fingerprint {
			e.content = owned
			e.createdAt = now
			return
		}
	}

	entry := cacheEntry{
		fingerprint: fingerprint,
		content:     owned,
		createdAt:   now,
		valid:       true,
	}

	if c.count < c.capacity {
		c.entries = append(c.entries, entry)
		c.count++
		return
	}

	victim := c.evictionVictim(now)
	if victim < 0 {
		return
	}
	c.entries[victim] = entry
	c.evictions++
}

// evictionVictim returns the index of the entry with the minimum score,
// where score = accessCount * 1000, halved once the entry is older than 5s.
// Ties are broken by first-found.
func (c *cache) evictionVictim(now time.Time) int {
	victim := -1
	minScore := int64(-1)

	for i := range c.entries {
		e := &c.entries[i]
		if !e.valid {
			return i
		}
		score := int64(e.accessCount) * 1000
		if now.Sub(e.createdAt) > agePenaltyAfter {
			score /= 2
		}
		if victim < 0 || score < minScore {
			victim = i
			minScore = score
		}
	}

	return victim
}

// maybeSweep removes expired entries, running at most once per sweepInterval.
// An entry's effective TTL scales with how often it was reused.
func (c *cache) maybeSweep(now time.Time) {
	if now.Sub(c.lastSweep) < sweepInterval {
		return
	}
	c.sweep(now)
}

// sweep removes all entries older than their effective TTL, compacting by
// swap-with-last so no gaps remain.
func (c *cache) sweep(now time.Time) {
	c.lastSweep = now

	for i := 0; i < len(c.entries); {
		e := &c.entries[i]
		if e.valid && now.Sub(e.createdAt) <= c.effectiveTTL(e) {
			i++
			continue
		}
		c.removeAt(i)
	}
}

// effectiveTTL returns the base TTL scaled by access frequency: heavily
// reused entries live longer, single-use entries expire early.
func (c *cache) effectiveTTL(e *cacheEntry) time.Duration {
	switch {
	case e.accessCount > 5:
		return c.ttl * 4
	case e.accessCount > 2:
		return c.ttl * 2
	case e.accessCount == 1:
		return c.ttl / 3
	default:
		return c.ttl
	}
}

// removeAt drops the entry at index i via swap-with-last.
func (c *cache) removeAt(i int) {
	last := len(c.entries) - 1
	if i != last {
		c.entries[i] = c.entries[last]
	}
	c.entries[last] = cacheEntry{}
	c.entries = c.entries[:last]
	c.count = len(c.entries)
}

// clear invalidates every entry and bumps the invalidation counter.
// Used on explicit cache clears and theme-context changes, which affect
// every composed string.
func (c *cache) clear() {
	for i := range c.entries {
		c.entries[i] = cacheEntry{}
	}
	c.entries = c.entries[:0]
	c.count = 0
	c.invalidations++
}

// len returns the number of live entries.
func (c *cache) len() int {
	return c.count
}

// memoryEstimate returns the approximate bytes held by cached content.
func (c *cache) memoryEstimate() int {
	total := 0
	for i := range c.entries {
		total += len(c.entries[i].content) + len(c.entries[i].fingerprint)
	}
	return total
}
