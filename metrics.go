package shelldisplay

import "time"

// latencyHistorySize is the number of recent display latencies retained.
// The average is recomputed from this fixed ring rather than a running sum,
// so memory stays bounded and outliers age out.
const latencyHistorySize = 32

// metrics tracks display operation counters and latency statistics.
type metrics struct {
	total  uint64
	hits   uint64
	misses uint64

	minLatency time.Duration
	maxLatency time.Duration

	history      [latencyHistorySize]time.Duration
	historyCount int
	historyNext  int
}

// recordHit counts a cache-served display operation.
func (m *metrics) recordHit(latency time.Duration) {
	m.hits++
	m.record(latency)
}

// recordMiss counts a recomputed display operation.
func (m *metrics) recordMiss(latency time.Duration) {
	m.misses++
	m.record(latency)
}

func (m *metrics) record(latency time.Duration) {
	m.total++

	if m.total == 1 || latency < m.minLatency {
		m.minLatency = latency
	}
	if latency > m.maxLatency {
		m.maxLatency = latency
	}

	m.history[m.historyNext] = latency
	m.historyNext = (m.historyNext + 1) % latencyHistorySize
	if m.historyCount < latencyHistorySize {
		m.historyCount++
	}
}

// avgLatency returns the mean of the retained latency history.
func (m *metrics) avgLatency() time.Duration {
	if m.historyCount == 0 {
		return 0
	}
	var sum time.Duration
	for i := 0; i < m.historyCount; i++ {
		sum += m.history[i]
	}
	return sum / time.Duration(m.historyCount)
}

// hitRate returns the fraction of display operations served from cache.
func (m *metrics) hitRate() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.hits) / float64(m.total)
}

// PerformanceSnapshot is a point-in-time view of controller performance,
// returned by Controller.Snapshot.
type PerformanceSnapshot struct {
	// Operations is the total number of display calls.
	Operations uint64
	// CacheHits and CacheMisses partition Operations.
	CacheHits   uint64
	CacheMisses uint64
	// HitRate is CacheHits / Operations.
	HitRate float64

	// Latency statistics over the rolling history window.
	AvgLatency time.Duration
	MinLatency time.Duration
	MaxLatency time.Duration

	// CacheEntries is the number of live cache entries.
	CacheEntries int
	// CacheMemoryEstimate approximates bytes held by cached content.
	CacheMemoryEstimate int
	// CacheInvalidations counts full-cache invalidations (theme changes, clears).
	CacheInvalidations uint64

	// Threshold flags derived from the controller configuration.
	WithinLatencyThreshold bool
	WithinMemoryThreshold  bool
}
