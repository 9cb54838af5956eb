package service

import "sync/atomic"

// Metrics counts moon queries since process start.
type Metrics struct {
	Snapshots   int64 `json:"snapshots_computed"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
}

var globalMetrics = &Metrics{}

// GetMetrics reads the counters atomically.
func GetMetrics() Metrics {
	return Metrics{
		Snapshots:   atomic.LoadInt64(&globalMetrics.Snapshots),
		CacheHits:   atomic.LoadInt64(&globalMetrics.CacheHits),
		CacheMisses: atomic.LoadInt64(&globalMetrics.CacheMisses),
	}
}

// ResetMetrics zeroes every counter.
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.Snapshots, 0)
	atomic.StoreInt64(&globalMetrics.CacheHits, 0)
	atomic.StoreInt64(&globalMetrics.CacheMisses, 0)
}

// HitRate is the share of cache lookups served from Redis, in percent.
func (m Metrics) HitRate() float64 {
	total := m.CacheHits + m.CacheMisses
	if total == 0 {
		return 0
	}
	return float64(m.CacheHits) / float64(total) * 100
}

func recordSnapshot()  { atomic.AddInt64(&globalMetrics.Snapshots, 1) }
func recordCacheHit()  { atomic.AddInt64(&globalMetrics.CacheHits, 1) }
func recordCacheMiss() { atomic.AddInt64(&globalMetrics.CacheMisses, 1) }
