package monitoring

import (
	"sort"
	"sync"
	"time"
)

// Metrics collects in-process counters for the prediction service.
type Metrics struct {
	mu sync.RWMutex

	totalRequests      int64
	totalErrors        int64
	cacheHits          int64
	cacheMisses        int64
	predictions        int64
	simulations        int64
	recommendations    int64
	validationFailures int64
	rateLimitBlocks    int64
	rateLimitFallbacks int64
	redisErrors        int64

	responseTimes []time.Duration
	statusCodes   map[int]int64

	startTime time.Time
}

// maxResponseTimeSamples bounds the response-time ring used for
// percentile calculations.
const maxResponseTimeSamples = 1000

// NewMetrics creates a metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		responseTimes: make([]time.Duration, 0, maxResponseTimeSamples),
		statusCodes:   make(map[int]int64),
		startTime:     time.Now(),
	}
}

// IncrementRequest counts an incoming request.
func (m *Metrics) IncrementRequest() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalRequests++
}

// IncrementError counts a failed request.
func (m *Metrics) IncrementError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalErrors++
}

// IncrementCacheHit counts a response served from cache.
func (m *Metrics) IncrementCacheHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits++
}

// IncrementCacheMiss counts a cache miss.
func (m *Metrics) IncrementCacheMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheMisses++
}

// IncrementPrediction counts a completed prediction.
func (m *Metrics) IncrementPrediction() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.predictions++
}

// IncrementSimulation counts a completed intervention simulation.
func (m *Metrics) IncrementSimulation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.simulations++
}

// IncrementRecommendation counts a recommendation lookup.
func (m *Metrics) IncrementRecommendation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recommendations++
}

// IncrementValidationFailure counts a rejected input.
func (m *Metrics) IncrementValidationFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validationFailures++
}

// IncrementRateLimitBlock counts a request rejected by rate limiting.
func (m *Metrics) IncrementRateLimitBlock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rateLimitBlocks++
}

// IncrementRateLimitFallback counts a rate limit check served by the
// in-memory fallback instead of Redis.
func (m *Metrics) IncrementRateLimitFallback() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rateLimitFallbacks++
}

// IncrementRateLimitRedisError counts a failed Redis rate limit check.
func (m *Metrics) IncrementRateLimitRedisError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.redisErrors++
}

// RecordResponseTime records a request duration for percentile stats.
func (m *Metrics) RecordResponseTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.responseTimes = append(m.responseTimes, duration)
	if len(m.responseTimes) > maxResponseTimeSamples {
		m.responseTimes = m.responseTimes[len(m.responseTimes)-maxResponseTimeSamples:]
	}
}

// RecordRequestByStatus tallies the response status code.
func (m *Metrics) RecordRequestByStatus(statusCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusCodes[statusCode]++
}

// GetPercentileResponseTime returns the given percentile of recorded
// response times.
func (m *Metrics) GetPercentileResponseTime(percentile float64) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.responseTimes) == 0 {
		return 0
	}

	sorted := make([]time.Duration, len(m.responseTimes))
	copy(sorted, m.responseTimes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := int(float64(len(sorted)-1) * percentile / 100)
	return sorted[idx]
}

// GetStats returns a snapshot of all counters.
func (m *Metrics) GetStats() map[string]interface{} {
	p50 := m.GetPercentileResponseTime(50)
	p95 := m.GetPercentileResponseTime(95)
	p99 := m.GetPercentileResponseTime(99)

	m.mu.RLock()
	defer m.mu.RUnlock()

	statusCodes := make(map[int]int64, len(m.statusCodes))
	for code, count := range m.statusCodes {
		statusCodes[code] = count
	}

	return map[string]interface{}{
		"total_requests":       m.totalRequests,
		"total_errors":         m.totalErrors,
		"cache_hits":           m.cacheHits,
		"cache_misses":         m.cacheMisses,
		"predictions":          m.predictions,
		"simulations":          m.simulations,
		"recommendations":      m.recommendations,
		"validation_failures":  m.validationFailures,
		"rate_limit_blocks":    m.rateLimitBlocks,
		"rate_limit_fallbacks": m.rateLimitFallbacks,
		"redis_errors":         m.redisErrors,
		"response_time_p50_ms": p50.Milliseconds(),
		"response_time_p95_ms": p95.Milliseconds(),
		"response_time_p99_ms": p99.Milliseconds(),
		"status_codes":         statusCodes,
		"uptime_seconds":       time.Since(m.startTime).Seconds(),
	}
}

// Reset clears all counters. Intended for tests.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalRequests = 0
	m.totalErrors = 0
	m.cacheHits = 0
	m.cacheMisses = 0
	m.predictions = 0
	m.simulations = 0
	m.recommendations = 0
	m.validationFailures = 0
	m.rateLimitBlocks = 0
	m.rateLimitFallbacks = 0
	m.redisErrors = 0
	m.responseTimes = m.responseTimes[:0]
	m.statusCodes = make(map[int]int64)
	m.startTime = time.Now()
}
