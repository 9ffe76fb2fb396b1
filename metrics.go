package goGuard

import (
	"sync/atomic"
	"time"
)

// MetricID identifies one in-process counter or histogram.
type MetricID uint16

const (
	// MetricAttemptSuccess counts successful attempts recorded in any scope.
	MetricAttemptSuccess MetricID = iota
	// MetricAttemptFailure counts failed attempts recorded in any scope.
	MetricAttemptFailure
	// MetricBlockImposed counts failures that imposed or renewed a block.
	MetricBlockImposed
	// MetricBlockedRejected counts login checks rejected because of an active block.
	MetricBlockedRejected
	// MetricOTPIssued counts issued codes.
	MetricOTPIssued
	// MetricOTPIssueFailure counts issuance failures from the code generator.
	MetricOTPIssueFailure
	// MetricOTPVerified counts Valid verifications.
	MetricOTPVerified
	// MetricOTPNotFound counts verifications for keys without a code.
	MetricOTPNotFound
	// MetricOTPExpired counts verifications that found an expired code.
	MetricOTPExpired
	// MetricOTPIPMismatch counts verifications from an IP other than the requester's.
	MetricOTPIPMismatch
	// MetricOTPIncorrect counts wrong guesses.
	MetricOTPIncorrect
	// MetricOTPConsumed counts explicit consumes that removed a code.
	MetricOTPConsumed
	// MetricHistoryPurged counts history entries dropped by retention sweeps.
	MetricHistoryPurged
	// MetricOTPPurged counts expired codes dropped by sweeps.
	MetricOTPPurged
	// MetricCheckLatency is the latency histogram of CheckLogin.
	MetricCheckLatency
	// MetricVerifyLatency is the latency histogram of VerifyOTP.
	MetricVerifyLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics is a lock-free registry of counters and latency histograms. A nil
// or disabled Metrics ignores every update.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time copy of a [Metrics] registry.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics creates a registry. Latency histograms require both flags.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc adds one to the counter id.
func (m *Metrics) Inc(id MetricID) {
	m.Add(id, 1)
}

// Add adds n to the counter id.
func (m *Metrics) Add(id MetricID, n uint64) {
	if m == nil || !m.enabled || id >= metricIDCount || n == 0 {
		return
	}
	atomic.AddUint64(&m.counters[id].value, n)
}

// Observe records d in the histogram id. Only latency metrics accept
// observations.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || !isHistogram(id) {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies every counter and, when enabled, the latency histograms.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 2),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		if isHistogram(id) {
			continue
		}
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		for _, id := range []MetricID{MetricCheckLatency, MetricVerifyLatency} {
			buckets := make([]uint64, histBucketCount)
			for i := 0; i < histBucketCount; i++ {
				buckets[i] = atomic.LoadUint64(&m.histograms[id].buckets[i])
			}
			s.Histograms[id] = buckets
		}
	}

	return s
}

func isHistogram(id MetricID) bool {
	return id == MetricCheckLatency || id == MetricVerifyLatency
}

// Limiter and issuer calls are in-memory, so buckets are sub-millisecond.
func bucketIndex(d time.Duration) int {
	us := d.Microseconds()

	switch {
	case us <= 10:
		return 0
	case us <= 25:
		return 1
	case us <= 50:
		return 2
	case us <= 100:
		return 3
	case us <= 250:
		return 4
	case us <= 500:
		return 5
	case us <= 1000:
		return 6
	default:
		return 7
	}
}
