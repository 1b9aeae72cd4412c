package app

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks application performance and usage counters.
type Metrics struct {
	// Key handling
	keyCount atomic.Uint64

	// Action dispatch timing
	dispatchCount   atomic.Uint64
	dispatchTotalNs atomic.Int64
	dispatchMinNs   atomic.Int64
	dispatchMaxNs   atomic.Int64
	lastDispatchNs  atomic.Int64

	// Prompt sessions and insertion outcomes
	promptCount atomic.Uint64
	insertCount atomic.Uint64
	cancelCount atomic.Uint64
	errorCount  atomic.Uint64

	// Start time for uptime calculation
	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),
	}
	// Initialize min to max int64 so the first dispatch is smaller
	m.dispatchMinNs.Store(1<<63 - 1)
	return m
}

// RecordKey records one key event routed through the event loop.
func (m *Metrics) RecordKey() {
	m.keyCount.Add(1)
}

// RecordDispatch records action dispatch timing.
func (m *Metrics) RecordDispatch(duration time.Duration) {
	ns := duration.Nanoseconds()

	m.dispatchCount.Add(1)
	m.dispatchTotalNs.Add(ns)
	m.lastDispatchNs.Store(ns)

	// Update min (atomic compare-and-swap loop)
	for {
		old := m.dispatchMinNs.Load()
		if ns >= old {
			break
		}
		if m.dispatchMinNs.CompareAndSwap(old, ns) {
			break
		}
	}

	// Update max (atomic compare-and-swap loop)
	for {
		old := m.dispatchMaxNs.Load()
		if ns <= old {
			break
		}
		if m.dispatchMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordPrompt records one prompt session opened.
func (m *Metrics) RecordPrompt() {
	m.promptCount.Add(1)
}

// RecordInsert records one completed insertion.
func (m *Metrics) RecordInsert() {
	m.insertCount.Add(1)
}

// RecordCancel records one cancelled selection.
func (m *Metrics) RecordCancel() {
	m.cancelCount.Add(1)
}

// RecordError records one failed action.
func (m *Metrics) RecordError() {
	m.errorCount.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	dispatchCount := m.dispatchCount.Load()

	var avgDispatchNs int64
	if dispatchCount > 0 {
		avgDispatchNs = m.dispatchTotalNs.Load() / int64(dispatchCount)
	}

	minDispatchNs := m.dispatchMinNs.Load()
	if minDispatchNs == 1<<63-1 {
		minDispatchNs = 0
	}

	return MetricsSnapshot{
		Uptime:            time.Since(m.startTime),
		KeyCount:          m.keyCount.Load(),
		DispatchCount:     dispatchCount,
		AvgDispatchTimeNs: avgDispatchNs,
		MinDispatchTimeNs: minDispatchNs,
		MaxDispatchTimeNs: m.dispatchMaxNs.Load(),
		LastDispatchNs:    m.lastDispatchNs.Load(),
		PromptCount:       m.promptCount.Load(),
		InsertCount:       m.insertCount.Load(),
		CancelCount:       m.cancelCount.Load(),
		ErrorCount:        m.errorCount.Load(),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.keyCount.Store(0)
	m.dispatchCount.Store(0)
	m.dispatchTotalNs.Store(0)
	m.dispatchMinNs.Store(1<<63 - 1)
	m.dispatchMaxNs.Store(0)
	m.lastDispatchNs.Store(0)
	m.promptCount.Store(0)
	m.insertCount.Store(0)
	m.cancelCount.Store(0)
	m.errorCount.Store(0)
	m.startTime = time.Now()
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime            time.Duration
	KeyCount          uint64
	DispatchCount     uint64
	AvgDispatchTimeNs int64
	MinDispatchTimeNs int64
	MaxDispatchTimeNs int64
	LastDispatchNs    int64
	PromptCount       uint64
	InsertCount       uint64
	CancelCount       uint64
	ErrorCount        uint64
}

// AvgDispatchMs returns the average dispatch time in milliseconds.
func (s MetricsSnapshot) AvgDispatchMs() float64 {
	return float64(s.AvgDispatchTimeNs) / 1e6
}

// CancelRate returns the percentage of selections that were cancelled.
func (s MetricsSnapshot) CancelRate() float64 {
	total := s.InsertCount + s.CancelCount
	if total == 0 {
		return 0
	}
	return float64(s.CancelCount) / float64(total) * 100
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// appMetrics is the application-wide metrics instance.
var (
	appMetrics     *Metrics
	appMetricsOnce sync.Once
)

// GetMetrics returns the application metrics.
func GetMetrics() *Metrics {
	appMetricsOnce.Do(func() {
		if appMetrics == nil {
			appMetrics = NewMetrics()
		}
	})
	return appMetrics
}

// SetMetrics sets the application-wide metrics.
func SetMetrics(m *Metrics) {
	appMetrics = m
}
