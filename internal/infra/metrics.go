package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Counters
	sessionsTotal    atomic.Uint64
	messagesReceived atomic.Uint64
	queriesTotal     atomic.Uint64
	broadcastsTotal  atomic.Uint64
	fetchErrors      atomic.Uint64

	// Fetch latency tracking
	fetchLatencySumNs atomic.Int64
	fetchLatencyCount atomic.Uint64

	// Gauges
	activeSessions atomic.Int32
}

// NewMetrics creates an empty metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// SessionConnected records a new session and bumps the active gauge.
func (m *Metrics) SessionConnected() {
	m.sessionsTotal.Add(1)
	m.activeSessions.Add(1)
}

// SessionDisconnected drops the active gauge.
func (m *Metrics) SessionDisconnected() {
	m.activeSessions.Add(-1)
}

// RecordMessage records one inbound chat message.
func (m *Metrics) RecordMessage() {
	m.messagesReceived.Add(1)
}

// RecordQuery records one exchange query.
func (m *Metrics) RecordQuery() {
	m.queriesTotal.Add(1)
}

// RecordBroadcast records one unknown-command broadcast.
func (m *Metrics) RecordBroadcast() {
	m.broadcastsTotal.Add(1)
}

// RecordFetch records one upstream fetch with its latency.
func (m *Metrics) RecordFetch(latency time.Duration, failed bool) {
	m.fetchLatencySumNs.Add(latency.Nanoseconds())
	m.fetchLatencyCount.Add(1)
	if failed {
		m.fetchErrors.Add(1)
	}
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	SessionsTotal    uint64    `json:"sessions_total"`
	ActiveSessions   int32     `json:"active_sessions"`
	MessagesReceived uint64    `json:"messages_received"`
	QueriesTotal     uint64    `json:"queries_total"`
	BroadcastsTotal  uint64    `json:"broadcasts_total"`
	FetchErrors      uint64    `json:"fetch_errors"`
	AvgFetchNs       int64     `json:"avg_fetch_ns"`
	Timestamp        time.Time `json:"timestamp"`
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	var avgFetch int64
	if count := m.fetchLatencyCount.Load(); count > 0 {
		avgFetch = m.fetchLatencySumNs.Load() / int64(count)
	}

	return MetricsSnapshot{
		SessionsTotal:    m.sessionsTotal.Load(),
		ActiveSessions:   m.activeSessions.Load(),
		MessagesReceived: m.messagesReceived.Load(),
		QueriesTotal:     m.queriesTotal.Load(),
		BroadcastsTotal:  m.broadcastsTotal.Load(),
		FetchErrors:      m.fetchErrors.Load(),
		AvgFetchNs:       avgFetch,
		Timestamp:        time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.sessionsTotal.Store(0)
	m.messagesReceived.Store(0)
	m.queriesTotal.Store(0)
	m.broadcastsTotal.Store(0)
	m.fetchErrors.Store(0)
	m.fetchLatencySumNs.Store(0)
	m.fetchLatencyCount.Store(0)
	m.activeSessions.Store(0)
}
