// Package metrics collects request and database-pool statistics without
// any package-level mutable state: a Metrics value is constructed in
// main and injected into the HTTP middleware and the report loop.
package metrics

import (
	"context"
	"database/sql"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"
)

// Recorder is the interface the HTTP layer records requests through.
type Recorder interface {
	ObserveRequest(latency time.Duration)
}

// Metrics accumulates counters for one reporting period.
type Metrics struct {
	requests     atomic.Int64
	latencyMicro atomic.Int64
	periodStart  atomic.Int64 // unix micros
}

// New creates a Metrics value with a fresh reporting period.
func New() *Metrics {
	m := &Metrics{}
	m.periodStart.Store(time.Now().UnixMicro())
	return m
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(latency time.Duration) {
	m.requests.Add(1)
	m.latencyMicro.Add(latency.Microseconds())
}

// Report logs a snapshot of the current period and resets the counters.
// Database pool statistics come from the shared pool's own accounting.
func (m *Metrics) Report(db *sql.DB) {
	now := time.Now()
	elapsed := time.Duration(now.UnixMicro()-m.periodStart.Swap(now.UnixMicro())) * time.Microsecond
	requests := m.requests.Swap(0)
	totalLatency := m.latencyMicro.Swap(0)

	var avgLatency time.Duration
	if requests > 0 {
		avgLatency = time.Duration(totalLatency/requests) * time.Microsecond
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	stats := db.Stats()
	slog.Info("metrics report",
		"period", elapsed.Round(time.Second),
		"requests", requests,
		"requests_per_sec", float64(requests)/elapsed.Seconds(),
		"avg_latency", avgLatency.Round(time.Microsecond),
		"heap_mb", mem.HeapAlloc/1024/1024,
		"goroutines", runtime.NumGoroutine(),
		"db_open_conns", stats.OpenConnections,
		"db_in_use", stats.InUse,
		"db_wait_count", stats.WaitCount,
	)
}

// Run reports periodically until ctx is cancelled.
func (m *Metrics) Run(ctx context.Context, db *sql.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Report(db)
		}
	}
}
