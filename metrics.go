package adaptivf

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; see the
// promcollector package for a Prometheus implementation.
type MetricsCollector interface {
	// RecordBuild is called after each build with the number of input vectors
	// and the resulting partition count.
	RecordBuild(vectors, partitions int, duration time.Duration, err error)

	// RecordInsert is called after each insert operation.
	RecordInsert(duration time.Duration, err error)

	// RecordDelete is called after each delete. found is false for unknown ids.
	RecordDelete(duration time.Duration, found bool)

	// RecordSearch is called after each successful search with the number of
	// probed partitions and scanned vectors.
	RecordSearch(k, nprobe, scanned int, duration time.Duration)

	// RecordMaintain is called after each maintenance pass.
	RecordMaintain(report MaintenanceReport)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordInsert(time.Duration, error)          {}
func (NoopMetricsCollector) RecordDelete(time.Duration, bool)           {}
func (NoopMetricsCollector) RecordSearch(int, int, int, time.Duration)  {}
func (NoopMetricsCollector) RecordMaintain(MaintenanceReport)           {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount        atomic.Int64
	BuildErrors       atomic.Int64
	InsertCount       atomic.Int64
	InsertErrors      atomic.Int64
	InsertTotalNanos  atomic.Int64
	DeleteCount       atomic.Int64
	DeleteMisses      atomic.Int64
	SearchCount       atomic.Int64
	SearchTotalNanos  atomic.Int64
	SearchNProbeTotal atomic.Int64
	SearchScanned     atomic.Int64
	MaintainCount     atomic.Int64
	Splits            atomic.Int64
	Merges            atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(vectors, partitions int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(duration time.Duration, err error) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.InsertErrors.Add(1)
	}
}

// RecordDelete implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDelete(duration time.Duration, found bool) {
	b.DeleteCount.Add(1)
	if !found {
		b.DeleteMisses.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(k, nprobe, scanned int, duration time.Duration) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	b.SearchNProbeTotal.Add(int64(nprobe))
	b.SearchScanned.Add(int64(scanned))
}

// RecordMaintain implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMaintain(report MaintenanceReport) {
	b.MaintainCount.Add(1)
	b.Splits.Add(int64(report.Splits))
	b.Merges.Add(int64(report.Merges))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	s := BasicMetricsStats{
		BuildCount:    b.BuildCount.Load(),
		BuildErrors:   b.BuildErrors.Load(),
		InsertCount:   b.InsertCount.Load(),
		InsertErrors:  b.InsertErrors.Load(),
		DeleteCount:   b.DeleteCount.Load(),
		DeleteMisses:  b.DeleteMisses.Load(),
		SearchCount:   b.SearchCount.Load(),
		MaintainCount: b.MaintainCount.Load(),
		Splits:        b.Splits.Load(),
		Merges:        b.Merges.Load(),
	}
	if s.InsertCount > 0 {
		s.InsertAvgNanos = b.InsertTotalNanos.Load() / s.InsertCount
	}
	if s.SearchCount > 0 {
		s.SearchAvgNanos = b.SearchTotalNanos.Load() / s.SearchCount
		s.SearchAvgNProbe = float64(b.SearchNProbeTotal.Load()) / float64(s.SearchCount)
		s.SearchAvgScanned = float64(b.SearchScanned.Load()) / float64(s.SearchCount)
	}
	return s
}

// BasicMetricsStats is a point-in-time snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	BuildCount       int64
	BuildErrors      int64
	InsertCount      int64
	InsertErrors     int64
	InsertAvgNanos   int64
	DeleteCount      int64
	DeleteMisses     int64
	SearchCount      int64
	SearchAvgNanos   int64
	SearchAvgNProbe  float64
	SearchAvgScanned float64
	MaintainCount    int64
	Splits           int64
	Merges           int64
}
