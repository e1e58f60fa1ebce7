// Package promcollector exports adaptivf operation metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	mc, _ := promcollector.New(reg, promcollector.WithNamespace("search"))
//	idx, _ := adaptivf.New(128, adaptivf.WithMetricsCollector(mc))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package promcollector

import (
	"time"

	"github.com/hupe1980/adaptivf"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Collector implements adaptivf.MetricsCollector on Prometheus metrics.
type Collector struct {
	opLatency  *prometheus.HistogramVec
	ops        *prometheus.CounterVec
	nprobe     prometheus.Histogram
	scanned    prometheus.Histogram
	partitions prometheus.Gauge
	splits     prometheus.Counter
	merges     prometheus.Counter
}

type options struct {
	namespace string
	buckets   []float64
}

// Option configures a Collector.
type Option func(*options)

// WithNamespace sets the metric namespace. Defaults to "adaptivf".
func WithNamespace(ns string) Option {
	return func(o *options) {
		o.namespace = ns
	}
}

// WithLatencyBuckets sets the buckets of the operation latency histogram.
func WithLatencyBuckets(buckets []float64) Option {
	return func(o *options) {
		o.buckets = buckets
	}
}

var _ adaptivf.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics with reg.
func New(reg prometheus.Registerer, optFns ...Option) (*Collector, error) {
	o := options{
		namespace: "adaptivf",
		buckets:   prometheus.DefBuckets,
	}
	for _, fn := range optFns {
		fn(&o)
	}

	c := &Collector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of index operations",
			Buckets:   o.buckets,
		}, []string{"op", "status"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "operations_total",
			Help:      "Total index operations",
		}, []string{"op", "status"}),
		nprobe: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "search_nprobe",
			Help:      "Partitions scanned per search",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 7),
		}),
		scanned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "search_scanned_vectors",
			Help:      "Candidate vectors compared per search",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		}),
		partitions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: o.namespace,
			Name:      "partitions",
			Help:      "Base partitions after the latest build or maintenance",
		}),
		splits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "splits_total",
			Help:      "Total partition splits",
		}),
		merges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "merges_total",
			Help:      "Total partition merges",
		}),
	}

	for _, col := range []prometheus.Collector{
		c.opLatency, c.ops, c.nprobe, c.scanned, c.partitions, c.splits, c.merges,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func status(err error) string {
	if err != nil {
		return statusError
	}
	return statusSuccess
}

func (c *Collector) observe(op, status string, d time.Duration) {
	c.opLatency.WithLabelValues(op, status).Observe(d.Seconds())
	c.ops.WithLabelValues(op, status).Inc()
}

// RecordBuild implements adaptivf.MetricsCollector.
func (c *Collector) RecordBuild(_, partitions int, d time.Duration, err error) {
	c.observe("build", status(err), d)
	if err == nil {
		c.partitions.Set(float64(partitions))
	}
}

// RecordInsert implements adaptivf.MetricsCollector.
func (c *Collector) RecordInsert(d time.Duration, err error) {
	c.observe("insert", status(err), d)
}

// RecordDelete implements adaptivf.MetricsCollector. Deletes of unknown ids
// are counted with status "miss".
func (c *Collector) RecordDelete(d time.Duration, found bool) {
	s := statusSuccess
	if !found {
		s = "miss"
	}
	c.observe("delete", s, d)
}

// RecordSearch implements adaptivf.MetricsCollector.
func (c *Collector) RecordSearch(_, nprobe, scanned int, d time.Duration) {
	c.observe("search", statusSuccess, d)
	c.nprobe.Observe(float64(nprobe))
	c.scanned.Observe(float64(scanned))
}

// RecordMaintain implements adaptivf.MetricsCollector.
func (c *Collector) RecordMaintain(r adaptivf.MaintenanceReport) {
	c.observe("maintain", statusSuccess, r.Duration)
	c.splits.Add(float64(r.Splits))
	c.merges.Add(float64(r.Merges))
	c.partitions.Set(float64(r.Partitions))
}
