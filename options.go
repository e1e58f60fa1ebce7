package adaptivf

import (
	"log/slog"
)

type options struct {
	config           Config
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures an Index at construction.
type Option func(*options)

// WithConfig replaces the whole configuration. Options applied after it
// override individual fields; the dimension passed to New always wins.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithCoarseK sets the number of coarse cells created by Build.
func WithCoarseK(k int) Option {
	return func(o *options) {
		o.config.CoarseK = k
	}
}

// WithBaseK sets the maximum number of base partitions per coarse cell.
func WithBaseK(k int) Option {
	return func(o *options) {
		o.config.BaseK = k
	}
}

// WithSplitSize sets the nominal split threshold.
func WithSplitSize(n int) Option {
	return func(o *options) {
		o.config.SplitSize = n
	}
}

// WithMergeSize sets the size at or below which partitions are merged.
func WithMergeSize(n int) Option {
	return func(o *options) {
		o.config.MergeSize = n
	}
}

// WithHotSplitMultiplier sets the lower bound factor for heat-adjusted split
// thresholds.
func WithHotSplitMultiplier(m float64) Option {
	return func(o *options) {
		o.config.HotSplitMultiplier = m
	}
}

// WithHotWindow sets the default heat window used by Maintain.
func WithHotWindow(n int) Option {
	return func(o *options) {
		o.config.HotWindow = n
	}
}

// WithMaxProbe caps the number of partitions scanned per query.
func WithMaxProbe(n int) Option {
	return func(o *options) {
		o.config.MaxProbe = n
	}
}

// WithSeed seeds the clustering generator. Two indexes with the same seed and
// the same sequence of calls end up in the same state.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.config.Seed = seed
	}
}

// WithBuildParallelism bounds the number of coarse cells clustered
// concurrently during Build. The result does not depend on it.
func WithBuildParallelism(n int) Option {
	return func(o *options) {
		o.config.BuildParallelism = n
	}
}

// WithAutoMaintain runs Maintain after every n-th search with the given heat
// window. n <= 0 disables automatic maintenance.
//
// Example:
//
//	idx, _ := adaptivf.New(64, adaptivf.WithAutoMaintain(50, 2000))
func WithAutoMaintain(every, hotWindow int) Option {
	return func(o *options) {
		o.config.AutoMaintainEvery = max(every, 0)
		if hotWindow > 0 {
			o.config.HotWindow = hotWindow
		}
	}
}

// WithFiniteCheck enables or disables rejection of NaN and infinite components.
func WithFiniteCheck(enabled bool) Option {
	return func(o *options) {
		o.config.CheckFinite = enabled
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &adaptivf.BasicMetricsCollector{}
//	idx, _ := adaptivf.New(64, adaptivf.WithMetricsCollector(metrics))
//	// ... use idx ...
//	stats := metrics.GetStats()
//	fmt.Printf("Searches: %d, avg nprobe: %.1f\n", stats.SearchCount, stats.SearchAvgNProbe)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := adaptivf.NewJSONLogger(slog.LevelInfo)
//	idx, _ := adaptivf.New(64, adaptivf.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(dim int, optFns []Option) options {
	o := options{
		config:           DefaultConfig(dim),
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	o.config.Dimension = dim
	return o
}

// BuildOption overrides build parameters for a single Build call. The
// overrides persist in the index configuration.
type BuildOption func(*Config)

// BuildCoarseK overrides the number of coarse cells.
func BuildCoarseK(k int) BuildOption {
	return func(c *Config) {
		if k > 0 {
			c.CoarseK = k
		}
	}
}

// BuildBaseK overrides the maximum number of base partitions per cell.
func BuildBaseK(k int) BuildOption {
	return func(c *Config) {
		if k > 0 {
			c.BaseK = k
		}
	}
}
