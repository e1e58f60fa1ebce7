package adaptivf

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with index-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.Level(1000), // unreachable
		})),
	}
}

// WithID adds an ID field to the logger.
func (l *Logger) WithID(id uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("id", id),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// LogBuild logs a build.
func (l *Logger) LogBuild(vectors, cells, partitions int, d time.Duration, err error) {
	if err != nil {
		l.Error("build failed",
			"vectors", vectors,
			"error", err,
		)
		return
	}
	l.Info("build completed",
		"vectors", vectors,
		"cells", cells,
		"partitions", partitions,
		"duration", d,
	)
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(id uint64, partition uint32, created bool, err error) {
	if err != nil {
		l.Error("insert failed",
			"id", id,
			"error", err,
		)
		return
	}
	l.Debug("insert completed",
		"id", id,
		"partition", partition,
		"created_partition", created,
	)
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(id uint64, found bool) {
	l.Debug("delete completed",
		"id", id,
		"found", found,
	)
}

// LogSearch logs a search operation.
func (l *Logger) LogSearch(k, results, nprobe, scanned int, err error) {
	if err != nil {
		l.Error("search failed",
			"k", k,
			"error", err,
		)
		return
	}
	l.Debug("search completed",
		"k", k,
		"results", results,
		"nprobe", nprobe,
		"scanned", scanned,
	)
}

// LogSplit logs a partition split.
func (l *Logger) LogSplit(partition, sibling uint32, left, right int) {
	l.Debug("partition split",
		"partition", partition,
		"sibling", sibling,
		"left", left,
		"right", right,
	)
}

// LogMaintain logs the outcome of a maintenance pass.
func (l *Logger) LogMaintain(r MaintenanceReport) {
	l.Info("maintenance completed",
		"splits", r.Splits,
		"merges", r.Merges,
		"partitions", r.Partitions,
		"duration", r.Duration,
	)
}
