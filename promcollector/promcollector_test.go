package promcollector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hupe1980/adaptivf"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorRecords(t *testing.T) {
	c, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	c.RecordBuild(100, 7, time.Millisecond, nil)
	c.RecordInsert(time.Microsecond, nil)
	c.RecordInsert(time.Microsecond, errors.New("boom"))
	c.RecordDelete(time.Microsecond, true)
	c.RecordDelete(time.Microsecond, false)
	c.RecordSearch(10, 3, 120, time.Microsecond)
	c.RecordMaintain(adaptivf.MaintenanceReport{Splits: 2, Merges: 1, Partitions: 8})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.ops.WithLabelValues("build", statusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ops.WithLabelValues("insert", statusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ops.WithLabelValues("insert", statusError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ops.WithLabelValues("delete", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ops.WithLabelValues("search", statusSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.splits))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.merges))
	assert.Equal(t, 8.0, testutil.ToFloat64(c.partitions))
}

func TestCollectorFailedBuildKeepsGauge(t *testing.T) {
	c, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	c.RecordBuild(10, 4, time.Millisecond, nil)
	c.RecordBuild(0, 0, time.Millisecond, adaptivf.ErrEmptyInput)

	assert.Equal(t, 4.0, testutil.ToFloat64(c.partitions))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ops.WithLabelValues("build", statusError)))
}

func TestNewDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)

	_, err = New(reg, WithNamespace("other"))
	assert.NoError(t, err)
}

func TestCollectorWithIndex(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg, WithLatencyBuckets([]float64{0.001, 0.01, 0.1}))
	require.NoError(t, err)

	idx, err := adaptivf.New(2, adaptivf.WithCoarseK(1), adaptivf.WithMetricsCollector(c))
	require.NoError(t, err)

	vectors := [][]float32{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	require.NoError(t, idx.Build(context.Background(), vectors, nil))

	_, err = idx.Search([]float32{0, 0}, 2, 0.9)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.ops.WithLabelValues("build", statusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ops.WithLabelValues("search", statusSuccess)))
	assert.Equal(t, float64(idx.NumPartitions()), testutil.ToFloat64(c.partitions))

	n, err := testutil.GatherAndCount(reg, "adaptivf_search_nprobe")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
