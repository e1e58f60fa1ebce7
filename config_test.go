package adaptivf

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig(64)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 64, cfg.Dimension)
	assert.Equal(t, 16, cfg.CoarseK)
	assert.Equal(t, 4, cfg.BaseK)
	assert.Equal(t, 3000, cfg.SplitSize)
	assert.Equal(t, 300, cfg.MergeSize)
	assert.Equal(t, 1.5, cfg.HotSplitMultiplier)
	assert.Equal(t, 2000, cfg.HotWindow)
	assert.Equal(t, 64, cfg.MaxProbe)
	assert.True(t, cfg.CheckFinite)
	assert.Zero(t, cfg.AutoMaintainEvery)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Config)
		field string
	}{
		{"CoarseK", func(c *Config) { c.CoarseK = 0 }, "coarse_k"},
		{"BaseK", func(c *Config) { c.BaseK = -1 }, "base_k"},
		{"SplitSize", func(c *Config) { c.SplitSize = 0 }, "split_size"},
		{"HotWindow", func(c *Config) { c.HotWindow = 0 }, "hot_window"},
		{"MaxProbe", func(c *Config) { c.MaxProbe = 0 }, "max_probe"},
		{"BuildParallelism", func(c *Config) { c.BuildParallelism = 0 }, "build_parallelism"},
		{"MergeSize", func(c *Config) { c.MergeSize = -1 }, "merge_size"},
		{"AutoMaintain", func(c *Config) { c.AutoMaintainEvery = -5 }, "auto_maintain_every"},
		{"HotSplitMultiplier", func(c *Config) { c.HotSplitMultiplier = 0.5 }, "hot_split_multiplier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(8)
			tt.mod(&cfg)

			var target *ErrInvalidConfig
			require.ErrorAs(t, cfg.Validate(), &target)
			assert.Equal(t, tt.field, target.Field)
		})
	}

	t.Run("Dimension", func(t *testing.T) {
		var target *ErrInvalidDimension
		require.ErrorAs(t, DefaultConfig(-3).Validate(), &target)
		assert.Equal(t, -3, target.Dimension)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("Overrides", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader(`
dimension: 32
coarse_k: 8
base_k: 2
split_size: 500
merge_size: 20
hot_split_multiplier: 2
hot_window: 100
max_probe: 10
seed: 7
build_parallelism: 4
auto_maintain_every: 50
check_finite: false
`))
		require.NoError(t, err)

		assert.Equal(t, Config{
			Dimension:          32,
			CoarseK:            8,
			BaseK:              2,
			SplitSize:          500,
			MergeSize:          20,
			HotSplitMultiplier: 2,
			HotWindow:          100,
			MaxProbe:           10,
			Seed:               7,
			BuildParallelism:   4,
			AutoMaintainEvery:  50,
			CheckFinite:        false,
		}, cfg)
	})

	t.Run("Defaults", func(t *testing.T) {
		cfg, err := ParseConfig([]byte("dimension: 16\n"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(16), cfg)
	})

	t.Run("UnknownField", func(t *testing.T) {
		_, err := ParseConfig([]byte("dimension: 16\nnprobe: 3\n"))
		assert.ErrorContains(t, err, "decode config")
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := ParseConfig([]byte("dimension: 16\nmax_probe: 0\n"))
		var target *ErrInvalidConfig
		require.ErrorAs(t, err, &target)
	})

	t.Run("EmptyDocument", func(t *testing.T) {
		_, err := ParseConfig(nil)
		var target *ErrInvalidDimension
		require.ErrorAs(t, err, &target)
	})
}

func TestOptions(t *testing.T) {
	t.Run("ApplyInOrder", func(t *testing.T) {
		base := DefaultConfig(3)
		base.CoarseK = 99

		o := applyOptions(8, []Option{
			WithConfig(base),
			WithBaseK(7),
			WithSplitSize(10),
			WithMergeSize(2),
			WithHotSplitMultiplier(3),
			WithHotWindow(40),
			WithMaxProbe(5),
			WithSeed(11),
			WithBuildParallelism(2),
			WithFiniteCheck(false),
			nil,
		})

		assert.Equal(t, 8, o.config.Dimension, "dimension argument wins")
		assert.Equal(t, 99, o.config.CoarseK)
		assert.Equal(t, 7, o.config.BaseK)
		assert.Equal(t, 10, o.config.SplitSize)
		assert.Equal(t, 2, o.config.MergeSize)
		assert.Equal(t, 3.0, o.config.HotSplitMultiplier)
		assert.Equal(t, 40, o.config.HotWindow)
		assert.Equal(t, 5, o.config.MaxProbe)
		assert.Equal(t, uint64(11), o.config.Seed)
		assert.Equal(t, 2, o.config.BuildParallelism)
		assert.False(t, o.config.CheckFinite)
	})

	t.Run("AutoMaintain", func(t *testing.T) {
		o := applyOptions(2, []Option{WithAutoMaintain(-1, 0)})
		assert.Equal(t, 0, o.config.AutoMaintainEvery)
		assert.Equal(t, 2000, o.config.HotWindow)

		o = applyOptions(2, []Option{WithAutoMaintain(10, 300)})
		assert.Equal(t, 10, o.config.AutoMaintainEvery)
		assert.Equal(t, 300, o.config.HotWindow)
	})

	t.Run("NilCollaborators", func(t *testing.T) {
		o := applyOptions(2, []Option{WithLogger(nil), WithMetricsCollector(nil)})
		assert.NotNil(t, o.logger)
		assert.IsType(t, NoopMetricsCollector{}, o.metricsCollector)

		o = applyOptions(2, []Option{WithLogLevel(slog.LevelWarn)})
		assert.False(t, o.logger.Enabled(t.Context(), slog.LevelInfo))
	})

	t.Run("NewFromConfig", func(t *testing.T) {
		cfg := DefaultConfig(5)
		cfg.MaxProbe = 3

		idx, err := NewFromConfig(cfg, WithMergeSize(1))
		require.NoError(t, err)
		assert.Equal(t, 5, idx.Dim())
		assert.Equal(t, 3, idx.Config().MaxProbe)
		assert.Equal(t, 1, idx.Config().MergeSize)
	})
}
