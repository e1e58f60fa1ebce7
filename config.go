package adaptivf

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable parameters of an index.
//
// A Config can be built in code, starting from DefaultConfig, or loaded from
// YAML with LoadConfig:
//
//	dimension: 64
//	coarse_k: 16
//	base_k: 4
//	split_size: 3000
//	merge_size: 300
//	auto_maintain_every: 50
type Config struct {
	// Dimension is the fixed vector length.
	Dimension int `yaml:"dimension"`

	// CoarseK is the number of coarse routing cells created by Build.
	CoarseK int `yaml:"coarse_k"`
	// BaseK is the maximum number of base partitions per coarse cell at build.
	BaseK int `yaml:"base_k"`

	// SplitSize is the nominal partition size at which maintenance splits.
	SplitSize int `yaml:"split_size"`
	// MergeSize is the size at or below which partitions are merged.
	MergeSize int `yaml:"merge_size"`
	// HotSplitMultiplier bounds how far heat can lower the split threshold:
	// the threshold never drops below SplitSize/HotSplitMultiplier.
	HotSplitMultiplier float64 `yaml:"hot_split_multiplier"`
	// HotWindow is the default heat window used by Maintain.
	HotWindow int `yaml:"hot_window"`

	// MaxProbe caps the number of partitions scanned per query.
	MaxProbe int `yaml:"max_probe"`

	// Seed seeds the generator used for clustering.
	Seed uint64 `yaml:"seed"`
	// BuildParallelism bounds the number of coarse cells clustered
	// concurrently during Build.
	BuildParallelism int `yaml:"build_parallelism"`

	// AutoMaintainEvery runs Maintain after every n-th search. 0 disables it.
	AutoMaintainEvery int `yaml:"auto_maintain_every"`

	// CheckFinite rejects vectors with NaN or infinite components.
	CheckFinite bool `yaml:"check_finite"`
}

// DefaultConfig returns the default configuration for the given dimension.
func DefaultConfig(dim int) Config {
	return Config{
		Dimension:          dim,
		CoarseK:            16,
		BaseK:              4,
		SplitSize:          3000,
		MergeSize:          300,
		HotSplitMultiplier: 1.5,
		HotWindow:          2000,
		MaxProbe:           64,
		BuildParallelism:   1,
		CheckFinite:        true,
	}
}

// Validate checks that every field is in range.
func (c Config) Validate() error {
	if c.Dimension <= 0 {
		return &ErrInvalidDimension{Dimension: c.Dimension}
	}

	positive := []struct {
		field string
		value int
	}{
		{"coarse_k", c.CoarseK},
		{"base_k", c.BaseK},
		{"split_size", c.SplitSize},
		{"hot_window", c.HotWindow},
		{"max_probe", c.MaxProbe},
		{"build_parallelism", c.BuildParallelism},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return &ErrInvalidConfig{Field: p.field, Reason: fmt.Sprintf("must be positive, got %d", p.value)}
		}
	}

	if c.MergeSize < 0 {
		return &ErrInvalidConfig{Field: "merge_size", Reason: fmt.Sprintf("must not be negative, got %d", c.MergeSize)}
	}
	if c.AutoMaintainEvery < 0 {
		return &ErrInvalidConfig{Field: "auto_maintain_every", Reason: fmt.Sprintf("must not be negative, got %d", c.AutoMaintainEvery)}
	}
	if c.HotSplitMultiplier < 1 {
		return &ErrInvalidConfig{Field: "hot_split_multiplier", Reason: fmt.Sprintf("must be >= 1, got %v", c.HotSplitMultiplier)}
	}

	return nil
}

// LoadConfig reads a YAML configuration. Fields absent from the document keep
// their DefaultConfig values.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig(0)

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseConfig is LoadConfig over an in-memory document.
func ParseConfig(data []byte) (Config, error) {
	return LoadConfig(bytes.NewReader(data))
}
