package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquaredL2(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float32
	}{
		{"Simple", []float32{1, 2, 3}, []float32{4, 5, 6}, 27},
		{"Zero", []float32{0, 0, 0}, []float32{0, 0, 0}, 0},
		{"Identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 0},
		{"Mixed", []float32{1, -1}, []float32{-1, 1}, 8},
		{"Empty", []float32{}, []float32{}, 0},
		{"Unrolled", []float32{1, 1, 1, 1, 1, 1, 1}, []float32{0, 0, 0, 0, 0, 0, 0}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SquaredL2(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-5)
		})
	}
}

func TestSquaredL2Batch(t *testing.T) {
	q := []float32{0, 0}
	targets := [][]float32{{1, 0}, {0, 2}, {3, 4}}
	out := make([]float32, len(targets))

	SquaredL2Batch(q, targets, out)

	assert.Equal(t, []float32{1, 4, 25}, out)
}

func TestMean(t *testing.T) {
	t.Run("Rows", func(t *testing.T) {
		got := Mean([][]float32{{0, 2}, {2, 4}, {4, 0}}, 2)
		require.Len(t, got, 2)
		assert.InDelta(t, 2.0, got[0], 1e-6)
		assert.InDelta(t, 2.0, got[1], 1e-6)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, []float32{0, 0, 0}, Mean(nil, 3))
	})

	t.Run("DoesNotAliasInput", func(t *testing.T) {
		row := []float32{1, 1}
		got := Mean([][]float32{row}, 2)
		got[0] = 9
		assert.Equal(t, float32(1), row[0])
	})
}

func TestNonFinite(t *testing.T) {
	assert.Equal(t, -1, NonFinite([]float32{1, 2, 3}))
	assert.Equal(t, 1, NonFinite([]float32{1, float32(math.NaN()), 3}))
	assert.Equal(t, 2, NonFinite([]float32{1, 2, float32(math.Inf(-1))}))
}
