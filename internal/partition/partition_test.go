package partition

import (
	"testing"

	"github.com/hupe1980/adaptivf/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	t.Run("NewComputesCentroid", func(t *testing.T) {
		p := New(0, [][]float32{{0, 0}, {2, 4}}, []uint64{1, 2}, 2)
		assert.Equal(t, 2, p.Len())
		assert.Equal(t, []float32{1, 2}, p.Centroid)
	})

	t.Run("Append", func(t *testing.T) {
		p := New(0, [][]float32{{0, 0}}, []uint64{1}, 2)
		off := p.Append([]float32{4, 4}, 7)
		assert.Equal(t, 1, off)
		assert.Equal(t, []uint64{1, 7}, p.IDs)
		assert.Len(t, p.Vectors, 2)
		// Append leaves the centroid alone.
		assert.Equal(t, []float32{0, 0}, p.Centroid)

		p.Recenter(2)
		assert.Equal(t, []float32{2, 2}, p.Centroid)
	})

	t.Run("ReplaceWithLast", func(t *testing.T) {
		p := New(0, [][]float32{{0}, {1}, {2}}, []uint64{10, 11, 12}, 1)

		moved, ok := p.ReplaceWithLast(0)
		require.True(t, ok)
		assert.Equal(t, uint64(12), moved)
		assert.Equal(t, []uint64{12, 11}, p.IDs)
		assert.Equal(t, [][]float32{{2}, {1}}, p.Vectors)

		_, ok = p.ReplaceWithLast(1)
		assert.False(t, ok, "removing the last element moves nothing")
		assert.Equal(t, []uint64{12}, p.IDs)
		assert.Len(t, p.Vectors, 1)
	})

	t.Run("RecenterKeepsStaleCentroidWhenEmpty", func(t *testing.T) {
		p := New(0, [][]float32{{3, 3}}, []uint64{1}, 2)
		p.ReplaceWithLast(0)
		p.Recenter(2)
		assert.Equal(t, 0, p.Len())
		assert.Equal(t, []float32{3, 3}, p.Centroid)
	})

	t.Run("Absorb", func(t *testing.T) {
		host := New(0, [][]float32{{0}}, []uint64{1}, 1)
		other := New(1, [][]float32{{4}, {8}}, []uint64{2, 3}, 1)
		otherCentroid := other.Centroid

		start := host.Absorb(other)
		assert.Equal(t, 1, start)
		assert.Equal(t, []uint64{1, 2, 3}, host.IDs)
		assert.Len(t, host.Vectors, 3)
		assert.Equal(t, 0, other.Len())
		assert.Empty(t, other.Vectors)
		assert.Equal(t, otherCentroid, other.Centroid)
	})

	t.Run("Reset", func(t *testing.T) {
		p := New(0, [][]float32{{0}}, []uint64{1}, 1)
		p.Hits = 5
		p.Reset([][]float32{{2}, {4}}, []uint64{8, 9}, 1)
		assert.Equal(t, []uint64{8, 9}, p.IDs)
		assert.Equal(t, []float32{3}, p.Centroid)
		assert.Equal(t, uint64(5), p.Hits)
	})
}

func TestStore(t *testing.T) {
	s := NewStore(2)
	assert.Equal(t, 2, s.Dim())

	c0 := s.AddCell([]float32{0, 0})
	c1 := s.AddCell([]float32{10, 10})
	assert.Equal(t, 2, s.NumCells())
	assert.Equal(t, [][]float32{{0, 0}, {10, 10}}, s.CellCentroids())

	h0 := s.Append(New(c0, [][]float32{{0, 1}}, []uint64{1}, 2))
	h1 := s.Append(New(c1, [][]float32{{10, 11}, {10, 9}}, []uint64{2, 3}, 2))
	h2 := s.Append(New(c1, nil, nil, 2))

	assert.Equal(t, model.PartitionID(0), h0)
	assert.Equal(t, model.PartitionID(1), h1)
	assert.Equal(t, model.PartitionID(2), h2)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []model.PartitionID{h0}, s.Cell(c0).Members)
	assert.Equal(t, []model.PartitionID{h1, h2}, s.Cell(c1).Members)

	assert.Equal(t, []int{1, 2, 0}, s.Sizes())
	assert.Equal(t, 3, s.TotalVectors())
	assert.Equal(t, []float32{10, 10}, s.Centroids()[1])
	assert.Same(t, s.Get(h1), s.Get(1))

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.NumCells())
}
