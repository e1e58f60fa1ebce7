package partition

import (
	"github.com/hupe1980/adaptivf/distance"
)

// Partition is a base partition: a leaf cluster of vectors.
//
// Vectors and IDs are parallel slices. Centroid is the mean of Vectors; when
// the partition becomes empty it keeps its last value.
type Partition struct {
	Vectors  [][]float32
	IDs      []uint64
	Centroid []float32

	// Hits counts the queries that selected this partition for scanning.
	Hits uint64
	// LastSplitAt is the query counter at this partition's latest split.
	LastSplitAt uint64
	// Cell is the coarse cell this partition is routed to.
	Cell int
}

// New creates a partition over the given members with its centroid set to
// their mean.
func New(cell int, vectors [][]float32, ids []uint64, dim int) *Partition {
	return &Partition{
		Vectors:  vectors,
		IDs:      ids,
		Centroid: distance.Mean(vectors, dim),
		Cell:     cell,
	}
}

// Len is the number of vectors in the partition.
func (p *Partition) Len() int {
	return len(p.IDs)
}

// Append adds a vector and returns its offset. The centroid is not updated.
func (p *Partition) Append(vec []float32, id uint64) int {
	p.Vectors = append(p.Vectors, vec)
	p.IDs = append(p.IDs, id)
	return len(p.IDs) - 1
}

// ReplaceWithLast removes the vector at the given offset, replacing it with
// the last vector in the partition. The partition has one less element
// afterwards. If another vector moved into offset, its id is returned with
// moved set to true.
func (p *Partition) ReplaceWithLast(offset int) (movedID uint64, moved bool) {
	last := len(p.IDs) - 1

	p.Vectors[offset] = p.Vectors[last]
	p.Vectors[last] = nil // for GC
	p.Vectors = p.Vectors[:last]
	p.IDs[offset] = p.IDs[last]
	p.IDs = p.IDs[:last]

	if offset < last {
		return p.IDs[offset], true
	}
	return 0, false
}

// Recenter recomputes the centroid as the mean of the current members.
// An empty partition keeps its previous centroid.
func (p *Partition) Recenter(dim int) {
	if p.Len() == 0 {
		return
	}
	p.Centroid = distance.Mean(p.Vectors, dim)
}

// Reset replaces the members of the partition in place and recenters it.
func (p *Partition) Reset(vectors [][]float32, ids []uint64, dim int) {
	p.Vectors = vectors
	p.IDs = ids
	p.Recenter(dim)
}

// Absorb moves every member of other to the end of p and empties other.
// It returns the offset at which other's first member now lives in p.
// The centroid of p is not updated; other keeps its centroid.
func (p *Partition) Absorb(other *Partition) int {
	start := len(p.IDs)
	p.Vectors = append(p.Vectors, other.Vectors...)
	p.IDs = append(p.IDs, other.IDs...)
	other.Clear()
	return start
}

// Clear removes all members while keeping the centroid and counters.
func (p *Partition) Clear() {
	p.Vectors = nil
	p.IDs = nil
}
