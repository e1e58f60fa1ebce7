package partition

import (
	"github.com/hupe1980/adaptivf/model"
)

// Cell is a coarse routing cell.
//
// Its centroid is fixed at build time. Members only grow: a partition stays
// listed even after it becomes empty.
type Cell struct {
	Centroid []float32
	Members  []model.PartitionID
}

// Store owns the coarse cells and the append-only partition arena.
type Store struct {
	dim   int
	cells []*Cell
	parts []*Partition
}

// NewStore creates an empty store for vectors of the given dimension.
func NewStore(dim int) *Store {
	return &Store{dim: dim}
}

// Dim returns the vector dimension.
func (s *Store) Dim() int { return s.dim }

// Reset discards all cells and partitions.
func (s *Store) Reset() {
	s.cells = nil
	s.parts = nil
}

// AddCell appends a coarse cell and returns its index.
func (s *Store) AddCell(centroid []float32) int {
	s.cells = append(s.cells, &Cell{Centroid: centroid})
	return len(s.cells) - 1
}

// NumCells returns the number of coarse cells.
func (s *Store) NumCells() int { return len(s.cells) }

// Cell returns the coarse cell at index i.
func (s *Store) Cell(i int) *Cell { return s.cells[i] }

// CellCentroids returns the centroids of all coarse cells in index order.
func (s *Store) CellCentroids() [][]float32 {
	out := make([][]float32, len(s.cells))
	for i, c := range s.cells {
		out[i] = c.Centroid
	}
	return out
}

// Append adds p to the arena, registers it with its cell and returns the new
// handle.
func (s *Store) Append(p *Partition) model.PartitionID {
	id := model.PartitionID(len(s.parts))
	s.parts = append(s.parts, p)
	if p.Cell >= 0 && p.Cell < len(s.cells) {
		c := s.cells[p.Cell]
		c.Members = append(c.Members, id)
	}
	return id
}

// Get returns the partition with the given handle.
func (s *Store) Get(id model.PartitionID) *Partition {
	return s.parts[id]
}

// Len returns the number of partitions, empty ones included.
func (s *Store) Len() int { return len(s.parts) }

// Centroids returns the centroids of all partitions in handle order.
func (s *Store) Centroids() [][]float32 {
	out := make([][]float32, len(s.parts))
	for i, p := range s.parts {
		out[i] = p.Centroid
	}
	return out
}

// Sizes returns the size of every partition in handle order.
func (s *Store) Sizes() []int {
	out := make([]int, len(s.parts))
	for i, p := range s.parts {
		out[i] = p.Len()
	}
	return out
}

// TotalVectors returns the number of vectors over all partitions.
func (s *Store) TotalVectors() int {
	n := 0
	for _, p := range s.parts {
		n += p.Len()
	}
	return n
}
