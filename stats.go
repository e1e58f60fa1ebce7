package adaptivf

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Stats is a snapshot of the index layout.
//
// Size statistics are computed over non-empty partitions only: partitions
// emptied by deletes or merges keep their handle but hold nothing.
type Stats struct {
	Vectors         int
	Partitions      int
	EmptyPartitions int
	Cells           int
	Queries         uint64

	MinPartitionSize  int
	MaxPartitionSize  int
	MeanPartitionSize float64
	// SizeCV is the coefficient of variation (stddev / mean) of partition sizes.
	SizeCV float64
	// SizeGini is the Gini coefficient of partition sizes: 0 is perfectly
	// balanced, values towards 1 mean a few partitions hold most vectors.
	SizeGini float64
}

// Stats returns layout statistics.
func (x *Index) Stats() Stats {
	s := Stats{
		Vectors:    x.locs.Len(),
		Partitions: x.store.Len(),
		Cells:      x.store.NumCells(),
		Queries:    x.queries,
	}

	var sizes []float64
	for _, n := range x.store.Sizes() {
		if n == 0 {
			s.EmptyPartitions++
			continue
		}
		sizes = append(sizes, float64(n))
	}
	if len(sizes) == 0 {
		return s
	}

	slices.Sort(sizes)
	s.MinPartitionSize = int(sizes[0])
	s.MaxPartitionSize = int(sizes[len(sizes)-1])

	mean, std := stat.PopMeanStdDev(sizes, nil)
	s.MeanPartitionSize = mean
	if mean > 0 {
		s.SizeCV = std / mean
	}
	s.SizeGini = gini(sizes)

	return s
}

// gini expects sorted, non-negative values.
func gini(sorted []float64) float64 {
	n := float64(len(sorted))
	var sum, weighted float64
	for i, v := range sorted {
		sum += v
		weighted += float64(i+1) * v
	}
	if sum == 0 {
		return 0
	}
	return (2*weighted)/(n*sum) - (n+1)/n
}
