package adaptivf

import (
	"github.com/hupe1980/adaptivf/distance"
	"github.com/hupe1980/adaptivf/internal/queue"
)

// ExactTopK returns the ids of the k vectors nearest to query by brute force,
// ordered by ascending squared L2 distance with ties broken by position.
// It does not depend on any index state and is meant as ground truth for
// recall measurement.
//
// vectors and ids are parallel; extra entries of the longer slice are ignored.
// k <= 0 yields an empty result, k > len(vectors) returns every id.
func ExactTopK(query []float32, vectors [][]float32, ids []uint64, k int) []uint64 {
	n := min(len(vectors), len(ids))
	dists := make([]float32, n)
	distance.SquaredL2Batch(query, vectors[:n], dists)

	top := queue.SmallestK(dists, k)
	out := make([]uint64, len(top))
	for i, j := range top {
		out[i] = ids[j]
	}
	return out
}
