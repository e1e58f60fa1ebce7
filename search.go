package adaptivf

import (
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/adaptivf/distance"
	"github.com/hupe1980/adaptivf/internal/probe"
	"github.com/hupe1980/adaptivf/internal/queue"
)

// Meta describes how a search was executed.
type Meta struct {
	// NProbe is the number of partitions scanned. It is 0 when the scanned
	// partitions held no vectors.
	NProbe int
	// Scanned is the number of candidate vectors compared with the query.
	Scanned int
	// RecallAtK is set when reference ids were supplied.
	RecallAtK *float64
}

// Result is the outcome of a search. IDs and Distances are parallel and
// ordered by ascending squared distance.
type Result struct {
	IDs       []uint64
	Distances []float32
	Meta      Meta
}

// Search returns up to k approximate nearest neighbours of query.
//
// The number of partitions to scan is the smallest number of most probable
// partitions whose cumulative probability reaches targetRecall (capped at
// MaxProbe). If referenceIDs are given, typically from ExactTopK, recall@k is
// reported as |result ∩ reference| / min(k, len(referenceIDs)).
//
// Every search advances the query counter and the hit counter of each
// scanned partition.
func (x *Index) Search(query []float32, k int, targetRecall float64, referenceIDs ...uint64) (Result, error) {
	start := time.Now()

	if k <= 0 {
		x.logger.LogSearch(k, 0, 0, 0, ErrInvalidK)
		return Result{}, ErrInvalidK
	}
	if len(query) != x.cfg.Dimension {
		err := &ErrDimensionMismatch{Expected: x.cfg.Dimension, Actual: len(query)}
		x.logger.LogSearch(k, 0, 0, 0, err)
		return Result{}, err
	}

	res := x.search(query, k, targetRecall, referenceIDs)

	x.metrics.RecordSearch(k, res.Meta.NProbe, res.Meta.Scanned, time.Since(start))
	x.logger.LogSearch(k, len(res.IDs), res.Meta.NProbe, res.Meta.Scanned, nil)

	if x.autoMaintain != nil {
		x.autoMaintain.Do(func() {
			x.Maintain(x.cfg.HotWindow)
		})
	}

	return res, nil
}

func (x *Index) search(query []float32, k int, targetRecall float64, referenceIDs []uint64) Result {
	x.queries++

	centroids := x.store.Centroids()
	sqDists := make([]float32, len(centroids))
	distance.SquaredL2Batch(query, centroids, sqDists)

	scores := probe.Scores(sqDists, x.store.Sizes())
	nprobe := probe.NProbe(scores, targetRecall, x.cfg.MaxProbe)

	var (
		candIDs  []uint64
		candVecs [][]float32
	)
	for _, s := range scores[:nprobe] {
		p := x.store.Get(s.Partition)
		p.Hits++
		candIDs = append(candIDs, p.IDs...)
		candVecs = append(candVecs, p.Vectors...)
	}

	if len(candIDs) == 0 {
		return Result{
			IDs:       []uint64{},
			Distances: []float32{},
		}
	}

	dists := make([]float32, len(candVecs))
	distance.SquaredL2Batch(query, candVecs, dists)

	top := queue.SmallestK(dists, k)
	res := Result{
		IDs:       make([]uint64, len(top)),
		Distances: make([]float32, len(top)),
		Meta: Meta{
			NProbe:  nprobe,
			Scanned: len(candIDs),
		},
	}
	for i, c := range top {
		res.IDs[i] = candIDs[c]
		res.Distances[i] = dists[c]
	}

	if len(referenceIDs) > 0 {
		r := recallAtK(res.IDs, referenceIDs, k)
		res.Meta.RecallAtK = &r
	}

	return res
}

// recallAtK is |found ∩ reference| / min(k, len(reference)).
func recallAtK(found, reference []uint64, k int) float64 {
	ref := roaring64.BitmapOf(reference...)

	hits := 0
	for _, id := range found {
		if ref.Contains(id) {
			hits++
		}
	}
	return float64(hits) / float64(min(k, len(reference)))
}
