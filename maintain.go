package adaptivf

import (
	"math"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/adaptivf/distance"
	"github.com/hupe1980/adaptivf/internal/kmeans"
	"github.com/hupe1980/adaptivf/internal/partition"
	"github.com/hupe1980/adaptivf/model"
)

const (
	// minSplitSize is the smallest partition that maintenance will split.
	minSplitSize    = 16
	splitIterations = 8
	splitSeedBase   = 17
)

// MaintenanceReport summarizes one maintenance pass.
type MaintenanceReport struct {
	Splits     int
	Merges     int
	Partitions int
	Duration   time.Duration
}

// Maintain rebalances the partitions: it splits partitions that are large
// relative to their heat and then merges pairs of tiny partitions.
//
// hotWindow scales heat: a partition scanned hotWindow times since its last
// split keeps the nominal SplitSize threshold, a hotter one splits earlier
// (down to SplitSize/HotSplitMultiplier), a cold one no later than
// 2*SplitSize. hotWindow <= 0 uses the configured HotWindow.
//
// Maintain visits every partition and is not interruptible. Partition
// handles stay valid: a split keeps one half at the original handle and a
// merge leaves the absorbed partition empty in place.
func (x *Index) Maintain(hotWindow int) MaintenanceReport {
	start := time.Now()
	if hotWindow <= 0 {
		hotWindow = x.cfg.HotWindow
	}

	r := MaintenanceReport{
		Splits: x.splitPartitions(hotWindow),
		Merges: x.mergePartitions(),
	}
	r.Partitions = x.store.Len()
	r.Duration = time.Since(start)

	x.metrics.RecordMaintain(r)
	x.logger.LogMaintain(r)

	return r
}

// splitThreshold is
// clamp(SplitSize / max(1, hot/hotWindow), SplitSize/HotSplitMultiplier, 2*SplitSize)
// with hot the hits of p minus the query counter at its last split.
func (x *Index) splitThreshold(p *partition.Partition, hotWindow int) float64 {
	hot := float64(int64(p.Hits) - int64(p.LastSplitAt))
	size := float64(x.cfg.SplitSize)

	t := size / math.Max(1, hot/float64(hotWindow))
	return math.Max(size/x.cfg.HotSplitMultiplier, math.Min(size*2, t))
}

func (x *Index) splitPartitions(hotWindow int) int {
	splits := 0
	// Len is re-read every round: halves appended by this pass are inspected too.
	for h := 0; h < x.store.Len(); h++ {
		id := model.PartitionID(h)
		p := x.store.Get(id)

		size := p.Len()
		if size < minSplitSize || float64(size) < x.splitThreshold(p, hotWindow) {
			continue
		}
		if x.split(id) {
			splits++
		}
	}
	return splits
}

// split bisects partition id with 2-means. The first half stays at id, the
// second is appended to the same coarse cell. Nothing changes unless both
// halves are non-empty.
func (x *Index) split(id model.PartitionID) bool {
	p := x.store.Get(id)

	res, err := kmeans.Cluster(p.Vectors, 2, splitIterations, splitSeedBase+int64(id), x.rng)
	if err != nil {
		return false
	}

	var (
		leftVecs, rightVecs [][]float32
		leftIDs, rightIDs   []uint64
	)
	for i, a := range res.Assign {
		if a == 0 {
			leftVecs = append(leftVecs, p.Vectors[i])
			leftIDs = append(leftIDs, p.IDs[i])
		} else {
			rightVecs = append(rightVecs, p.Vectors[i])
			rightIDs = append(rightIDs, p.IDs[i])
		}
	}
	if len(leftIDs) == 0 || len(rightIDs) == 0 {
		return false
	}

	dim := x.cfg.Dimension
	p.Reset(leftVecs, leftIDs, dim)
	p.LastSplitAt = x.queries

	sibling := partition.New(p.Cell, rightVecs, rightIDs, dim)
	sibling.LastSplitAt = x.queries
	sid := x.store.Append(sibling)

	x.locs.SetRange(id, leftIDs, 0)
	x.locs.SetRange(sid, rightIDs, 0)

	x.logger.LogSplit(uint32(id), uint32(sid), len(leftIDs), len(rightIDs))
	return true
}

// mergePartitions pairs every tiny partition (size <= MergeSize) greedily with
// its nearest unconsumed tiny partition by centroid distance and folds the
// pair into the first one.
func (x *Index) mergePartitions() int {
	var tiny []model.PartitionID
	for h := 0; h < x.store.Len(); h++ {
		if x.store.Get(model.PartitionID(h)).Len() <= x.cfg.MergeSize {
			tiny = append(tiny, model.PartitionID(h))
		}
	}

	consumed := roaring.New()
	merges := 0
	for _, i := range tiny {
		if consumed.Contains(uint32(i)) {
			continue
		}

		host := x.store.Get(i)
		best, found := model.PartitionID(0), false
		bestDist := float32(math.MaxFloat32)
		for _, j := range tiny {
			if j == i || consumed.Contains(uint32(j)) {
				continue
			}
			if d := distance.SquaredL2(host.Centroid, x.store.Get(j).Centroid); !found || d < bestDist {
				best, bestDist, found = j, d, true
			}
		}
		if !found {
			continue
		}

		start := host.Absorb(x.store.Get(best))
		host.Recenter(x.cfg.Dimension)
		x.locs.SetRange(i, host.IDs[start:], start)

		consumed.Add(uint32(i))
		consumed.Add(uint32(best))
		merges++
	}
	return merges
}
