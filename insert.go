package adaptivf

import (
	"slices"
	"time"

	"github.com/hupe1980/adaptivf/distance"
	"github.com/hupe1980/adaptivf/internal/kmeans"
	"github.com/hupe1980/adaptivf/internal/partition"
	"github.com/hupe1980/adaptivf/model"
)

// Insert adds vec under id.
//
// The vector is routed to the nearest coarse cell and appended to the
// nearest partition of that cell, whose centroid is then recomputed over all
// its members. If the cell owns no partition yet, a new singleton partition
// is created for it. Inserting an id that is already stored fails with
// *ErrDuplicateID.
func (x *Index) Insert(vec []float32, id uint64) error {
	start := time.Now()
	loc, created, err := x.insert(vec, id)

	x.metrics.RecordInsert(time.Since(start), err)
	x.logger.LogInsert(id, uint32(loc.Partition), created, err)

	return err
}

func (x *Index) insert(vec []float32, id uint64) (model.Location, bool, error) {
	if err := x.checkVector(vec); err != nil {
		return model.Location{}, false, err
	}
	if x.store.NumCells() == 0 {
		return model.Location{}, false, ErrNotBuilt
	}
	if x.locs.Has(id) {
		return model.Location{}, false, &ErrDuplicateID{ID: id}
	}

	v := slices.Clone(vec)
	dim := x.cfg.Dimension

	c := kmeans.Nearest(v, x.store.CellCentroids())
	cell := x.store.Cell(c)

	if len(cell.Members) == 0 {
		h := x.store.Append(partition.New(c, [][]float32{v}, []uint64{id}, dim))
		loc := model.Location{Partition: h, Offset: 0}
		x.locs.Set(id, loc)
		return loc, true, nil
	}

	best := cell.Members[0]
	bestDist := distance.SquaredL2(v, x.store.Get(best).Centroid)
	for _, h := range cell.Members[1:] {
		if d := distance.SquaredL2(v, x.store.Get(h).Centroid); d < bestDist {
			best, bestDist = h, d
		}
	}

	p := x.store.Get(best)
	off := p.Append(v, id)
	p.Recenter(dim)

	loc := model.Location{Partition: best, Offset: off}
	x.locs.Set(id, loc)
	return loc, false, nil
}

// Delete removes id from the index and reports whether it was stored.
// Deleting an unknown id is a no-op.
//
// The last vector of the partition takes the freed slot; the partition's
// centroid is recomputed unless the partition became empty, in which case it
// keeps its previous centroid.
func (x *Index) Delete(id uint64) bool {
	start := time.Now()
	found := x.delete(id)

	x.metrics.RecordDelete(time.Since(start), found)
	x.logger.LogDelete(id, found)

	return found
}

func (x *Index) delete(id uint64) bool {
	loc, ok := x.locs.Get(id)
	if !ok {
		return false
	}

	p := x.store.Get(loc.Partition)
	moved, ok := p.ReplaceWithLast(loc.Offset)
	p.Recenter(x.cfg.Dimension)

	if ok {
		x.locs.Set(moved, loc)
	}
	x.locs.Delete(id)
	return true
}
