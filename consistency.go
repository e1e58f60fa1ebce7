package adaptivf

import (
	"fmt"

	"github.com/hupe1980/adaptivf/model"
)

// CheckConsistency verifies the internal invariants of the index and returns
// a *ConsistencyError listing every violation, or nil.
//
// It checks that every partition has parallel vector and id slices of the
// configured dimension, that every stored id resolves to the slot that holds
// it and vice versa, and that every cell member is a valid partition of that
// cell.
func (x *Index) CheckConsistency() error {
	var violations []string
	report := func(format string, args ...any) {
		violations = append(violations, fmt.Sprintf(format, args...))
	}

	dim := x.cfg.Dimension
	stored := 0
	for h := 0; h < x.store.Len(); h++ {
		id := model.PartitionID(h)
		p := x.store.Get(id)

		if len(p.Vectors) != len(p.IDs) {
			report("partition %d: %d vectors, %d ids", h, len(p.Vectors), len(p.IDs))
			continue
		}
		if len(p.Centroid) != dim {
			report("partition %d: centroid dimension %d", h, len(p.Centroid))
		}
		for off, vid := range p.IDs {
			if len(p.Vectors[off]) != dim {
				report("partition %d offset %d: vector dimension %d", h, off, len(p.Vectors[off]))
			}
			want := model.Location{Partition: id, Offset: off}
			if loc, ok := x.locs.Get(vid); !ok {
				report("id %d stored at %s is not indexed", vid, want)
			} else if loc != want {
				report("id %d stored at %s is indexed at %s", vid, want, loc)
			}
		}
		stored += p.Len()
	}

	x.locs.Range(func(vid uint64, loc model.Location) bool {
		if int(loc.Partition) >= x.store.Len() {
			report("id %d indexed at unknown partition %s", vid, loc)
			return true
		}
		p := x.store.Get(loc.Partition)
		if loc.Offset < 0 || loc.Offset >= p.Len() || p.IDs[loc.Offset] != vid {
			report("id %d indexed at %s which does not hold it", vid, loc)
		}
		return true
	})
	if n := x.locs.Len(); n != stored {
		report("%d ids indexed, %d stored", n, stored)
	}

	for c := 0; c < x.store.NumCells(); c++ {
		for _, m := range x.store.Cell(c).Members {
			if int(m) >= x.store.Len() {
				report("cell %d: unknown member partition %d", c, m)
				continue
			}
			if owner := x.store.Get(m).Cell; owner != c {
				report("cell %d: member partition %d belongs to cell %d", c, m, owner)
			}
		}
	}

	if len(violations) > 0 {
		return &ConsistencyError{Violations: violations}
	}
	return nil
}
