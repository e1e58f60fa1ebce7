// Package location maps vector ids to the exact slot that stores them.
//
// The index is the single source of truth for "where is id X stored". Every
// operation that creates, moves, or removes a slot in a partition must update
// it as its final step so that for every entry
//
//	partition[loc.Partition].IDs[loc.Offset] == id
package location

import (
	"github.com/hupe1980/adaptivf/model"
)

// Index maps ids to locations.
type Index struct {
	locs map[uint64]model.Location
}

// New creates an empty location index sized for capacity ids.
func New(capacity int) *Index {
	return &Index{locs: make(map[uint64]model.Location, capacity)}
}

// Get returns the location of id.
func (x *Index) Get(id uint64) (model.Location, bool) {
	loc, ok := x.locs[id]
	return loc, ok
}

// Has reports whether id is stored.
func (x *Index) Has(id uint64) bool {
	_, ok := x.locs[id]
	return ok
}

// Set records the location of id, replacing any previous one.
func (x *Index) Set(id uint64, loc model.Location) {
	x.locs[id] = loc
}

// SetRange records ids[i] at offset start+i of partition p.
func (x *Index) SetRange(p model.PartitionID, ids []uint64, start int) {
	for i, id := range ids {
		x.locs[id] = model.Location{Partition: p, Offset: start + i}
	}
}

// Delete removes id. Unknown ids are ignored.
func (x *Index) Delete(id uint64) {
	delete(x.locs, id)
}

// Len returns the number of stored ids.
func (x *Index) Len() int {
	return len(x.locs)
}

// Reset removes every entry.
func (x *Index) Reset(capacity int) {
	x.locs = make(map[uint64]model.Location, capacity)
}

// Range calls fn for every entry until fn returns false. Order is unspecified.
func (x *Index) Range(fn func(id uint64, loc model.Location) bool) {
	for id, loc := range x.locs {
		if !fn(id, loc) {
			return
		}
	}
}
