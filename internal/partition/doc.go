// Package partition implements the two-level partition store of the index.
//
// The store owns two entity kinds: coarse cells (fixed routing centroids with
// the list of base partitions routed to them) and base partitions (leaf
// clusters holding vectors, ids, a centroid, and usage counters).
//
// Base partitions live in an append-only arena. A PartitionID is the position
// of a partition in the arena and stays valid for the lifetime of the store:
// removing all vectors from a partition leaves an empty slot with its last
// centroid rather than removing the slot.
package partition
