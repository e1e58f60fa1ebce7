package model

import (
	"fmt"
)

// PartitionID is the stable handle of a base partition.
// Handles are positions in an append-only arena and are never reused.
type PartitionID uint32

// Location identifies the exact slot of a stored vector.
type Location struct {
	Partition PartitionID
	Offset    int
}

// String returns a string representation of the Location.
func (l Location) String() string {
	return fmt.Sprintf("Loc(%d:%d)", l.Partition, l.Offset)
}
