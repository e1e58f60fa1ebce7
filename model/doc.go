// Package model defines the small value types shared between the index and
// its internal packages.
//
//   - PartitionID: stable handle of a base partition (positional, never reused)
//   - Location: exact slot (PartitionID, Offset) of a stored vector
package model
