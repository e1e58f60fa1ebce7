// Package kmeans implements fixed-iteration k-means clustering.
//
// It is used both for the two-level build of the index and for the binary
// split of oversized partitions during maintenance. Initialization is derived
// from a seed; empty clusters are reseeded from a caller-supplied generator,
// so a clustering is fully reproducible for a given (seed, generator state).
package kmeans
