// Package distance provides the vector math used by the index.
//
// All distances are exact squared Euclidean distances; there is no
// quantization or approximation anywhere in the retrieval path.
//
// # Usage
//
//	d := distance.SquaredL2(a, b)
//	distance.SquaredL2Batch(query, centroids, out)
//	c := distance.Mean(rows, dim)
package distance
