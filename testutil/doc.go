// Package testutil provides testing utilities for adaptivf.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating synthetic workloads, computing exact
// nearest neighbors, and verifying search recall.
//
// # Workloads
//
//	rng := testutil.NewRNG(seed)
//	ds := rng.ClusteredDataset(4000, 64, 60) // Gaussian clusters
//	zipf := rng.NewZipf(idx.NumPartitions(), 1.1)
//	q := rng.Perturb(ds.Vectors[i], 0.1)
//
// # Exact Search (Ground Truth)
//
//	results := testutil.BruteForceSearch(dataset, query, k)
//
// # Recall Verification
//
//	recall := testutil.ComputeRecall(testutil.IDs(results), approxIDs)
package testutil
