// Package adaptivf provides an in-memory approximate nearest-neighbour index
// that adapts its partitioning to the data and the query workload.
//
// Adaptivf is a two-level IVF (inverted file) index. Build clusters the
// vectors into coarse routing cells and, inside each cell, into base
// partitions. Inserts are routed through the cells to the nearest partition;
// deletes swap the last vector of a partition into the freed slot. A location
// index tracks the exact slot of every id at all times.
//
// # Quick Start
//
//	idx, _ := adaptivf.New(128)
//	_ = idx.Build(ctx, vectors, nil) // ids default to 0..n-1
//
//	res, _ := idx.Search(query, 10, 0.9)
//	for i, id := range res.IDs {
//	    fmt.Println(id, res.Distances[i])
//	}
//
// # Adaptive Probing
//
// Search does not use a fixed nprobe. Every partition gets a probability from
// a softmax over its centroid distance (scaled by the median distance) plus a
// log-size prior. The most probable partitions are scanned until their
// cumulative probability reaches the requested target recall, capped by
// MaxProbe. Result.Meta reports how many partitions and vectors were scanned.
//
// Passing ground-truth ids, typically from ExactTopK, makes Search report
// recall@k:
//
//	ref := adaptivf.ExactTopK(query, vectors, ids, 10)
//	res, _ := idx.Search(query, 10, 0.9, ref...)
//	fmt.Println(*res.Meta.RecallAtK)
//
// # Maintenance
//
// Every search counts a hit on each scanned partition. Maintain splits
// partitions that are large relative to their heat with 2-means, and merges
// pairs of tiny partitions:
//
//	report := idx.Maintain(0) // configured hot window
//
// WithAutoMaintain runs Maintain after every n-th search.
//
// # Configuration
//
// Use functional options or a YAML document:
//
//	cfg, _ := adaptivf.LoadConfig(f)
//	idx, _ := adaptivf.NewFromConfig(cfg, adaptivf.WithLogger(adaptivf.NewJSONLogger(slog.LevelInfo)))
//
// # Concurrency
//
// An Index is not safe for concurrent use; Search mutates hit counters.
// Build fans out per-cell clustering to WithBuildParallelism goroutines and
// produces the same index for any parallelism.
package adaptivf
