package adaptivf_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/adaptivf"
)

func grid(off float32, n int) [][]float32 {
	vectors := make([][]float32, n)
	for i := range vectors {
		vectors[i] = []float32{off + float32(i%10)*0.1, off + float32(i/10)*0.1}
	}
	return vectors
}

// Example demonstrates building an index and running an adaptive search.
func Example() {
	idx, err := adaptivf.New(2, adaptivf.WithCoarseK(2), adaptivf.WithBaseK(1))
	if err != nil {
		log.Fatal(err)
	}

	vectors := append(grid(0, 50), grid(10, 50)...)
	if err := idx.Build(context.Background(), vectors, nil); err != nil {
		log.Fatal(err)
	}

	res, err := idx.Search([]float32{0, 0}, 3, 0.9)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res.IDs)
	// Output: [0 1 10]
}

// Example_recall demonstrates measuring recall against exact ground truth.
func Example_recall() {
	vectors := append(grid(0, 50), grid(10, 50)...)
	ids := make([]uint64, len(vectors))
	for i := range ids {
		ids[i] = uint64(1000 + i)
	}

	idx, err := adaptivf.New(2, adaptivf.WithCoarseK(2))
	if err != nil {
		log.Fatal(err)
	}
	if err := idx.Build(context.Background(), vectors, ids); err != nil {
		log.Fatal(err)
	}

	query := []float32{10.42, 10.13}
	ref := adaptivf.ExactTopK(query, vectors, ids, 5)

	res, err := idx.Search(query, 5, 1, ref...)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("recall@5=%.2f\n", *res.Meta.RecallAtK)
	// Output: recall@5=1.00
}

// Example_maintain demonstrates splitting an oversized partition.
func Example_maintain() {
	idx, err := adaptivf.New(2,
		adaptivf.WithCoarseK(1),
		adaptivf.WithBaseK(1),
		adaptivf.WithSplitSize(16),
		adaptivf.WithMergeSize(0),
	)
	if err != nil {
		log.Fatal(err)
	}

	vectors := make([][]float32, 20)
	for i := range vectors {
		vectors[i] = []float32{1 + 0.001*float32(i), 1 - 0.0005*float32(i)}
	}
	if err := idx.Build(context.Background(), vectors, nil); err != nil {
		log.Fatal(err)
	}

	report := idx.Maintain(0)

	fmt.Printf("splits=%d partitions=%d vectors=%d\n", report.Splits, idx.NumPartitions(), idx.Len())
	// Output: splits=1 partitions=2 vectors=20
}

// Example_config demonstrates loading a YAML configuration.
func Example_config() {
	cfg, err := adaptivf.ParseConfig([]byte(`
dimension: 64
coarse_k: 32
split_size: 2000
auto_maintain_every: 50
`))
	if err != nil {
		log.Fatal(err)
	}

	idx, err := adaptivf.NewFromConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(idx.Dim(), idx.Config().CoarseK, idx.Config().BaseK, idx.Config().AutoMaintainEvery)
	// Output: 64 32 4 50
}
