package testutil

import (
	"math"
	"math/rand/v2"
	"slices"
	"sort"
	"sync"

	"github.com/hupe1980/adaptivf/distance"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SearchResult represents a search result.
type SearchResult struct {
	ID       uint64
	Distance float32
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewPCG(seed, seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewPCG(r.seed, r.seed))
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// IntN returns a non-negative pseudo-random number in [0,n).
func (r *RNG) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

// FillGaussian fills dst with standard normal values.
func (r *RNG) FillGaussian(dst []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = float32(r.rand.NormFloat64())
	}
}

// UniformVectors generates random vectors with values in range [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformVectors(num int, dimensions int) [][]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float32, num*dimensions)
	vectors := make([][]float32, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = r.rand.Float32()
		}
		vectors[i] = vec
	}

	return vectors
}

// GaussianVectors generates random vectors with values from a standard normal distribution.
func (r *RNG) GaussianVectors(num int, dimensions int) [][]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float32, num*dimensions)
	vectors := make([][]float32, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = float32(r.rand.NormFloat64())
		}
		vectors[i] = vec
	}

	return vectors
}

// Dataset is a clustered workload: Vectors[i] is stored under IDs[i] and was
// drawn around Centers[Labels[i]].
type Dataset struct {
	Vectors [][]float32
	IDs     []uint64
	Labels  []int
	Centers [][]float32
}

// ClusteredDataset generates num vectors around clusters Gaussian centres.
//
// Centre components are N(0, 4²) and every vector is its centre plus unit
// Gaussian noise. Vectors are allocated evenly, the last cluster taking the
// remainder. IDs are 0..num-1.
func (r *RNG) ClusteredDataset(num, dim, clusters int) Dataset {
	clusters = max(1, min(clusters, num))

	r.mu.Lock()
	defer r.mu.Unlock()

	centers := make([][]float32, clusters)
	for i := range centers {
		c := make([]float32, dim)
		for j := range c {
			c[j] = float32(r.rand.NormFloat64() * 4)
		}
		centers[i] = c
	}

	ds := Dataset{
		Vectors: make([][]float32, 0, num),
		IDs:     make([]uint64, 0, num),
		Labels:  make([]int, 0, num),
		Centers: centers,
	}

	data := make([]float32, num*dim)
	per := num / clusters
	for c := range clusters {
		size := per
		if c == clusters-1 {
			size = num - len(ds.IDs)
		}
		for range size {
			i := len(ds.IDs)
			vec := data[i*dim : (i+1)*dim]
			for j := range vec {
				vec[j] = centers[c][j] + float32(r.rand.NormFloat64())
			}
			ds.Vectors = append(ds.Vectors, vec)
			ds.IDs = append(ds.IDs, uint64(i))
			ds.Labels = append(ds.Labels, c)
		}
	}

	return ds
}

// Perturb returns a copy of v with Gaussian noise of the given scale added.
func (r *RNG) Perturb(v []float32, scale float32) []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = x + float32(r.rand.NormFloat64())*scale
	}
	return out
}

// ZipfSampler draws ranks in [0, n) with P(r) ∝ 1/(r+1)^s.
// It shares the RNG it was created from.
type ZipfSampler struct {
	rng *RNG
	cdf []float64
}

// NewZipf creates a sampler over n ranks with skew s.
// s=1.1 gives a workload where a few partitions receive most queries.
func (r *RNG) NewZipf(n int, s float64) *ZipfSampler {
	w := make([]float64, max(n, 1))
	for i := range w {
		w[i] = 1 / math.Pow(float64(i+1), s)
	}
	floats.Scale(1/floats.Sum(w), w)
	floats.CumSum(w, w)
	return &ZipfSampler{rng: r, cdf: w}
}

// Next returns the next rank.
func (z *ZipfSampler) Next() int {
	z.rng.mu.Lock()
	u := z.rng.rand.Float64()
	z.rng.mu.Unlock()

	i := sort.SearchFloat64s(z.cdf, u)
	return min(i, len(z.cdf)-1)
}

// ComputeRecall computes recall@k by comparing approximate results against ground truth.
func ComputeRecall(groundTruth, approximate []uint64) float64 {
	if len(groundTruth) == 0 || len(approximate) == 0 {
		if len(groundTruth) == 0 && len(approximate) == 0 {
			return 1.0
		}
		return 0.0
	}

	k := min(len(approximate), len(groundTruth))

	truthSet := make(map[uint64]struct{}, k)
	for i := range k {
		truthSet[groundTruth[i]] = struct{}{}
	}

	hits := 0
	for _, id := range approximate {
		if _, ok := truthSet[id]; ok {
			hits++
		}
	}

	return float64(hits) / float64(k)
}

// BruteForceSearch performs exact search for ground truth. Vector i has id i.
func BruteForceSearch(vectors [][]float32, query []float32, k int) []SearchResult {
	results := make([]SearchResult, len(vectors))
	for i, v := range vectors {
		results[i] = SearchResult{ID: uint64(i), Distance: distance.SquaredL2(query, v)}
	}

	slices.SortStableFunc(results, func(a, b SearchResult) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}

// IDs returns the ids of results in order.
func IDs(results []SearchResult) []uint64 {
	out := make([]uint64, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

// Percentile returns the q-quantile (0..1) of values by the empirical
// distribution. values is not modified.
func Percentile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return stat.Quantile(q, stat.Empirical, sorted, nil)
}
