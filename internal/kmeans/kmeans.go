package kmeans

import (
	"errors"
	"math"
	"math/rand/v2"

	"github.com/hupe1980/adaptivf/distance"
	"github.com/viterin/vek/vek32"
)

var (
	// ErrNoPoints is returned when clustering an empty point set.
	ErrNoPoints = errors.New("kmeans: no points")
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("kmeans: k must be positive")
)

// Result holds the final centroids and the cluster of every input point.
type Result struct {
	Centroids [][]float32
	Assign    []int
}

// Sizes returns the number of points assigned to each cluster.
func (r Result) Sizes() []int {
	sizes := make([]int, len(r.Centroids))
	for _, a := range r.Assign {
		sizes[a]++
	}
	return sizes
}

// Cluster runs exactly iterations rounds of Lloyd's algorithm over points.
//
// k is clamped to len(points). The starting centroids are distinct points
// picked by a hash of (cluster index, seed); a collision probes forward to the
// next unpicked point. Ties in the assignment step go to the lowest cluster
// index. A cluster left without members is reseeded to a uniformly random
// point drawn from rng. A nil rng is replaced by a PCG generator seeded with seed.
func Cluster(points [][]float32, k, iterations int, seed int64, rng *rand.Rand) (Result, error) {
	n := len(points)
	if n == 0 {
		return Result{}, ErrNoPoints
	}
	if k <= 0 {
		return Result{}, ErrInvalidK
	}
	k = min(k, n)
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(seed), 0))
	}

	dim := len(points[0])
	centroids := initCentroids(points, k, seed)
	assign := make([]int, n)

	sums := make([][]float32, k)
	for j := range sums {
		sums[j] = make([]float32, dim)
	}
	counts := make([]int, k)

	for it := 0; it < iterations; it++ {
		for i, p := range points {
			assign[i] = nearest(p, centroids)
		}

		for j := range sums {
			clear(sums[j])
			counts[j] = 0
		}
		for i, p := range points {
			a := assign[i]
			vek32.Add_Inplace(sums[a], p)
			counts[a]++
		}

		for j := range centroids {
			if counts[j] > 0 {
				copy(centroids[j], sums[j])
				vek32.MulNumber_Inplace(centroids[j], 1/float32(counts[j]))
				continue
			}
			copy(centroids[j], points[rng.IntN(n)])
		}
	}

	return Result{Centroids: centroids, Assign: assign}, nil
}

// Nearest returns the index of the centroid closest to v by squared L2
// distance, ties going to the lowest index. It returns -1 for no centroids.
func Nearest(v []float32, centroids [][]float32) int {
	if len(centroids) == 0 {
		return -1
	}
	return nearest(v, centroids)
}

func nearest(v []float32, centroids [][]float32) int {
	best := 0
	bestDist := distance.SquaredL2(v, centroids[0])
	for j := 1; j < len(centroids); j++ {
		if d := distance.SquaredL2(v, centroids[j]); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best
}

func initCentroids(points [][]float32, k int, seed int64) [][]float32 {
	n := len(points)
	chosen := make([]bool, n)
	centroids := make([][]float32, k)

	for c := range centroids {
		idx := int(seedHash(c, seed) * float64(n))
		for chosen[idx] {
			idx = (idx + 1) % n
		}
		chosen[idx] = true
		centroids[c] = append([]float32(nil), points[idx]...)
	}
	return centroids
}

// seedHash is frac(sin((i+1)*9301 + seed*49297) * 233280), a value in [0, 1).
func seedHash(i int, seed int64) float64 {
	a := math.Sin(float64(i+1)*9301+float64(seed)*49297) * 233280
	f := a - math.Floor(a)
	if f >= 1 || f < 0 {
		return 0
	}
	return f
}
