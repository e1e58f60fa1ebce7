// Package probe implements the adaptive probe policy.
//
// Query-to-centroid distances are turned into a probability distribution over
// partitions; the number of partitions to scan is the shortest prefix of the
// most probable partitions whose cumulative mass reaches the target recall.
package probe

import (
	"math"
	"slices"

	"github.com/hupe1980/adaptivf/model"
	"gonum.org/v1/gonum/floats"
)

const tauEpsilon = 1e-6

// Score is the probability assigned to one partition for a query.
type Score struct {
	Partition model.PartitionID
	P         float64
	Size      int
}

// Scores returns one Score per partition, ordered by descending probability.
// Equal probabilities keep partition handle order.
//
// sqDists[i] is the squared distance from the query to the centroid of
// partition i and sizes[i] its vector count. The logit of partition i is
//
//	-sqrt(sqDists[i])/tau + 0.5*ln(sizes[i]+1)
//
// with tau the median square-rooted distance plus 1e-6; probabilities are the
// softmax of the logits.
func Scores(sqDists []float32, sizes []int) []Score {
	n := len(sqDists)
	if n == 0 {
		return nil
	}

	dists := make([]float64, n)
	for i, d := range sqDists {
		dists[i] = math.Sqrt(float64(d))
	}

	sorted := slices.Clone(dists)
	slices.Sort(sorted)
	tau := sorted[n/2] + tauEpsilon

	logits := make([]float64, n)
	for i, d := range dists {
		logits[i] = -d/tau + 0.5*math.Log(float64(sizes[i])+1)
	}

	maxLogit := floats.Max(logits)
	for i, l := range logits {
		logits[i] = math.Exp(l - maxLogit)
	}
	floats.Scale(1/floats.Sum(logits), logits)

	out := make([]Score, n)
	for i, p := range logits {
		out[i] = Score{Partition: model.PartitionID(i), P: p, Size: sizes[i]}
	}
	slices.SortStableFunc(out, func(a, b Score) int {
		switch {
		case a.P > b.P:
			return -1
		case a.P < b.P:
			return 1
		default:
			return 0
		}
	})

	return out
}

// NProbe returns the smallest prefix length of scores whose cumulative
// probability reaches target, capped at maxProbe. If the cap or the end of
// scores is reached first, min(len(scores), maxProbe) is returned.
func NProbe(scores []Score, target float64, maxProbe int) int {
	cum := 0.0
	for i := 0; i < len(scores) && i < maxProbe; i++ {
		cum += scores[i].P
		if cum >= target {
			return i + 1
		}
	}
	return min(len(scores), maxProbe)
}
