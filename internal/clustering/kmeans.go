package clustering

import (
	"math"
	"math/rand"
)

const (
	// kmeansRestarts is the number of random initializations; the run
	// with the lowest inertia wins.
	kmeansRestarts = 10
	// kmeansMaxIterations bounds a single run.
	kmeansMaxIterations = 100
	// kmeansSeed fixes the RNG so cluster assignments are reproducible
	// across server restarts.
	kmeansSeed = 42
)

// kmeans partitions rows into k clusters and returns a label per row.
// k must be >= 1 and <= len(rows).
func kmeans(rows [][]float64, k int) []int {
	if len(rows) == 0 || k < 1 {
		return nil
	}
	if k > len(rows) {
		k = len(rows)
	}

	rng := rand.New(rand.NewSource(kmeansSeed))

	bestLabels := make([]int, len(rows))
	bestInertia := math.Inf(1)

	for restart := 0; restart < kmeansRestarts; restart++ {
		labels, inertia := kmeansOnce(rows, k, rng)
		if inertia < bestInertia {
			bestInertia = inertia
			copy(bestLabels, labels)
		}
	}
	return bestLabels
}

func kmeansOnce(rows [][]float64, k int, rng *rand.Rand) ([]int, float64) {
	dim := len(rows[0])

	// Initialize centroids with k distinct random rows.
	perm := rng.Perm(len(rows))
	centroids := make([][]float64, k)
	for i := 0; i < k; i++ {
		centroids[i] = append([]float64(nil), rows[perm[i]]...)
	}

	labels := make([]int, len(rows))
	for iter := 0; iter < kmeansMaxIterations; iter++ {
		changed := false

		// Assignment step.
		for i, row := range rows {
			best := 0
			bestDist := squaredDistance(row, centroids[0])
			for c := 1; c < k; c++ {
				if d := squaredDistance(row, centroids[c]); d < bestDist {
					best = c
					bestDist = d
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}

		// Update step. Empty clusters keep their previous centroid.
		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dim)
		}
		for i, row := range rows {
			c := labels[i]
			counts[c]++
			for j, v := range row {
				sums[c][j] += v
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue
			}
			for j := range sums[c] {
				centroids[c][j] = sums[c][j] / float64(counts[c])
			}
		}

		if !changed && iter > 0 {
			break
		}
	}

	inertia := 0.0
	for i, row := range rows {
		inertia += squaredDistance(row, centroids[labels[i]])
	}
	return labels, inertia
}

func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
