package regime

const (
	maxLloydIterations = 10
	convergenceEps     = 0.001
)

// seedCentroids picks deterministic starting centroids from the feature
// distribution: cluster 0 at each dimension's 25th percentile (sorted
// independently per dimension), cluster 1 (when k>1) at the 75th. This
// replaces the randomness a textbook k-means seed would use, so regime
// labels are reproducible across runs.
func seedCentroids(features []feature, k int) []feature {
	n := len(features)
	volatilities := make([]float64, n)
	directions := make([]float64, n)
	volumes := make([]float64, n)
	for i, f := range features {
		volatilities[i] = f.volatility
		directions[i] = f.direction
		volumes[i] = f.volumeNorm
	}
	volatilities = sortedCopy(volatilities)
	directions = sortedCopy(directions)
	volumes = sortedCopy(volumes)

	centroids := make([]feature, k)
	centroids[0] = feature{
		volatility: volatilities[percentileIndex(n, 1, 4)],
		direction:  directions[percentileIndex(n, 1, 4)],
		volumeNorm: volumes[percentileIndex(n, 1, 4)],
	}
	if k > 1 {
		centroids[1] = feature{
			volatility: volatilities[percentileIndex(n, 3, 4)],
			direction:  directions[percentileIndex(n, 3, 4)],
			volumeNorm: volumes[percentileIndex(n, 3, 4)],
		}
	}
	// Any cluster beyond the two with a defined labeling rule is seeded at
	// the overall median of each dimension, between cluster 0's and
	// cluster 1's seeds; it coincides with them when the features are all
	// equal.
	for i := 2; i < k; i++ {
		centroids[i] = feature{
			volatility: volatilities[n/2],
			direction:  directions[n/2],
			volumeNorm: volumes[n/2],
		}
	}
	return centroids
}

// lloyd runs up to maxLloydIterations of assign/recompute, stopping early
// once every centroid moves less than convergenceEps between iterations.
// Empty clusters keep their previous centroid rather than being recomputed
// from zero points.
func lloyd(features []feature, centroids []feature) []feature {
	if len(features) == 0 {
		return centroids
	}
	for iter := 0; iter < maxLloydIterations; iter++ {
		sums := make([]feature, len(centroids))
		counts := make([]int, len(centroids))

		for _, f := range features {
			nearest := nearestCentroid(f, centroids)
			sums[nearest].volatility += f.volatility
			sums[nearest].direction += f.direction
			sums[nearest].volumeNorm += f.volumeNorm
			counts[nearest]++
		}

		converged := true
		for i := range centroids {
			if counts[i] == 0 {
				continue
			}
			next := feature{
				volatility: sums[i].volatility / float64(counts[i]),
				direction:  sums[i].direction / float64(counts[i]),
				volumeNorm: sums[i].volumeNorm / float64(counts[i]),
			}
			if distance(next, centroids[i]) > convergenceEps {
				converged = false
			}
			centroids[i] = next
		}
		if converged {
			break
		}
	}
	return centroids
}

func nearestCentroid(f feature, centroids []feature) int {
	nearest := 0
	minDist := distance(f, centroids[0])
	for i := 1; i < len(centroids); i++ {
		if d := distance(f, centroids[i]); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}
