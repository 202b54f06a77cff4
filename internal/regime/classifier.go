package regime

import "github.com/bmackie-quant/newsmomentum-backtest/internal/market"

// warmupTicks is the minimum ring size before a regime is classified at all;
// below it the classifier is forced CHOPPY.
const warmupTicks = 20

// trendingVolatilityFloor and trendingDirectionFloor gate the cluster-0
// override: even when the nearest centroid is 0 (nominally CHOPPY), a
// sufficiently volatile, sufficiently directional reading is still called
// TRENDING.
const (
	trendingVolatilityFloor = 0.02
	trendingDirectionFloor  = 0.01
)

// Classifier is an online k-means regime classifier for one symbol's tick
// stream. It is shared, non-owning, across every strategy instance trading
// that symbol — never mutated concurrently, since the simulator dispatches
// one event at a time.
type Classifier struct {
	lookback int
	k        int
	ring     []market.Tick
	label    Label
}

// NewClassifier builds a classifier with the given rolling window capacity
// and cluster count (defaults 100 and 2 if either is <= 0).
func NewClassifier(lookback, k int) *Classifier {
	if lookback <= 0 {
		lookback = 100
	}
	if k <= 0 {
		k = 2
	}
	return &Classifier{lookback: lookback, k: k, label: Choppy}
}

// Observe feeds one tick into the rolling window and re-classifies the
// current regime. Must be called before the strategy reads Label() for that
// tick.
func (c *Classifier) Observe(tick market.Tick) {
	c.ring = append(c.ring, tick)
	if len(c.ring) > c.lookback {
		c.ring = c.ring[len(c.ring)-c.lookback:]
	}

	if len(c.ring) < warmupTicks {
		c.label = Choppy
		return
	}

	features := extractFeatures(c.ring)
	centroids := seedCentroids(features, c.k)
	centroids = lloyd(features, centroids)

	current := featureFromWindow(c.ring)
	nearest := nearestCentroid(current, centroids)

	switch {
	case nearest == 1:
		c.label = Trending
	case nearest == 0 && current.volatility > trendingVolatilityFloor && current.direction > trendingDirectionFloor:
		c.label = Trending
	default:
		c.label = Choppy
	}
}

// Label returns the most recently classified regime.
func (c *Classifier) Label() Label { return c.label }

// PositionMultiplier forwards to the current label's multiplier.
func (c *Classifier) PositionMultiplier() float64 { return c.label.PositionMultiplier() }
