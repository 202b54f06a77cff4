package indicator

// GapTracker tracks the percentage change from the immediately preceding
// tick's price to the current one. Despite the name, prevClose is NOT a true
// session close — it is whatever price the previous tick carried. This is a
// deliberate contract, not a bug: callers relying on "gap from yesterday's
// close" would be surprised by it.
type GapTracker struct {
	prevClose    float64
	currentPrice float64
	openPrice    float64
	isFirstTick  bool
}

// NewGapTracker builds a tracker ready for its first price.
func NewGapTracker() *GapTracker {
	return &GapTracker{isFirstTick: true}
}

// UpdatePrice folds in a new price, shifting current into prev on every call
// after the first.
func (g *GapTracker) UpdatePrice(price float64) {
	if g.isFirstTick {
		g.prevClose = price
		g.openPrice = price
		g.isFirstTick = false
	} else {
		g.prevClose = g.currentPrice
	}
	g.currentPrice = price
}

// GapUpPercent returns the percent change from prevClose to currentPrice,
// 0 when prevClose is 0 (not yet warmed up).
func (g *GapTracker) GapUpPercent() float64 {
	if g.prevClose == 0 {
		return 0
	}
	return (g.currentPrice - g.prevClose) / g.prevClose * 100
}

// OpenPrice returns the price observed on the first tick.
func (g *GapTracker) OpenPrice() float64 { return g.openPrice }
