package indicator

// VWAP accumulates volume-weighted average price within a session. It is
// purely a function of the ticks it has been fed — deterministic and
// independent of wall-clock time, so backtests replay identically regardless
// of when they're run.
type VWAP struct {
	cumPxVol       float64
	cumVol         float64
	sessionStartTs int64
	sessionStarted bool
}

// NewVWAP builds an empty VWAP accumulator.
func NewVWAP() *VWAP { return &VWAP{} }

// Update folds one (price, volume) observation into the session accumulators,
// marking the session start on the first call after construction or Reset.
func (v *VWAP) Update(ts int64, price float64, volume float64) {
	if !v.sessionStarted {
		v.sessionStartTs = ts
		v.sessionStarted = true
	}
	v.cumPxVol += price * volume
	v.cumVol += volume
}

// Value returns cumPxVol/cumVol, or 0 (not ready) when no volume has
// accumulated yet.
func (v *VWAP) Value() float64 {
	if v.cumVol <= 0 {
		return 0
	}
	return v.cumPxVol / v.cumVol
}

// Above reports whether price is strictly above VWAP, false while not ready.
func (v *VWAP) Above(price float64) bool {
	vw := v.Value()
	return vw > 0 && price > vw
}

// Reset zeroes the accumulators; callers decide when a new session begins
// (e.g. a day boundary) — VWAP itself has no concept of wall-clock days.
func (v *VWAP) Reset() {
	v.cumPxVol = 0
	v.cumVol = 0
	v.sessionStartTs = 0
	v.sessionStarted = false
}
