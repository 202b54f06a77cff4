package indicator

// DefaultPeriods are the EMA periods the news-momentum strategy reads:
// 9 for the short crossover leg, 90/200 for the trend filter. 12/26 live
// inside MACD and are not duplicated here.
var DefaultPeriods = []int{9, 90, 200}

// State is the full indicator set maintained for one symbol. A strategy owns
// exactly one State per symbol it trades.
type State struct {
	emas   map[int]*EMA
	macd   *MACD
	vwap   *VWAP
	volume *VolumeTracker
	gap    *GapTracker
}

// NewState builds a State tracking EMAs for the given periods (DefaultPeriods
// if none are given) plus MACD, VWAP, volume, and gap-up tracking.
func NewState(periods ...int) *State {
	if len(periods) == 0 {
		periods = DefaultPeriods
	}
	emas := make(map[int]*EMA, len(periods))
	for _, p := range periods {
		emas[p] = NewEMA(p)
	}
	return &State{
		emas:   emas,
		macd:   NewMACD(),
		vwap:   NewVWAP(),
		volume: NewVolumeTracker(),
		gap:    NewGapTracker(),
	}
}

// Update feeds one tick through every tracked indicator, in the order the
// strategy reads them: price, EMAs, MACD, VWAP, volume.
func (s *State) Update(ts int64, price float64, volume int64) {
	s.gap.UpdatePrice(price)
	for _, ema := range s.emas {
		ema.Update(price)
	}
	s.macd.Update(price)
	s.vwap.Update(ts, price, float64(volume))
	s.volume.Update(ts, float64(volume))
}

// EMA returns the current value of the EMA for period, 0 (not ready) if that
// period was never configured or never updated.
func (s *State) EMA(period int) float64 {
	e, ok := s.emas[period]
	if !ok {
		return 0
	}
	return e.Value()
}

// EMAAbove reports whether price is strictly above the EMA for period.
func (s *State) EMAAbove(period int, price float64) bool {
	e, ok := s.emas[period]
	if !ok {
		return false
	}
	return e.Above(price)
}

func (s *State) MACDHistogram() float64        { return s.macd.Histogram() }
func (s *State) MACDExpanding() bool           { return s.macd.IsExpanding() }
func (s *State) VWAP() float64                 { return s.vwap.Value() }
func (s *State) PriceAboveVWAP(p float64) bool { return s.vwap.Above(p) }
func (s *State) ResetVWAP()                    { s.vwap.Reset() }
func (s *State) RelativeVolume() float64       { return s.volume.RelativeVolume() }
func (s *State) GapUpPercent() float64         { return s.gap.GapUpPercent() }
