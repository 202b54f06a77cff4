package strategy

import (
	"github.com/bmackie-quant/newsmomentum-backtest/internal/indicator"
	"github.com/bmackie-quant/newsmomentum-backtest/internal/market"
	"github.com/bmackie-quant/newsmomentum-backtest/internal/regime"
)

// NewsMomentum is the long-only news-catalyst momentum strategy: it enters
// on a conjunction of volume/gap/trend/microstructure predicates while the
// regime classifier reads TRENDING, and exits on the first of a VWAP break,
// a contracting-negative MACD histogram, or a flip to CHOPPY.
type NewsMomentum struct {
	symbol     string
	params     Params
	indicators *indicator.State
	classifier *regime.Classifier // shared, non-owning

	hasPosition          bool
	positionQty          float64
	wasLongEMAAboveShort bool
}

// New builds a NewsMomentum strategy for symbol, sharing the given regime
// classifier (which may already be in use by another strategy on the same
// symbol).
func New(symbol string, params Params, classifier *regime.Classifier) *NewsMomentum {
	return &NewsMomentum{
		symbol:     symbol,
		params:     params.withDefaults(),
		indicators: indicator.NewState(indicator.DefaultPeriods...),
		classifier: classifier,
	}
}

// ProcessMarketUpdate runs the per-tick pipeline: feed the regime
// classifier, update indicators, then evaluate exactly one of exit/entry
// depending on current position state.
func (s *NewsMomentum) ProcessMarketUpdate(tick market.Tick) []market.Event {
	s.classifier.Observe(tick)
	s.indicators.Update(tick.TimestampUs, tick.Price, tick.Volume)

	if s.hasPosition {
		if s.checkExit(tick.Price) {
			s.hasPosition = false
			return []market.Event{
				market.NewSignalEvent(tick.TimestampUs, s.symbol, market.Exit, s.positionQty, tick.Price),
			}
		}
		return nil
	}

	if s.checkEntry(tick) {
		size := s.positionSize()
		if size > 0 {
			s.hasPosition = true
			return []market.Event{
				market.NewSignalEvent(tick.TimestampUs, s.symbol, market.Long, size, tick.Price),
			}
		}
	}
	return nil
}

// checkExit implements the exit disjunction: any one of these triggers EXIT.
func (s *NewsMomentum) checkExit(price float64) bool {
	if !s.indicators.PriceAboveVWAP(price) {
		return true
	}
	if !s.indicators.MACDExpanding() && s.indicators.MACDHistogram() < 0 {
		return true
	}
	if s.classifier.Label() == regime.Choppy {
		return true
	}
	return false
}

// checkEntry implements the entry conjunction — every clause must hold.
func (s *NewsMomentum) checkEntry(tick market.Tick) bool {
	if s.indicators.RelativeVolume() < s.params.MinRelativeVolume {
		return false
	}
	if s.indicators.GapUpPercent() < s.params.MinGapUpPercent {
		return false
	}
	if !s.checkTrendAlignment(tick.Price) {
		return false
	}
	if !s.checkEMACrossover() {
		return false
	}
	if !s.indicators.PriceAboveVWAP(tick.Price) {
		return false
	}
	if !s.indicators.MACDExpanding() {
		return false
	}
	if !s.checkOrderBookImbalance(tick) {
		return false
	}
	if s.classifier.Label() != regime.Trending {
		return false
	}
	return true
}

// checkTrendAlignment requires price above both the 90 and 200 EMA and the
// 90-EMA itself above the 200-EMA (bullish alignment).
func (s *NewsMomentum) checkTrendAlignment(price float64) bool {
	if price == 0 {
		return false
	}
	if !s.indicators.EMAAbove(90, price) || !s.indicators.EMAAbove(200, price) {
		return false
	}
	return s.indicators.EMA(90) > s.indicators.EMA(200)
}

// checkEMACrossover tracks the 9-over-90 EMA crossover bit and permits entry
// both on the crossing tick and while the "above" state persists.
func (s *NewsMomentum) checkEMACrossover() bool {
	ema9 := s.indicators.EMA(9)
	ema90 := s.indicators.EMA(90)
	if ema9 == 0 || ema90 == 0 {
		return false
	}
	currentlyAbove := ema9 > ema90
	s.wasLongEMAAboveShort = currentlyAbove
	return currentlyAbove
}

func (s *NewsMomentum) checkOrderBookImbalance(tick market.Tick) bool {
	if tick.AskSize == 0 {
		return false
	}
	return tick.BidSize/tick.AskSize >= s.params.MinBidAskRatio
}

func (s *NewsMomentum) positionSize() float64 {
	multiplier := s.classifier.PositionMultiplier()
	if multiplier <= 0 {
		return 0
	}
	return s.params.BasePositionSize * multiplier
}

// OnFill updates hasPosition and the held quantity from a confirmed fill
// rather than trusting the optimistic bit set at signal time, so a dropped or
// reordered fill can't leave the strategy thinking it holds a position it
// doesn't (or vice versa). The held quantity is what an EXIT signal carries.
func (s *NewsMomentum) OnFill(fill market.Fill) {
	if fill.Dir == market.Exit {
		s.hasPosition = false
		s.positionQty = 0
		return
	}
	s.hasPosition = true
	s.positionQty += fill.Qty
}

// RegimeLabel reports the classifier's current label as a string, read by
// the simulator when recording a new position's entry regime.
func (s *NewsMomentum) RegimeLabel() string {
	return s.classifier.Label().String()
}
