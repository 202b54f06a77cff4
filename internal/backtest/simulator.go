// Package backtest drives the discrete-event simulation loop: a
// priority-ordered replay of ticks, latency-shifted synthetic fills, and
// position/trade-log bookkeeping. Weighted-average cost basis and an
// append-only trade log live on Position and Simulator respectively, the
// same bookkeeping shape a live paper-trading loop would use, generalized
// here into a deterministic replay engine.
package backtest

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bmackie-quant/newsmomentum-backtest/internal/market"
	"github.com/bmackie-quant/newsmomentum-backtest/internal/metrics"
	"github.com/bmackie-quant/newsmomentum-backtest/internal/strategy"
)

// progressInterval is how often the simulator logs dispatched-event progress.
const progressInterval = 100_000

// defaultCommissionRate is the flat proportional commission applied to every
// fill when none is configured: fill_price * qty * 0.0001.
const defaultCommissionRate = 0.0001

// Config configures one Simulator run.
type Config struct {
	LatencyMs       int64
	CommissionRate  float64
	NetOfCommission bool
}

func (c Config) withDefaults() Config {
	out := c
	if out.CommissionRate <= 0 {
		out.CommissionRate = defaultCommissionRate
	}
	return out
}

// Simulator owns the event queue, per-symbol tick arrays, position map, and
// trade log for one backtest run.
type Simulator struct {
	cfg    Config
	log    zerolog.Logger
	runID  uuid.UUID
	queue  *eventQueue
	ticks  map[string][]market.Tick
	strats map[string][]strategy.Strategy

	currentTimeUs int64
	dispatched    uint64

	positions map[string]*market.Position
	trades    []market.TradeRecord
}

// New builds a Simulator ready to have ticks loaded and strategies registered.
func New(cfg Config, log zerolog.Logger) *Simulator {
	return &Simulator{
		cfg:       cfg.withDefaults(),
		log:       log,
		runID:     uuid.New(),
		queue:     newEventQueue(),
		ticks:     make(map[string][]market.Tick),
		strats:    make(map[string][]strategy.Strategy),
		positions: make(map[string]*market.Position),
	}
}

// LoadTicks registers a symbol's full tick array and preloads one
// MarketUpdate event per tick. Ticks must already be in non-decreasing
// timestamp order per symbol.
func (s *Simulator) LoadTicks(symbol string, ticks []market.Tick) {
	s.ticks[symbol] = ticks
	for _, t := range ticks {
		s.queue.Push(market.NewMarketUpdateEvent(t))
	}
}

// RegisterStrategy attaches a strategy instance to a symbol. More than one
// strategy may be registered per symbol; every MarketUpdate for that symbol
// is dispatched to all of them.
func (s *Simulator) RegisterStrategy(symbol string, strat strategy.Strategy) {
	s.strats[symbol] = append(s.strats[symbol], strat)
}

// Run drains the event queue until empty, then force-closes any remaining
// open positions at their symbol's last known tick price.
func (s *Simulator) Run() {
	s.log.Info().
		Str("run_id", s.runID.String()).
		Int64("latency_ms", s.cfg.LatencyMs).
		Int("pending_events", s.queue.Len()).
		Msg("starting backtest")

	for {
		event, ok := s.queue.Pop()
		if !ok {
			break
		}
		s.currentTimeUs = event.Ts
		s.dispatch(event)

		s.dispatched++
		if s.dispatched%progressInterval == 0 {
			metrics.QueueDepth.Set(float64(s.queue.Len()))
			s.log.Info().Uint64("dispatched", s.dispatched).Int("queue_depth", s.queue.Len()).Msg("progress")
		}
	}

	s.forceCloseRemaining()

	s.log.Info().
		Str("run_id", s.runID.String()).
		Uint64("dispatched", s.dispatched).
		Int("trades", len(s.trades)).
		Float64("total_pnl", s.TotalPnL()).
		Msg("backtest complete")
}

func (s *Simulator) dispatch(event market.Event) {
	switch event.Kind {
	case market.KindMarketUpdate:
		s.dispatchMarketUpdate(event)
	case market.KindSignal:
		s.dispatchSignal(event)
	case market.KindOrder:
		s.dispatchOrder(event)
	case market.KindFill:
		s.dispatchFill(event)
	}
}

// dispatchMarketUpdate routes the tick to every strategy registered for its
// symbol. A MarketUpdate for an unregistered symbol is silently dropped.
func (s *Simulator) dispatchMarketUpdate(event market.Event) {
	tick := event.MarketUpdate.Tick
	metrics.TicksProcessed.WithLabelValues(tick.Symbol).Inc()

	strats, ok := s.strats[tick.Symbol]
	if !ok {
		return
	}
	for _, strat := range strats {
		for _, signal := range strat.ProcessMarketUpdate(tick) {
			metrics.SignalsEmitted.WithLabelValues(tick.Symbol, string(signal.Signal.Dir)).Inc()
			s.queue.Push(signal)
		}
	}
}

// dispatchSignal translates a Signal 1:1 into an Order at the same timestamp.
func (s *Simulator) dispatchSignal(event market.Event) {
	sig := event.Signal
	s.queue.Push(market.NewOrderEvent(event.Ts, sig.Symbol, sig.Dir, sig.Qty, sig.Price))
}

// dispatchOrder applies the fixed latency and looks up the fill price from
// the symbol's tick array.
func (s *Simulator) dispatchOrder(event market.Event) {
	order := event.Order
	fillTs := event.Ts + s.cfg.LatencyMs*1000
	fillPrice := s.lookupFillPrice(order.Symbol, fillTs, order.Price)
	commission := fillPrice * order.Qty * s.cfg.CommissionRate

	s.queue.Push(market.NewFillEvent(fillTs, order.Symbol, order.Dir, order.Qty, fillPrice, commission))
}

// lookupFillPrice scans the symbol's tick array for the first tick with
// timestamp_us >= fillTs, falling back to the order price if none exists.
func (s *Simulator) lookupFillPrice(symbol string, fillTs int64, orderPrice float64) float64 {
	for _, t := range s.ticks[symbol] {
		if t.TimestampUs >= fillTs {
			return t.Price
		}
	}
	return orderPrice
}

// dispatchFill applies position bookkeeping and notifies the strategy (or
// strategies) registered for the symbol so their "holding a position" bit
// matches reality.
func (s *Simulator) dispatchFill(event market.Event) {
	fill := *event.Fill
	metrics.FillsProcessed.WithLabelValues(fill.Symbol, string(fill.Dir)).Inc()

	for _, strat := range s.strats[fill.Symbol] {
		strat.OnFill(fill)
	}

	pos, ok := s.positions[fill.Symbol]
	if !ok {
		pos = &market.Position{Symbol: fill.Symbol}
		s.positions[fill.Symbol] = pos
	}

	switch fill.Dir {
	case market.Exit:
		if pos.IsFlat() {
			return
		}
		trade := pos.CloseAt(fill.FillPrice, event.Ts, pos.EntryRegimeLabel, fill.Commission)
		s.trades = append(s.trades, trade)
		metrics.TradesClosed.WithLabelValues(fill.Symbol).Inc()
	case market.Long:
		entryRegimeLabel := s.entryRegimeLabel(fill.Symbol)
		pos.ApplyLongFill(fill, event.Ts, entryRegimeLabel)
	}
}

// entryRegimeLabel queries the first registered strategy's classifier for
// the symbol's current regime label, at fill time rather than at signal
// time, so the recorded entry regime reflects the classifier's state when
// the position actually opens.
func (s *Simulator) entryRegimeLabel(symbol string) string {
	strats := s.strats[symbol]
	if len(strats) == 0 {
		return "UNKNOWN"
	}
	return strats[0].RegimeLabel()
}

// forceCloseRemaining closes every still-open position at its symbol's last
// known tick price, producing one TradeRecord each.
func (s *Simulator) forceCloseRemaining() {
	for symbol, pos := range s.positions {
		if pos.IsFlat() {
			continue
		}
		ticks := s.ticks[symbol]
		if len(ticks) == 0 {
			continue
		}
		last := ticks[len(ticks)-1]
		trade := pos.CloseAt(last.Price, last.TimestampUs, pos.EntryRegimeLabel, 0)
		s.trades = append(s.trades, trade)
		metrics.TradesClosed.WithLabelValues(symbol).Inc()
	}
}

// TotalPnL returns gross PnL summed across every closed trade.
func (s *Simulator) TotalPnL() float64 {
	var total float64
	for _, t := range s.trades {
		total += t.Pnl
	}
	return total
}

// NetPnL returns PnL minus commission summed across every closed trade,
// without changing TradeRecord's gross Pnl field.
func (s *Simulator) NetPnL() float64 {
	var total float64
	for _, t := range s.trades {
		total += t.NetPnl()
	}
	return total
}

// TradeCount returns the number of closed round trips.
func (s *Simulator) TradeCount() int { return len(s.trades) }

// Trades returns a copy of the closed trade log, in close order.
func (s *Simulator) Trades() []market.TradeRecord {
	out := make([]market.TradeRecord, len(s.trades))
	copy(out, s.trades)
	return out
}

// RunID identifies this simulator instance's run for log correlation.
func (s *Simulator) RunID() string { return s.runID.String() }

// ReportedPnL returns NetPnL when the config opted into net-of-commission
// accounting, otherwise TotalPnL.
func (s *Simulator) ReportedPnL() float64 {
	if s.cfg.NetOfCommission {
		return s.NetPnL()
	}
	return s.TotalPnL()
}
