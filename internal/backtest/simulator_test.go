package backtest

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/bmackie-quant/newsmomentum-backtest/internal/market"
	"github.com/bmackie-quant/newsmomentum-backtest/internal/regime"
	"github.com/bmackie-quant/newsmomentum-backtest/internal/strategy"
)

func silentLog() zerolog.Logger {
	return zerolog.Nop()
}

// flatTicks builds n ticks that never satisfy the entry predicate: constant
// price, low volume, no gap.
func flatTicks(symbol string, n int) []market.Tick {
	ticks := make([]market.Tick, n)
	for i := 0; i < n; i++ {
		ticks[i] = market.Tick{
			Symbol:      symbol,
			TimestampUs: int64(i) * 1000,
			Price:       100,
			Volume:      1000,
			BidSize:     1,
			AskSize:     1,
		}
	}
	return ticks
}

func TestEmptyInputYieldsZeroTrades(t *testing.T) {
	sim := New(Config{LatencyMs: 200}, silentLog())
	classifier := regime.NewClassifier(100, 2)
	sim.RegisterStrategy("TICKER", strategy.New("TICKER", strategy.DefaultParams(), classifier))
	sim.LoadTicks("TICKER", nil)

	sim.Run()

	require.Equal(t, 0, sim.TradeCount())
	require.Equal(t, 0.0, sim.TotalPnL())
}

func TestWarmupOnlyNineteenTicksYieldsZeroTrades(t *testing.T) {
	sim := New(Config{LatencyMs: 200}, silentLog())
	classifier := regime.NewClassifier(100, 2)
	strat := strategy.New("TICKER", strategy.DefaultParams(), classifier)
	sim.RegisterStrategy("TICKER", strat)

	ticks := make([]market.Tick, 19)
	for i := range ticks {
		ticks[i] = market.Tick{
			Symbol:      "TICKER",
			TimestampUs: int64(i) * 1000,
			Price:       100 + float64(i)*5, // extreme gap-ups
			Volume:      100000,
			BidSize:     10,
			AskSize:     1,
		}
	}
	sim.LoadTicks("TICKER", ticks)

	sim.Run()

	require.Equal(t, regime.Choppy, classifier.Label())
	require.Equal(t, 0, sim.TradeCount())
}

func TestEntryNeverFiringYieldsZeroTrades(t *testing.T) {
	sim := New(Config{LatencyMs: 200}, silentLog())
	classifier := regime.NewClassifier(100, 2)
	sim.RegisterStrategy("TICKER", strategy.New("TICKER", strategy.DefaultParams(), classifier))
	sim.LoadTicks("TICKER", flatTicks("TICKER", 300))

	sim.Run()

	require.Equal(t, 0, sim.TradeCount())
	require.Equal(t, 0.0, sim.TotalPnL())
}

// buildTrendingTicks constructs a tick series that warms up flat, then fires
// a single real gap-up tick (a 20% jump on a volume and bid/ask surge) big
// enough on its own to clear every entry threshold, continues the ramp with
// high volume and a wide bid/ask ratio to keep price above VWAP while the
// position is held, and later crosses back below a flattening VWAP to
// trigger a VWAP-break exit.
func buildTrendingTicks(symbol string, n int) []market.Tick {
	ticks := make([]market.Tick, 0, n)
	price := 100.0
	for i := 0; i < n; i++ {
		ts := int64(i) * 1_000_000 // 1 second apart, comfortably exceeds 200ms latency
		switch {
		case i < 100:
			// flat warm-up, unremarkable volume
			ticks = append(ticks, market.Tick{Symbol: symbol, TimestampUs: ts, Price: price, Volume: 1000, BidSize: 1, AskSize: 1})
		case i == 100:
			// single gap-up/volume/imbalance trigger tick: +20% on 100x
			// average volume with a 5:1 bid/ask ratio
			price *= 1.2
			ticks = append(ticks, market.Tick{Symbol: symbol, TimestampUs: ts, Price: price, Volume: 100000, BidSize: 50, AskSize: 10})
		case i < 180:
			// sustained directional ramp with a volume and bid/ask surge
			price += 1.5
			ticks = append(ticks, market.Tick{Symbol: symbol, TimestampUs: ts, Price: price, Volume: 50000, BidSize: 20, AskSize: 10})
		default:
			// sharp reversal to force a VWAP break
			price -= 4
			ticks = append(ticks, market.Tick{Symbol: symbol, TimestampUs: ts, Price: price, Volume: 50000, BidSize: 1, AskSize: 20})
		}
	}
	return ticks
}

func TestTrendingRunProducesRoundTripWithPositiveLatency(t *testing.T) {
	sim := New(Config{LatencyMs: 200}, silentLog())
	classifier := regime.NewClassifier(100, 2)
	sim.RegisterStrategy("TICKER", strategy.New("TICKER", strategy.DefaultParams(), classifier))
	sim.LoadTicks("TICKER", buildTrendingTicks("TICKER", 260))

	sim.Run()

	require.GreaterOrEqual(t, sim.TradeCount(), 1, "trending run must produce at least one round trip")
	for _, trade := range sim.Trades() {
		require.GreaterOrEqual(t, trade.ExitTs, trade.EntryTs, "exit must not precede entry")
		if trade.EntryTs > 0 {
			require.GreaterOrEqual(t, trade.ExitTs-trade.EntryTs, int64(0))
		}
	}
}

func TestForceCloseAtEndOfStream(t *testing.T) {
	sim := New(Config{LatencyMs: 200}, silentLog())
	classifier := regime.NewClassifier(100, 2)
	sim.RegisterStrategy("TICKER", strategy.New("TICKER", strategy.DefaultParams(), classifier))

	ticks := buildTrendingTicks("TICKER", 260)
	// Cut off before the reversal phase so no VWAP-break exit ever fires,
	// forcing any open position to close only at end-of-stream.
	ticks = ticks[:180]
	sim.LoadTicks("TICKER", ticks)

	sim.Run()

	require.GreaterOrEqual(t, sim.TradeCount(), 1, "truncated run must leave an open position to force-close")
	for _, trade := range sim.Trades() {
		require.Equal(t, ticks[len(ticks)-1].TimestampUs, trade.ExitTs)
		require.Equal(t, ticks[len(ticks)-1].Price, trade.ExitPrice)
	}
}

func TestZeroLatencyFillsShareSignalTimestamp(t *testing.T) {
	sim := New(Config{LatencyMs: 0}, silentLog())
	classifier := regime.NewClassifier(100, 2)
	sim.RegisterStrategy("TICKER", strategy.New("TICKER", strategy.DefaultParams(), classifier))
	sim.LoadTicks("TICKER", buildTrendingTicks("TICKER", 260))

	sim.Run()

	require.GreaterOrEqual(t, sim.TradeCount(), 1, "trending run must produce at least one round trip")

	// With zero latency, every trade's entry timestamp must coincide with an
	// actual tick timestamp (no latency shift was applied).
	ticksBySymbol := map[int64]bool{}
	for _, tick := range buildTrendingTicks("TICKER", 260) {
		ticksBySymbol[tick.TimestampUs] = true
	}
	for _, trade := range sim.Trades() {
		require.True(t, ticksBySymbol[trade.EntryTs] || trade.EntryTs == 0)
	}
}

func TestUnregisteredSymbolTicksAreDropped(t *testing.T) {
	sim := New(Config{LatencyMs: 200}, silentLog())
	sim.LoadTicks("GHOST", flatTicks("GHOST", 50))

	sim.Run()

	require.Equal(t, 0, sim.TradeCount())
}

func TestNetPnLSubtractsCommission(t *testing.T) {
	sim := New(Config{LatencyMs: 200, NetOfCommission: true}, silentLog())
	classifier := regime.NewClassifier(100, 2)
	sim.RegisterStrategy("TICKER", strategy.New("TICKER", strategy.DefaultParams(), classifier))
	sim.LoadTicks("TICKER", buildTrendingTicks("TICKER", 260))

	sim.Run()

	require.LessOrEqual(t, sim.NetPnL(), sim.TotalPnL())
	require.Equal(t, sim.NetPnL(), sim.ReportedPnL())
}

func TestQueueFIFOOrdersEqualTimestamps(t *testing.T) {
	q := newEventQueue()
	q.Push(market.NewSignalEvent(100, "A", market.Long, 1, 1))
	q.Push(market.NewSignalEvent(100, "B", market.Long, 1, 1))
	q.Push(market.NewSignalEvent(100, "C", market.Long, 1, 1))

	first, _ := q.Pop()
	second, _ := q.Pop()
	third, _ := q.Pop()

	require.Equal(t, "A", first.Signal.Symbol)
	require.Equal(t, "B", second.Signal.Symbol)
	require.Equal(t, "C", third.Signal.Symbol)
}
