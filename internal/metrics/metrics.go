// Package metrics exposes the backtester's Prometheus counters and gauges:
// register at init, start a standalone HTTP server on demand.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// TicksProcessed counts MarketUpdate events dispatched, per symbol.
	TicksProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "backtest_ticks_processed_total", Help: "Market ticks dispatched to registered strategies"},
		[]string{"symbol"},
	)
	// SignalsEmitted counts strategy-emitted Signal events, per symbol and direction.
	SignalsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "backtest_signals_emitted_total", Help: "Signals emitted by strategies"},
		[]string{"symbol", "direction"},
	)
	// FillsProcessed counts synthetic Fill events applied to position state.
	FillsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "backtest_fills_processed_total", Help: "Fills applied to position bookkeeping"},
		[]string{"symbol", "direction"},
	)
	// TradesClosed counts completed round trips, per symbol.
	TradesClosed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "backtest_trades_closed_total", Help: "Closed round-trip trades"},
		[]string{"symbol"},
	)
	// QueueDepth reports the simulator's pending-event count at the last
	// progress checkpoint.
	QueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "backtest_queue_depth", Help: "Pending events in the simulator's priority queue"},
	)
)

func init() {
	prometheus.MustRegister(TicksProcessed, SignalsEmitted, FillsProcessed, TradesClosed, QueueDepth)
}

// Serve starts a standalone metrics HTTP server in the background and
// returns it so the caller can shut it down on exit.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
