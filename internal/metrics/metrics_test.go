package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestServeRegistersMetrics(t *testing.T) {
	srv := Serve(":0")
	defer srv.Close()

	TicksProcessed.WithLabelValues("TICKER").Inc()
	SignalsEmitted.WithLabelValues("TICKER", "LONG").Inc()
	FillsProcessed.WithLabelValues("TICKER", "LONG").Inc()
	TradesClosed.WithLabelValues("TICKER").Inc()
	QueueDepth.Set(42)

	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	want := map[string]bool{
		"backtest_ticks_processed_total": false,
		"backtest_signals_emitted_total": false,
		"backtest_fills_processed_total": false,
		"backtest_trades_closed_total":   false,
		"backtest_queue_depth":           false,
	}
	for _, mf := range mfs {
		if _, ok := want[mf.GetName()]; ok {
			want[mf.GetName()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("%s metric not found", name)
		}
	}
}
