// Command backtest replays a historical tick stream through the
// NewsMomentum engine and writes a trade log. It takes two optional
// positional arguments, <csv-path> and <symbol>, defaulting to
// data/tick_data.csv and TICKER. Exit code 0 on success, 1 on tick-load
// failure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmackie-quant/newsmomentum-backtest/internal/backtest"
	"github.com/bmackie-quant/newsmomentum-backtest/internal/config"
	"github.com/bmackie-quant/newsmomentum-backtest/internal/metrics"
	"github.com/bmackie-quant/newsmomentum-backtest/internal/regime"
	"github.com/bmackie-quant/newsmomentum-backtest/internal/strategy"
	"github.com/bmackie-quant/newsmomentum-backtest/internal/tickio"
	"github.com/bmackie-quant/newsmomentum-backtest/internal/util"
)

const configPath = "internal/config/config.yaml"

func main() {
	log := util.NewLogger("info")

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", configPath).Msg("no config file found, using defaults")
		cfg = &config.Config{}
		cfg.ApplyDefaults()
	}

	if csvPath := argAt(1); csvPath != "" {
		cfg.Data.CSVPath = csvPath
	}
	if symbol := argAt(2); symbol != "" {
		cfg.Data.Symbol = symbol
	}

	log = util.NewLogger(cfg.App.LogLevel)

	srv := metrics.Serve(cfg.App.MetricsAddr)
	defer srv.Close()
	log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")

	started := time.Now()

	ticks, err := tickio.LoadTicks(cfg.Data.CSVPath, cfg.Data.Symbol)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.Data.CSVPath).Msg("load ticks")
		os.Exit(1)
	}

	classifier := regime.NewClassifier(cfg.Regime.Lookback, cfg.Regime.K)
	strat := strategy.New(cfg.Data.Symbol, strategy.Params{
		MinRelativeVolume: cfg.Strategy.MinRelativeVolume,
		MinGapUpPercent:   cfg.Strategy.MinGapUpPercent,
		MinBidAskRatio:    cfg.Strategy.MinBidAskRatio,
		BasePositionSize:  cfg.Strategy.BasePositionSize,
	}, classifier)

	sim := backtest.New(backtest.Config{
		LatencyMs:       cfg.Sim.LatencyMs,
		CommissionRate:  cfg.Sim.CommissionRate,
		NetOfCommission: cfg.Sim.NetOfCommission,
	}, log)
	sim.LoadTicks(cfg.Data.Symbol, ticks)
	sim.RegisterStrategy(cfg.Data.Symbol, strat)

	sim.Run()

	manifest := tickio.Manifest{
		RunID:      sim.RunID(),
		Symbol:     cfg.Data.Symbol,
		TickCount:  len(ticks),
		TradeCount: sim.TradeCount(),
		TotalPnL:   sim.TotalPnL(),
		NetPnL:     sim.NetPnL(),
		Elapsed:    time.Since(started),
	}
	fmt.Println(manifest.Summary())

	outDir := filepath.Dir(cfg.Data.CSVPath)
	tradeLogPath := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(cfg.Data.CSVPath), filepath.Ext(cfg.Data.CSVPath))+"_trades.csv")
	if err := tickio.WriteTradeLog(tradeLogPath, sim.Trades()); err != nil {
		log.Error().Err(err).Msg("write trade log")
		os.Exit(1)
	}

	manifestPath := strings.TrimSuffix(tradeLogPath, ".csv") + "_manifest.yaml"
	if err := tickio.WriteManifest(manifestPath, manifest); err != nil {
		log.Error().Err(err).Msg("write manifest")
		os.Exit(1)
	}
}

func argAt(i int) string {
	if i < len(os.Args) {
		return os.Args[i]
	}
	return ""
}
