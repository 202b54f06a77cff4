// Package config exposes strongly typed application configuration structs
// loaded from YAML, with environment-variable overrides layered on top.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// AppConfig captures process-wide runtime settings: name, log level, and the
// address the metrics server binds.
type AppConfig struct {
	Name        string `yaml:"name" env:"APP_NAME"`
	LogLevel    string `yaml:"log_level" env:"APP_LOG_LEVEL"`
	MetricsAddr string `yaml:"metrics_addr" env:"APP_METRICS_ADDR"`
}

// DataConfig points at the tick stream to replay and the symbol it belongs to.
type DataConfig struct {
	CSVPath string `yaml:"csv_path" env:"DATA_CSV_PATH"`
	Symbol  string `yaml:"symbol" env:"DATA_SYMBOL"`
}

// SimConfig tunes the simulator's latency and commission model.
type SimConfig struct {
	LatencyMs       int64   `yaml:"latency_ms" env:"SIM_LATENCY_MS"`
	CommissionRate  float64 `yaml:"commission_rate" env:"SIM_COMMISSION_RATE"`
	NetOfCommission bool    `yaml:"net_of_commission" env:"SIM_NET_OF_COMMISSION"`
}

// StrategyConfig tunes the NewsMomentum entry thresholds and base size.
type StrategyConfig struct {
	BasePositionSize  float64 `yaml:"base_position_size" env:"STRATEGY_BASE_POSITION_SIZE"`
	MinRelativeVolume float64 `yaml:"min_relative_volume" env:"STRATEGY_MIN_RELATIVE_VOLUME"`
	MinGapUpPercent   float64 `yaml:"min_gap_up_percent" env:"STRATEGY_MIN_GAP_UP_PERCENT"`
	MinBidAskRatio    float64 `yaml:"min_bid_ask_ratio" env:"STRATEGY_MIN_BID_ASK_RATIO"`
}

// RegimeConfig tunes the rolling k-means classifier's window and cluster count.
type RegimeConfig struct {
	Lookback int `yaml:"lookback" env:"REGIME_LOOKBACK"`
	K        int `yaml:"k" env:"REGIME_K"`
}

// Config collects every configuration leaf for marshaling to/from YAML.
type Config struct {
	App      AppConfig      `yaml:"app"`
	Data     DataConfig     `yaml:"data"`
	Sim      SimConfig      `yaml:"sim"`
	Strategy StrategyConfig `yaml:"strategy"`
	Regime   RegimeConfig   `yaml:"regime"`
}

// Load reads a YAML file from disk, hydrates a Config, layers
// environment-variable overrides on top of whatever the file set, then fills
// any still-zero field with its default. Env vars are deliberately declared
// without envDefault tags: caarlos0/env applies envDefault unconditionally
// when the var is unset, which would stomp a YAML-set value — defaults are
// applied here instead, after both YAML and env have had a chance to set
// the field.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := env.ParseWithOptions(&cfg, env.Options{}); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills every still-zero field with its documented default.
// Exported so callers building a Config without a YAML file (e.g. when none
// is found on disk) can still get a fully-defaulted instance.
func (c *Config) ApplyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "newsmomentum-backtest"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.App.MetricsAddr == "" {
		c.App.MetricsAddr = ":9090"
	}
	if c.Data.CSVPath == "" {
		c.Data.CSVPath = "data/tick_data.csv"
	}
	if c.Data.Symbol == "" {
		c.Data.Symbol = "TICKER"
	}
	if c.Sim.LatencyMs == 0 {
		c.Sim.LatencyMs = 200
	}
	if c.Sim.CommissionRate == 0 {
		c.Sim.CommissionRate = 0.0001
	}
	if c.Strategy.BasePositionSize == 0 {
		c.Strategy.BasePositionSize = 100
	}
	if c.Strategy.MinRelativeVolume == 0 {
		c.Strategy.MinRelativeVolume = 5.0
	}
	if c.Strategy.MinGapUpPercent == 0 {
		c.Strategy.MinGapUpPercent = 10.0
	}
	if c.Strategy.MinBidAskRatio == 0 {
		c.Strategy.MinBidAskRatio = 1.5
	}
	if c.Regime.Lookback == 0 {
		c.Regime.Lookback = 100
	}
	if c.Regime.K == 0 {
		c.Regime.K = 2
	}
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
