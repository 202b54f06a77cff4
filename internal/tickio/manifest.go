package tickio

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Manifest is the short run summary printed to stdout and persisted
// alongside the trade log, so a given CSV of trades can be correlated back
// to the run parameters that produced it.
type Manifest struct {
	RunID      string        `yaml:"run_id"`
	Symbol     string        `yaml:"symbol"`
	TickCount  int           `yaml:"tick_count"`
	TradeCount int           `yaml:"trade_count"`
	TotalPnL   float64       `yaml:"total_pnl"`
	NetPnL     float64       `yaml:"net_pnl"`
	Elapsed    time.Duration `yaml:"elapsed"`
}

// WriteManifest persists the run manifest as YAML next to the trade log.
func WriteManifest(path string, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Summary renders the manifest as the one-line stdout summary printed at the
// end of a run.
func (m Manifest) Summary() string {
	return fmt.Sprintf(
		"run %s: symbol=%s ticks=%d trades=%d total_pnl=%.2f net_pnl=%.2f elapsed=%s",
		m.RunID, m.Symbol, m.TickCount, m.TradeCount, m.TotalPnL, m.NetPnL, m.Elapsed,
	)
}
