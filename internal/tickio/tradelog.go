package tickio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/bmackie-quant/newsmomentum-backtest/internal/market"
)

var tradeLogHeader = []string{
	"Entry_Time", "Exit_Time", "Symbol", "Entry_Price", "Exit_Price", "Quantity", "PnL", "Regime",
}

// WriteTradeLog serialises trades to CSV: a fixed header, one record per
// trade, floats rendered at two-decimal fixed precision. decimal.NewFromFloat
// avoids the binary-float rounding artifacts plain fmt.Sprintf("%.2f") can
// produce on values like 0.145.
func WriteTradeLog(path string, trades []market.TradeRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trade log: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(tradeLogHeader); err != nil {
		return fmt.Errorf("write trade log header: %w", err)
	}

	for _, trade := range trades {
		record := []string{
			strconv.FormatInt(trade.EntryTs, 10),
			strconv.FormatInt(trade.ExitTs, 10),
			trade.Symbol,
			fixed2(trade.EntryPrice),
			fixed2(trade.ExitPrice),
			fixed2(trade.Qty),
			fixed2(trade.Pnl),
			trade.RegimeLabel,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write trade record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush trade log: %w", err)
	}
	return nil
}

func fixed2(v float64) string {
	return decimal.NewFromFloat(v).Round(2).StringFixed(2)
}
