package market

// Position tracks one symbol's open exposure. qty == 0 is the only
// representation of "flat" — there is no separate boolean; a position exists
// only between the fill that opens it and the fill that zeroes it out.
type Position struct {
	Symbol           string
	Qty              float64
	AvgPrice         float64
	Dir              Direction
	EntryTs          int64
	EntryRegimeLabel string
}

// IsFlat reports whether the position currently holds no quantity.
func (p *Position) IsFlat() bool { return p.Qty == 0 }

// ApplyLongFill folds a LONG fill into the position: opens it if flat,
// otherwise increases it using a weighted-average cost basis.
func (p *Position) ApplyLongFill(fill Fill, ts int64, entryRegimeLabel string) {
	if p.Qty == 0 {
		p.Symbol = fill.Symbol
		p.Qty = fill.Qty
		p.AvgPrice = fill.FillPrice
		p.Dir = Long
		p.EntryTs = ts
		p.EntryRegimeLabel = entryRegimeLabel
		return
	}
	totalCost := p.AvgPrice*p.Qty + fill.FillPrice*fill.Qty
	p.Qty += fill.Qty
	p.AvgPrice = totalCost / p.Qty
}

// CloseAt realizes PnL against exitPrice and returns the trade record, which
// carries the commission paid on the closing fill; the caller decides whether
// to net it against PnL (see NetPnl).
func (p *Position) CloseAt(exitPrice float64, exitTs int64, regimeLabel string, commission float64) TradeRecord {
	pnl := (exitPrice - p.AvgPrice) * p.Qty
	if p.Dir == Short {
		pnl = (p.AvgPrice - exitPrice) * p.Qty
	}
	trade := TradeRecord{
		Symbol:      p.Symbol,
		EntryTs:     p.EntryTs,
		ExitTs:      exitTs,
		EntryPrice:  p.AvgPrice,
		ExitPrice:   exitPrice,
		Qty:         p.Qty,
		Pnl:         pnl,
		Commission:  commission,
		RegimeLabel: regimeLabel,
	}
	p.Qty = 0
	p.AvgPrice = 0
	p.EntryTs = 0
	p.EntryRegimeLabel = ""
	return trade
}

// TradeRecord is one closed round trip, appended once per position close.
type TradeRecord struct {
	Symbol      string
	EntryTs     int64
	ExitTs      int64
	EntryPrice  float64
	ExitPrice   float64
	Qty         float64
	Pnl         float64
	Commission  float64
	RegimeLabel string
}

// NetPnl returns Pnl minus the commission paid to close the trade, for
// callers that opt into net-of-commission accounting.
func (t TradeRecord) NetPnl() float64 { return t.Pnl - t.Commission }
