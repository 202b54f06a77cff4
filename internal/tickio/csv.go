// Package tickio is the external-collaborator boundary the core simulator
// never touches directly: loading a historical tick stream from CSV, and
// writing the resulting trade log back out. File I/O and format parsing
// live here, kept out of the deterministic core.
package tickio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bmackie-quant/newsmomentum-backtest/internal/market"
)

// ErrTickStreamUnreadable is returned when the underlying CSV file cannot be
// opened or read at all.
var ErrTickStreamUnreadable = errors.New("tick stream unreadable")

// ErrMalformedTick is returned when a record's shape or fields (other than
// the leading timestamp, which tolerates parse failures) cannot be recovered
// into a Tick.
var ErrMalformedTick = errors.New("malformed tick record")

// LoadTicks reads a CSV tick stream: header line discarded, five fields per
// record (timestamp_us, price, volume, bid_size, ask_size), empty lines
// skipped. Every loaded tick is stamped with symbol since the simulator
// routes MarketUpdate events by symbol rather than by timestamp-range
// heuristics.
func LoadTicks(path, symbol string) ([]market.Tick, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTickStreamUnreadable, path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: reading header: %v", ErrTickStreamUnreadable, path, err)
	}

	var ticks []market.Tick
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrTickStreamUnreadable, path, err)
		}
		if isBlankRecord(record) {
			continue
		}
		tick, err := parseTick(record, symbol)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		ticks = append(ticks, tick)
	}
	return ticks, nil
}

func isBlankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func parseTick(record []string, symbol string) (market.Tick, error) {
	if len(record) < 5 {
		return market.Tick{}, fmt.Errorf("%w: %v: want 5 fields, got %d", ErrMalformedTick, record, len(record))
	}

	// Parse failures on the timestamp yield 0 rather than aborting the whole
	// load, tolerating a corrupt leading column.
	ts, _ := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)

	price, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	if err != nil {
		return market.Tick{}, fmt.Errorf("%w: parse price: %v", ErrMalformedTick, err)
	}
	volume, err := strconv.ParseInt(strings.TrimSpace(record[2]), 10, 64)
	if err != nil {
		return market.Tick{}, fmt.Errorf("%w: parse volume: %v", ErrMalformedTick, err)
	}
	bidSize, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
	if err != nil {
		return market.Tick{}, fmt.Errorf("%w: parse bid_size: %v", ErrMalformedTick, err)
	}
	askSize, err := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
	if err != nil {
		return market.Tick{}, fmt.Errorf("%w: parse ask_size: %v", ErrMalformedTick, err)
	}

	return market.Tick{
		Symbol:      symbol,
		TimestampUs: ts,
		Price:       price,
		Volume:      volume,
		BidSize:     bidSize,
		AskSize:     askSize,
	}, nil
}
