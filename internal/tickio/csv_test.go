package tickio

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ticks.csv")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadTicksParsesRecords(t *testing.T) {
	path := writeFixture(t, "Timestamp,Price,Volume,Bid_Size,Ask_Size\n1000,100.50,2000,10,5\n2000,101.25,1500,8,6\n")

	ticks, err := LoadTicks(path, "TICKER")
	if err != nil {
		t.Fatalf("LoadTicks returned error: %v", err)
	}
	if len(ticks) != 2 {
		t.Fatalf("expected 2 ticks, got %d", len(ticks))
	}
	if ticks[0].Symbol != "TICKER" {
		t.Fatalf("expected symbol stamped on every tick, got %s", ticks[0].Symbol)
	}
	if ticks[0].TimestampUs != 1000 || ticks[0].Price != 100.50 {
		t.Fatalf("unexpected first tick: %+v", ticks[0])
	}
	if ticks[1].Volume != 1500 {
		t.Fatalf("unexpected second tick volume: %d", ticks[1].Volume)
	}
}

func TestLoadTicksSkipsBlankLines(t *testing.T) {
	path := writeFixture(t, "Timestamp,Price,Volume,Bid_Size,Ask_Size\n1000,100,10,1,1\n\n2000,101,10,1,1\n")

	ticks, err := LoadTicks(path, "TICKER")
	if err != nil {
		t.Fatalf("LoadTicks returned error: %v", err)
	}
	if len(ticks) != 2 {
		t.Fatalf("expected blank line skipped, got %d ticks", len(ticks))
	}
}

func TestLoadTicksTimestampParseFailureYieldsZero(t *testing.T) {
	path := writeFixture(t, "Timestamp,Price,Volume,Bid_Size,Ask_Size\nnot-a-number,100,10,1,1\n")

	ticks, err := LoadTicks(path, "TICKER")
	if err != nil {
		t.Fatalf("LoadTicks returned error: %v", err)
	}
	if len(ticks) != 1 || ticks[0].TimestampUs != 0 {
		t.Fatalf("expected timestamp parse failure to yield 0, got %+v", ticks)
	}
}

func TestLoadTicksMissingFileIsUnreadable(t *testing.T) {
	_, err := LoadTicks(filepath.Join(t.TempDir(), "missing.csv"), "TICKER")
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadTicksEmptyFileYieldsNoTicks(t *testing.T) {
	path := writeFixture(t, "")

	ticks, err := LoadTicks(path, "TICKER")
	if err != nil {
		t.Fatalf("LoadTicks returned error: %v", err)
	}
	if len(ticks) != 0 {
		t.Fatalf("expected no ticks from empty file, got %d", len(ticks))
	}
}
