package indicator

import "testing"

func TestVWAPNotReadyBeforeVolume(t *testing.T) {
	v := NewVWAP()
	if got := v.Value(); got != 0 {
		t.Fatalf("expected 0 before any volume, got %v", got)
	}
}

func TestVWAPWeightedAverage(t *testing.T) {
	v := NewVWAP()
	v.Update(1000, 10, 100) // 1000 px*vol, 100 vol
	v.Update(2000, 20, 100) // +2000 px*vol, +100 vol
	got := v.Value()
	want := 15.0 // (1000+2000)/200
	if got != want {
		t.Fatalf("expected vwap %v, got %v", want, got)
	}
}

func TestVWAPResetClearsAccumulators(t *testing.T) {
	v := NewVWAP()
	v.Update(1000, 10, 100)
	v.Reset()
	if got := v.Value(); got != 0 {
		t.Fatalf("expected 0 after reset, got %v", got)
	}
}

func TestVWAPAboveRequiresPositiveVWAP(t *testing.T) {
	v := NewVWAP()
	if v.Above(10) {
		t.Fatalf("expected Above false before warmup")
	}
	v.Update(1000, 10, 100)
	if !v.Above(11) {
		t.Fatalf("expected price above vwap to report true")
	}
	if v.Above(9) {
		t.Fatalf("expected price below vwap to report false")
	}
}
