package indicator

const macdHistogramCapacity = 10

// MACD cascades a fast and slow EMA into a difference line, itself smoothed
// by a third EMA (the signal line). The histogram (line minus signal) is
// kept as a bounded ring so isExpanding can compare the last two readings.
type MACD struct {
	fast, slow, signal *EMA
	histogram          []float64
}

// NewMACD builds the standard 12/26/9 MACD cascade.
func NewMACD() *MACD {
	return &MACD{
		fast:   NewEMA(12),
		slow:   NewEMA(26),
		signal: NewEMA(9),
	}
}

// Update feeds one price through the cascade and appends a new histogram value.
func (m *MACD) Update(price float64) {
	m.fast.Update(price)
	m.slow.Update(price)
	line := m.fast.Value() - m.slow.Value()
	m.signal.Update(line)

	hist := line - m.signal.Value()
	m.histogram = append(m.histogram, hist)
	if len(m.histogram) > macdHistogramCapacity {
		m.histogram = m.histogram[len(m.histogram)-macdHistogramCapacity:]
	}
}

// Line returns the fast-minus-slow EMA difference.
func (m *MACD) Line() float64 { return m.fast.Value() - m.slow.Value() }

// Signal returns the 9-period EMA of the MACD line.
func (m *MACD) Signal() float64 { return m.signal.Value() }

// Histogram returns the most recent line-minus-signal reading, 0 before the
// first update.
func (m *MACD) Histogram() float64 {
	if len(m.histogram) == 0 {
		return 0
	}
	return m.histogram[len(m.histogram)-1]
}

// IsExpanding reports whether the histogram's last reading strictly exceeds
// the one before it; false with fewer than two readings.
func (m *MACD) IsExpanding() bool {
	if len(m.histogram) < 2 {
		return false
	}
	last := m.histogram[len(m.histogram)-1]
	prev := m.histogram[len(m.histogram)-2]
	return last > prev
}
