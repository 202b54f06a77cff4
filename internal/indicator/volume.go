package indicator

const volumeHistoryCapacity = 20

type volumePoint struct {
	ts     int64
	volume float64
}

// VolumeTracker keeps a bounded ring of recent volumes and derives the
// average and relative-volume readings the entry predicate depends on.
type VolumeTracker struct {
	history []volumePoint
}

// NewVolumeTracker builds an empty volume ring.
func NewVolumeTracker() *VolumeTracker { return &VolumeTracker{} }

// Update appends one (ts, volume) observation, dropping the oldest entry once
// the ring exceeds its 20-element capacity.
func (v *VolumeTracker) Update(ts int64, volume float64) {
	v.history = append(v.history, volumePoint{ts: ts, volume: volume})
	if len(v.history) > volumeHistoryCapacity {
		v.history = v.history[len(v.history)-volumeHistoryCapacity:]
	}
}

// AverageVolume returns the mean of the last min(n, len) volumes, or 0 when
// fewer than two observations exist.
func (v *VolumeTracker) AverageVolume(n int) float64 {
	if len(v.history) < 2 {
		return 0
	}
	count := n
	if count > len(v.history) {
		count = len(v.history)
	}
	var sum float64
	for _, p := range v.history[len(v.history)-count:] {
		sum += p.volume
	}
	return sum / float64(count)
}

// RelativeVolume returns the last volume divided by the 20-period average,
// 0 when the average is unavailable or zero.
func (v *VolumeTracker) RelativeVolume() float64 {
	avg := v.AverageVolume(volumeHistoryCapacity)
	if avg == 0 || len(v.history) == 0 {
		return 0
	}
	last := v.history[len(v.history)-1].volume
	return last / avg
}
