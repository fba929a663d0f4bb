package highlight

// Differ accumulates per-frame change magnitudes from a sequential stream of
// grayscale frames. The magnitude for frame i is the sum of absolute
// per-pixel intensity differences against frame i-1, unnormalized: larger
// resolutions produce larger raw magnitudes.
type Differ struct {
	prev []byte
}

// Push consumes the next frame and returns its change magnitude. The first
// frame has no predecessor and returns ok=false.
func (d *Differ) Push(frame []byte) (mag float64, ok bool) {
	if d.prev == nil {
		d.prev = make([]byte, len(frame))
		copy(d.prev, frame)
		return 0, false
	}

	n := len(frame)
	if len(d.prev) < n {
		n = len(d.prev)
	}
	var sum uint64
	for i := 0; i < n; i++ {
		a, b := frame[i], d.prev[i]
		if a > b {
			sum += uint64(a - b)
		} else {
			sum += uint64(b - a)
		}
	}
	copy(d.prev, frame)
	return float64(sum), true
}
