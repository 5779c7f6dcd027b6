// Package velocity estimates pointer release velocity from recent samples.
package velocity

import "time"

// DefaultWindow is how far back samples count toward the estimate.
const DefaultWindow = 100 * time.Millisecond

type sample struct {
	x float32
	t time.Time
}

// Tracker keeps the pointer positions of the current drag in a fixed ring
// and fits a line through the ones inside the window.
type Tracker struct {
	Window time.Duration

	ring  [20]sample
	head  int
	count int
}

// Reset forgets all samples. Call it on pointer press.
func (tr *Tracker) Reset() {
	tr.head = 0
	tr.count = 0
}

// Add records the pointer at x at time t.
func (tr *Tracker) Add(x float32, t time.Time) {
	tr.ring[tr.head] = sample{x: x, t: t}
	tr.head = (tr.head + 1) % len(tr.ring)
	if tr.count < len(tr.ring) {
		tr.count++
	}
}

// Velocity returns the horizontal velocity in px/s at now, positive for
// motion to the right. Fewer than two samples in the window give zero.
func (tr *Tracker) Velocity(now time.Time) float32 {
	window := tr.Window
	if window <= 0 {
		window = DefaultWindow
	}
	// Least squares slope of x over t, t measured back from now.
	var n, sumT, sumX, sumTT, sumTX float64
	for i := 0; i < tr.count; i++ {
		s := tr.ring[(tr.head-1-i+len(tr.ring))%len(tr.ring)]
		age := now.Sub(s.t)
		if age > window || age < 0 {
			break
		}
		dt := -age.Seconds()
		n++
		sumT += dt
		sumX += float64(s.x)
		sumTT += dt * dt
		sumTX += dt * float64(s.x)
	}
	if n < 2 {
		return 0
	}
	den := n*sumTT - sumT*sumT
	if den == 0 {
		return 0
	}
	return float32((n*sumTX - sumT*sumX) / den)
}

// Clamp limits the magnitude of v to max and zeroes it below min.
func Clamp(v, minV, maxV float32) float32 {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs < minV:
		return 0
	case abs > maxV:
		if v < 0 {
			return -maxV
		}
		return maxV
	}
	return v
}
