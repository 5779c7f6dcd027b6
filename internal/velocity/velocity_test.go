package velocity

import (
	"math"
	"testing"
	"time"
)

func TestTrackerConstantSpeed(t *testing.T) {
	var tr Tracker
	start := time.Unix(0, 0)
	// 1000 px/s sampled every 10ms.
	for i := 0; i <= 10; i++ {
		tr.Add(float32(i*10), start.Add(time.Duration(i)*10*time.Millisecond))
	}
	got := tr.Velocity(start.Add(100 * time.Millisecond))
	if math.Abs(float64(got-1000)) > 1 {
		t.Fatalf("Velocity() = %v, want 1000", got)
	}
}

func TestTrackerIgnoresOldSamples(t *testing.T) {
	var tr Tracker
	start := time.Unix(0, 0)
	// A fast move long ago followed by a pause.
	tr.Add(0, start)
	tr.Add(500, start.Add(10*time.Millisecond))
	tr.Add(500, start.Add(300*time.Millisecond))
	tr.Add(500, start.Add(310*time.Millisecond))
	if got := tr.Velocity(start.Add(320 * time.Millisecond)); got != 0 {
		t.Fatalf("Velocity() = %v, want 0", got)
	}
}

func TestTrackerSingleSample(t *testing.T) {
	var tr Tracker
	now := time.Unix(0, 0)
	tr.Add(10, now)
	if got := tr.Velocity(now); got != 0 {
		t.Fatalf("Velocity() = %v, want 0", got)
	}
	tr.Reset()
	if got := tr.Velocity(now); got != 0 {
		t.Fatalf("Velocity() after Reset = %v, want 0", got)
	}
}

func TestTrackerLeftwardIsNegative(t *testing.T) {
	var tr Tracker
	start := time.Unix(0, 0)
	for i := 0; i < 5; i++ {
		tr.Add(float32(100-i*20), start.Add(time.Duration(i)*20*time.Millisecond))
	}
	if got := tr.Velocity(start.Add(80 * time.Millisecond)); got >= 0 {
		t.Fatalf("Velocity() = %v, want negative", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{10, 0},
		{-10, 0},
		{500, 500},
		{-500, -500},
		{9000, 8000},
		{-9000, -8000},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in, 50, 8000); got != tt.want {
			t.Fatalf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
