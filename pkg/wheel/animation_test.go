package wheel

import (
	"testing"
	"time"
)

func TestTweenEndpoints(t *testing.T) {
	tw := Tween{From: 1, To: 3, Duration: time.Second, Ease: Decelerate(DefaultDecelerateFactor)}
	if got := tw.At(0); got != 1 {
		t.Fatalf("At(0) = %v, want 1", got)
	}
	if got := tw.At(1); got != 3 {
		t.Fatalf("At(1) = %v, want 3", got)
	}
	if got := tw.At(-5); got != 1 {
		t.Fatalf("At(-5) = %v, want 1", got)
	}
	if got := tw.At(7); got != 3 {
		t.Fatalf("At(7) = %v, want 3", got)
	}
}

func TestDecelerateIsMonotonic(t *testing.T) {
	for _, factor := range []float64{1, DefaultDecelerateFactor, 3} {
		ease := Decelerate(factor)
		prev := ease(0)
		if prev != 0 {
			t.Fatalf("factor %v: ease(0) = %v, want 0", factor, prev)
		}
		for i := 1; i <= 100; i++ {
			v := ease(float64(i) / 100)
			if v < prev {
				t.Fatalf("factor %v: ease not monotonic at %d: %v < %v", factor, i, v, prev)
			}
			prev = v
		}
		if prev != 1 {
			t.Fatalf("factor %v: ease(1) = %v, want 1", factor, prev)
		}
		if ease(0.5) <= 0.5 {
			t.Fatalf("factor %v: ease(0.5) = %v, want > 0.5", factor, ease(0.5))
		}
	}
}

func TestFractionZeroDuration(t *testing.T) {
	tw := Tween{From: 0, To: 1}
	if got := tw.Fraction(0); got != 1 {
		t.Fatalf("Fraction(0) = %v, want 1", got)
	}
	tw.Duration = 100 * time.Millisecond
	if got := tw.Fraction(50 * time.Millisecond); got != 0.5 {
		t.Fatalf("Fraction(50ms) = %v, want 0.5", got)
	}
	if got := tw.Fraction(-time.Second); got != 0 {
		t.Fatalf("Fraction(-1s) = %v, want 0", got)
	}
}

func TestAnimatorStartCancelsPrevious(t *testing.T) {
	var a Animator
	now := time.Unix(0, 0)
	a.Start(Tween{From: 0, To: 10, Duration: time.Second}, now)
	a.Start(Tween{From: 5, To: 6, Duration: time.Second}, now)

	angle, done, ok := a.Step(now.Add(2 * time.Second))
	if !ok || !done {
		t.Fatalf("Step = %v, done=%v ok=%v, want done", angle, done, ok)
	}
	if angle != 6 {
		t.Fatalf("Step angle = %v, want 6 from the second tween", angle)
	}
	if a.Running() {
		t.Fatal("Running() = true after completion")
	}
}

func TestAnimatorStepAfterCancel(t *testing.T) {
	var a Animator
	now := time.Unix(0, 0)
	if a.Cancel() {
		t.Fatal("Cancel() on idle animator = true")
	}
	a.Start(Tween{From: 0, To: 1, Duration: time.Second}, now)
	if !a.Cancel() {
		t.Fatal("Cancel() on running animator = false")
	}
	if _, _, ok := a.Step(now.Add(time.Second)); ok {
		t.Fatal("Step after Cancel returned ok")
	}
}

func TestSettleDuration(t *testing.T) {
	if got := SettleDuration(1, -1, 500*time.Millisecond); got != time.Second {
		t.Fatalf("SettleDuration(1, -1) = %v, want 1s", got)
	}
	if got := SettleDuration(2, 2, time.Second); got != 0 {
		t.Fatalf("SettleDuration(2, 2) = %v, want 0", got)
	}
}
