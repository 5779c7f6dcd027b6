package wheel

import (
	"bytes"
	"errors"
	"image/color"
	"log/slog"
	"math"
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if w.MarksCount() != 40 {
		t.Fatalf("MarksCount() = %d, want 40", w.MarksCount())
	}
	if !w.ShowActiveRange() || w.SnapToMarks() || w.EndLock() || w.OnlyPositive() {
		t.Fatalf("unexpected default flags: active=%v snap=%v lock=%v positive=%v",
			w.ShowActiveRange(), w.SnapToMarks(), w.EndLock(), w.OnlyPositive())
	}
	if w.ScrollState() != ScrollIdle {
		t.Fatalf("ScrollState() = %s, want IDLE", w.ScrollState())
	}
}

func TestNewRejectsBadCounts(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"marks count not a multiple of four", WithMarksCount(42)},
		{"even visible marks", WithMaxVisibleMarks(4)},
		{"too few visible marks", WithMaxVisibleMarks(1)},
		{"negative settle", WithSettlePerRadian(-time.Second)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opt); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("New error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestWheelUnits(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := w.SetDegrees(90); err != nil {
		t.Fatalf("SetDegrees returned error: %v", err)
	}
	if math.Abs(w.Degrees()-90) > 1e-9 {
		t.Fatalf("Degrees() = %v, want 90", w.Degrees())
	}
	if err := w.SetTurns(0.25); err != nil {
		t.Fatalf("SetTurns returned error: %v", err)
	}
	if math.Abs(w.Radians()-math.Pi/2) > 1e-12 {
		t.Fatalf("Radians() = %v, want π/2", w.Radians())
	}
	if math.Abs(w.Turns()-0.25) > 1e-12 {
		t.Fatalf("Turns() = %v, want 0.25", w.Turns())
	}
}

func TestWheelCallbacks(t *testing.T) {
	w, err := New(WithSnapToMarks(true))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	var rotations []float64
	var states []ScrollState
	var marks []int
	w.OnRotationChanged(func(r float64) { rotations = append(rotations, r) })
	w.OnScrollStateChanged(func(s ScrollState) { states = append(states, s) })
	w.OnMarkCrossed(func(i int) { marks = append(marks, i) })

	step := twoPi / 40
	if err := w.SetRadians(3 * step); err != nil {
		t.Fatalf("SetRadians returned error: %v", err)
	}
	if len(rotations) != 1 || rotations[0] != w.Radians() {
		t.Fatalf("rotations = %v, want [%v]", rotations, w.Radians())
	}
	if len(marks) != 1 || marks[0] != 3 {
		t.Fatalf("marks = %v, want [3]", marks)
	}

	// Going below zero wraps the mark index.
	if err := w.SetRadians(-step); err != nil {
		t.Fatalf("SetRadians returned error: %v", err)
	}
	if marks[len(marks)-1] != 39 {
		t.Fatalf("last mark = %d, want 39", marks[len(marks)-1])
	}

	w.Down(0)
	if err := w.Scroll(-1); err != nil {
		t.Fatalf("Scroll returned error: %v", err)
	}
	now := time.Unix(0, 0)
	if err := w.Up(now); err != nil {
		t.Fatalf("Up returned error: %v", err)
	}
	for w.Tick(now) {
		now = now.Add(16 * time.Millisecond)
	}
	if len(states) < 3 || states[0] != ScrollDragging || states[len(states)-1] != ScrollIdle {
		t.Fatalf("states = %v, want DRAGGING ... IDLE", states)
	}
	if math.Abs(w.Radians()+step) > 1e-9 {
		t.Fatalf("Radians() = %v, want %v", w.Radians(), -step)
	}
}

func TestWheelSaveRestore(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := w.SetRadians(1.25); err != nil {
		t.Fatalf("SetRadians returned error: %v", err)
	}
	s := w.Save()

	other, err := New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := other.Restore(s); err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	if other.Radians() != 1.25 {
		t.Fatalf("restored Radians() = %v, want 1.25", other.Radians())
	}
	if err := other.Restore(State{Radians: math.NaN()}); !errors.Is(err, ErrNonFinite) {
		t.Fatalf("Restore(NaN) error = %v, want ErrNonFinite", err)
	}
	if other.Radians() != 1.25 {
		t.Fatalf("Radians() = %v after failed restore, want 1.25", other.Radians())
	}
}

func TestWheelSetMarksCount(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := w.SetMarksCount(80); err != nil {
		t.Fatalf("SetMarksCount returned error: %v", err)
	}
	if w.LayoutConfig().MaxVisibleMarks != 41 {
		t.Fatalf("MaxVisibleMarks = %d, want 41", w.LayoutConfig().MaxVisibleMarks)
	}
	if w.gesture.Config().MarksCount != 80 {
		t.Fatalf("gesture MarksCount = %d, want 80", w.gesture.Config().MarksCount)
	}
	if err := w.SetMarksCount(30); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("SetMarksCount(30) error = %v, want ErrInvalidConfig", err)
	}
	if w.MarksCount() != 80 {
		t.Fatalf("MarksCount() = %d after rejected change, want 80", w.MarksCount())
	}
}

func TestWheelOnlyPositive(t *testing.T) {
	w, err := New(WithOnlyPositive(true))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := w.SetRadians(-math.Pi / 2); err != nil {
		t.Fatalf("SetRadians returned error: %v", err)
	}
	if got := w.Radians(); math.Abs(got-3*math.Pi/2) > 1e-12 {
		t.Fatalf("Radians() = %v, want 3π/2", got)
	}
}

func TestWheelEndLockCancelsSettle(t *testing.T) {
	w, err := New(WithEndLock(true))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	now := time.Unix(0, 0)
	if err := w.Fling(-3000, now); err != nil {
		t.Fatalf("Fling returned error: %v", err)
	}
	if w.ScrollState() != ScrollSettling {
		t.Fatalf("ScrollState() = %s, want SETTLING", w.ScrollState())
	}
	if err := w.SetRadians(10); err != nil {
		t.Fatalf("SetRadians returned error: %v", err)
	}
	if w.ScrollState() != ScrollIdle {
		t.Fatalf("ScrollState() = %s after hitting the lock, want IDLE", w.ScrollState())
	}
	if w.Tick(now.Add(time.Second)) {
		t.Fatal("Tick reported a running settle after the lock")
	}
}

func TestWheelFrame(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	w.Resize(Viewport{Width: 400, Height: 60})
	f := w.Frame()
	if f.ZeroIndex == NoMark {
		t.Fatal("ZeroIndex = NoMark at angle 0")
	}
	if len(f.Marks) == 0 {
		t.Fatal("frame has no marks")
	}
}

func TestWheelSetColorsAndActiveRange(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	w, err := New(WithLogger(logger))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	normal := color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}
	active := color.NRGBA{R: 0xff, G: 0xb0, A: 0xff}
	w.SetColors(normal, active)
	cfg := w.LayoutConfig()
	if cfg.NormalColor != normal || cfg.ActiveColor != active {
		t.Fatalf("colors = %v/%v, want %v/%v", cfg.NormalColor, cfg.ActiveColor, normal, active)
	}

	w.SetShowActiveRange(false)
	if w.ShowActiveRange() {
		t.Fatal("ShowActiveRange() = true, want false")
	}
	w.Resize(Viewport{Width: 400, Height: 60})
	if err := w.SetRadians(0.5); err != nil {
		t.Fatalf("SetRadians returned error: %v", err)
	}
	if f := w.Frame(); f.ColorSwitches != [3]int{NoMark, NoMark, NoMark} {
		t.Fatalf("ColorSwitches = %v with the active range off, want all NoMark", f.ColorSwitches)
	}
	if f := w.Frame(); f.CursorColor != active {
		t.Fatalf("CursorColor = %v, want %v", f.CursorColor, active)
	}
	if bytes.Contains(buf.Bytes(), []byte("level=ERROR")) {
		t.Fatalf("unexpected error log: %s", buf.String())
	}
}
