package ui

import (
	"math"
	"testing"
	"time"

	"gioui.org/io/pointer"
	"gioui.org/unit"

	"github.com/OpenTraceLab/horizontalwheel/pkg/renderer"
	"github.com/OpenTraceLab/horizontalwheel/pkg/wheel"
)

var oneDp = unit.Metric{PxPerDp: 1, PxPerSp: 1}

func newTestWidget(t *testing.T) *WheelWidget {
	t.Helper()
	w, err := wheel.New()
	if err != nil {
		t.Fatalf("wheel.New returned error: %v", err)
	}
	return NewWheelWidget(w, renderer.PaletteFor(renderer.ThemeClassic), nil)
}

func TestWidgetDragAndFling(t *testing.T) {
	ww := newTestWidget(t)
	start := time.Unix(0, 0)

	ww.handlePointer(pointer.Press, 100, start, oneDp)
	ww.handlePointer(pointer.Drag, 110, start.Add(10*time.Millisecond), oneDp)
	ww.handlePointer(pointer.Drag, 120, start.Add(20*time.Millisecond), oneDp)
	if got, want := ww.Wheel.Radians(), -20*wheel.ScrollMultiplier; math.Abs(got-want) > 1e-9 {
		t.Fatalf("Radians() after drag = %v, want %v", got, want)
	}
	if ww.Wheel.ScrollState() != wheel.ScrollDragging {
		t.Fatalf("ScrollState() = %s, want DRAGGING", ww.Wheel.ScrollState())
	}

	release := start.Add(20 * time.Millisecond)
	ww.handlePointer(pointer.Release, 120, release, oneDp)
	if ww.Wheel.ScrollState() != wheel.ScrollSettling {
		t.Fatalf("ScrollState() after fast release = %s, want SETTLING", ww.Wheel.ScrollState())
	}
	now := release
	for i := 0; ww.Wheel.Tick(now) && i < 1000; i++ {
		now = now.Add(16 * time.Millisecond)
	}
	want := -20*wheel.ScrollMultiplier - 1000*wheel.FlingMultiplier
	if got := ww.Wheel.Radians(); math.Abs(got-want) > 1e-3 {
		t.Fatalf("Radians() after fling = %v, want %v", got, want)
	}
}

func TestWidgetSlowReleaseDoesNotFling(t *testing.T) {
	ww := newTestWidget(t)
	start := time.Unix(0, 0)
	ww.handlePointer(pointer.Press, 100, start, oneDp)
	ww.handlePointer(pointer.Drag, 130, start.Add(10*time.Millisecond), oneDp)
	ww.handlePointer(pointer.Release, 130, start.Add(time.Second), oneDp)
	if ww.Wheel.ScrollState() != wheel.ScrollIdle {
		t.Fatalf("ScrollState() = %s, want IDLE", ww.Wheel.ScrollState())
	}
}

func TestWidgetIgnoresDragWithoutPress(t *testing.T) {
	ww := newTestWidget(t)
	now := time.Unix(0, 0)
	ww.handlePointer(pointer.Drag, 50, now, oneDp)
	ww.handlePointer(pointer.Release, 50, now, oneDp)
	if ww.Wheel.Radians() != 0 || ww.Wheel.ScrollState() != wheel.ScrollIdle {
		t.Fatalf("wheel moved to %v (%s) without a press", ww.Wheel.Radians(), ww.Wheel.ScrollState())
	}
}

func TestWidgetCancel(t *testing.T) {
	ww := newTestWidget(t)
	now := time.Unix(0, 0)
	ww.handlePointer(pointer.Press, 100, now, oneDp)
	ww.handlePointer(pointer.Drag, 90, now, oneDp)
	ww.handlePointer(pointer.Cancel, 90, now, oneDp)
	if ww.pressed {
		t.Fatal("pressed still set after cancel")
	}
	if ww.Wheel.ScrollState() != wheel.ScrollIdle {
		t.Fatalf("ScrollState() = %s, want IDLE", ww.Wheel.ScrollState())
	}
}

func TestWidgetScalesWidths(t *testing.T) {
	ww := newTestWidget(t)
	ww.applyMetric(unit.Metric{PxPerDp: 2})
	cfg := ww.Wheel.LayoutConfig()
	if cfg.CursorWidth != 2*wheel.DefaultCursorWidth || cfg.ZeroMarkWidth != 2*wheel.DefaultZeroMarkWidth {
		t.Fatalf("widths = %v/%v, want doubled defaults", cfg.CursorWidth, cfg.ZeroMarkWidth)
	}
	ww.applyMetric(unit.Metric{PxPerDp: 1})
	if got := ww.Wheel.LayoutConfig().CursorWidth; got != wheel.DefaultCursorWidth {
		t.Fatalf("CursorWidth = %v, want %v", got, wheel.DefaultCursorWidth)
	}
}

func TestFormatDegrees(t *testing.T) {
	if got := formatDegrees(-12.345); got != "-12.3°" {
		t.Fatalf("formatDegrees(-12.345) = %q, want %q", got, "-12.3°")
	}
}
