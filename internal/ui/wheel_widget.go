package ui

import (
	"image"
	"log/slog"
	"time"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/unit"

	"github.com/OpenTraceLab/horizontalwheel/internal/velocity"
	"github.com/OpenTraceLab/horizontalwheel/pkg/renderer"
	"github.com/OpenTraceLab/horizontalwheel/pkg/wheel"
)

// Fling speeds in dp/s. Slower releases end the drag without a fling.
const (
	minFlingDp = 50
	maxFlingDp = 8000
)

// WheelWidget hosts a wheel.Wheel inside a Gio layout. Mark widths in the
// wheel's layout config are treated as dp and scaled to the window density.
type WheelWidget struct {
	Wheel   *wheel.Wheel
	Palette renderer.Palette
	Logger  *slog.Logger

	tracker  velocity.Tracker
	pressed  bool
	size     image.Point
	pxPerDp  float32
	dpWidths [4]float32
}

// NewWheelWidget wraps w, remembering its current widths as dp values.
func NewWheelWidget(w *wheel.Wheel, p renderer.Palette, logger *slog.Logger) *WheelWidget {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cfg := w.LayoutConfig()
	return &WheelWidget{
		Wheel:    w,
		Palette:  p,
		Logger:   logger,
		dpWidths: [4]float32{cfg.NormalMarkWidth, cfg.ZeroMarkWidth, cfg.CursorWidth, cfg.CursorRadius},
	}
}

// Layout handles pending pointer input, advances a running settle and paints
// the wheel into the full constraint area.
func (ww *WheelWidget) Layout(gtx layout.Context) layout.Dimensions {
	size := gtx.Constraints.Max
	ww.applyMetric(gtx.Metric)
	if size != ww.size {
		ww.size = size
		ww.Wheel.Resize(wheel.Viewport{Width: float32(size.X), Height: float32(size.Y)})
	}

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: ww,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			ww.handlePointer(pe.Kind, pe.Position.X, gtx.Now, gtx.Metric)
		}
	}

	if ww.Wheel.Tick(gtx.Now) {
		gtx.Execute(op.InvalidateCmd{})
	}

	area := clip.Rect{Max: size}.Push(gtx.Ops)
	event.Op(gtx.Ops, ww)
	pointer.CursorGrab.Add(gtx.Ops)
	area.Pop()

	return renderer.PaintWheel(gtx, ww.Wheel.Frame(), ww.Palette)
}

func (ww *WheelWidget) handlePointer(kind pointer.Kind, x float32, now time.Time, m unit.Metric) {
	var err error
	switch kind {
	case pointer.Press:
		ww.pressed = true
		ww.tracker.Reset()
		ww.tracker.Add(x, now)
		ww.Wheel.Down(x)
	case pointer.Drag:
		if !ww.pressed {
			return
		}
		ww.tracker.Add(x, now)
		err = ww.Wheel.Move(x)
	case pointer.Release:
		if !ww.pressed {
			return
		}
		ww.pressed = false
		v := velocity.Clamp(ww.tracker.Velocity(now), float32(m.Dp(minFlingDp)), float32(m.Dp(maxFlingDp)))
		if v != 0 {
			err = ww.Wheel.Fling(v, now)
		}
		if err == nil {
			err = ww.Wheel.Up(now)
		}
	case pointer.Cancel:
		ww.pressed = false
		err = ww.Wheel.Cancel(now)
	}
	if err != nil {
		ww.Logger.Warn("[WHEEL] pointer event ignored", "kind", kind.String(), "err", err)
	}
}

// applyMetric rescales the mark widths when the window density changes.
func (ww *WheelWidget) applyMetric(m unit.Metric) {
	px := m.PxPerDp
	if px <= 0 {
		px = 1
	}
	if px == ww.pxPerDp {
		return
	}
	ww.pxPerDp = px
	cfg := ww.Wheel.LayoutConfig()
	cfg.NormalMarkWidth = ww.dpWidths[0] * px
	cfg.ZeroMarkWidth = ww.dpWidths[1] * px
	cfg.CursorWidth = ww.dpWidths[2] * px
	cfg.CursorRadius = ww.dpWidths[3] * px
	if err := ww.Wheel.SetLayoutConfig(cfg); err != nil {
		ww.Logger.Error("[WHEEL] rescale failed", "err", err)
	}
}
