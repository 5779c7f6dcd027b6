// Package wheel implements a horizontal rotary wheel control: a strip of tick
// marks projected from a cylinder viewed edge-on, scrolled by drag and fling,
// with a fixed cursor at the center.
//
// The package owns the angle, the projection and the gesture state machine.
// Drawing, pointer dispatch, velocity estimation and the frame clock are left
// to the host; see pkg/renderer, internal/ui and internal/tui.
package wheel

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"time"
)

// Options configure a Wheel.
type Options struct {
	Layout LayoutConfig
	// MarksCount, when positive, overrides Layout.MaxVisibleMarks with the
	// equivalent full-circle count.
	MarksCount int

	SnapToMarks  bool
	EndLock      bool
	OnlyPositive bool

	SettlePerRadian time.Duration

	Logger *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithLayoutConfig replaces the visual configuration.
func WithLayoutConfig(cfg LayoutConfig) Option {
	return func(o *Options) { o.Layout = cfg }
}

// WithMaxVisibleMarks sets the number of visible mark slots (odd, >= 3).
func WithMaxVisibleMarks(n int) Option {
	return func(o *Options) {
		o.Layout.MaxVisibleMarks = n
		o.MarksCount = 0
	}
}

// WithMarksCount sets the number of marks around the full circle (a
// multiple of 4).
func WithMarksCount(n int) Option {
	return func(o *Options) { o.MarksCount = n }
}

// WithColors sets the normal and active colors.
func WithColors(normal, active color.NRGBA) Option {
	return func(o *Options) {
		o.Layout.NormalColor = normal
		o.Layout.ActiveColor = active
	}
}

// WithShowActiveRange toggles highlighting of the arc between the zero mark
// and the cursor.
func WithShowActiveRange(show bool) Option {
	return func(o *Options) { o.Layout.ShowActiveRange = show }
}

// WithFade selects how rim marks are dimmed.
func WithFade(mode FadeMode) Option {
	return func(o *Options) { o.Layout.Fade = mode }
}

// WithSnapToMarks makes released and flung rotation settle on a mark.
func WithSnapToMarks(snap bool) Option {
	return func(o *Options) { o.SnapToMarks = snap }
}

// WithEndLock clamps rotation to one full turn either way.
func WithEndLock(lock bool) Option {
	return func(o *Options) { o.EndLock = lock }
}

// WithOnlyPositive keeps the angle in [0, 2π).
func WithOnlyPositive(only bool) Option {
	return func(o *Options) { o.OnlyPositive = only }
}

// WithSettlePerRadian sets the settle duration per radian of travel.
func WithSettlePerRadian(d time.Duration) Option {
	return func(o *Options) { o.SettlePerRadian = d }
}

// WithLogger sets the logger used for gesture diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// State is the persisted form of a Wheel: the angle in radians.
type State struct {
	Radians float64 `json:"radians"`
}

// Wheel ties the angle, the layout engine and the gesture controller
// together. It is not safe for concurrent use; drive it from the UI loop.
type Wheel struct {
	angle   Angle
	engine  *Engine
	gesture *Controller
	logger  *slog.Logger

	onRotation []func(radians float64)
	onMark     []func(index int)
	lastMark   int
}

// New builds a Wheel from the default configuration and opts.
func New(opts ...Option) (*Wheel, error) {
	o := Options{
		Layout:          DefaultLayoutConfig(),
		SettlePerRadian: DefaultSettlePerRadian,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.MarksCount > 0 {
		n, err := VisibleMarksFor(o.MarksCount)
		if err != nil {
			return nil, err
		}
		o.Layout.MaxVisibleMarks = n
	}
	if o.SettlePerRadian < 0 {
		return nil, &ConfigError{Field: "settlePerRadian", Reason: "must not be negative"}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}

	engine, err := NewEngine(o.Layout)
	if err != nil {
		return nil, err
	}
	gc := DefaultGestureConfig(o.Layout.MarksCount())
	gc.SnapToMarks = o.SnapToMarks
	gc.SettlePerRadian = o.SettlePerRadian

	w := &Wheel{engine: engine, logger: o.Logger}
	w.angle.SetEndLock(o.EndLock)
	w.angle.SetOnlyPositive(o.OnlyPositive)
	w.gesture = NewController(&w.angle, gc, o.Logger)
	w.angle.OnChange(w.rotationChanged)
	return w, nil
}

// Radians returns the rotation in radians.
func (w *Wheel) Radians() float64 { return w.angle.Radians() }

// SetRadians rotates the wheel. A non-finite angle is rejected. Hitting the
// end lock cancels any running settle.
func (w *Wheel) SetRadians(r float64) error {
	locked, err := w.angle.Set(r)
	if err != nil {
		return err
	}
	if locked && w.gesture.Animating() {
		// Route through the controller so the state goes idle.
		w.gesture.anim.Cancel()
		w.gesture.setState(ScrollIdle)
	}
	return nil
}

// Degrees returns the rotation in degrees.
func (w *Wheel) Degrees() float64 { return RadiansToDegrees(w.Radians()) }

// SetDegrees rotates the wheel to deg degrees.
func (w *Wheel) SetDegrees(deg float64) error { return w.SetRadians(DegreesToRadians(deg)) }

// Turns returns the rotation as a fraction of a complete turn.
func (w *Wheel) Turns() float64 { return RadiansToTurns(w.Radians()) }

// SetTurns rotates the wheel to the given fraction of a complete turn.
func (w *Wheel) SetTurns(t float64) error { return w.SetRadians(TurnsToRadians(t)) }

// LayoutConfig returns the visual configuration.
func (w *Wheel) LayoutConfig() LayoutConfig { return w.engine.Config() }

// MarksCount returns the number of marks around the full circle.
func (w *Wheel) MarksCount() int { return w.engine.Config().MarksCount() }

// SetMarksCount changes the full-circle mark count. It must be a multiple of 4.
func (w *Wheel) SetMarksCount(n int) error {
	visible, err := VisibleMarksFor(n)
	if err != nil {
		return err
	}
	return w.SetMaxVisibleMarks(visible)
}

// SetMaxVisibleMarks changes the number of visible slots (odd, >= 3).
func (w *Wheel) SetMaxVisibleMarks(n int) error {
	cfg := w.engine.Config()
	cfg.MaxVisibleMarks = n
	if err := w.engine.Configure(cfg); err != nil {
		return err
	}
	w.gesture.SetMarksCount(cfg.MarksCount())
	w.lastMark = w.markIndex(w.Radians())
	return nil
}

// SetLayoutConfig replaces the whole visual configuration.
func (w *Wheel) SetLayoutConfig(cfg LayoutConfig) error {
	if err := w.engine.Configure(cfg); err != nil {
		return err
	}
	w.gesture.SetMarksCount(cfg.MarksCount())
	w.lastMark = w.markIndex(w.Radians())
	return nil
}

// SetColors changes the normal and active colors.
func (w *Wheel) SetColors(normal, active color.NRGBA) {
	cfg := w.engine.Config()
	cfg.NormalColor, cfg.ActiveColor = normal, active
	if err := w.engine.Configure(cfg); err != nil {
		w.logger.Error("[WHEEL] set colors failed", "err", err)
	}
}

// ShowActiveRange reports whether the active arc is highlighted.
func (w *Wheel) ShowActiveRange() bool { return w.engine.Config().ShowActiveRange }

// SetShowActiveRange toggles highlighting of the active arc.
func (w *Wheel) SetShowActiveRange(show bool) {
	cfg := w.engine.Config()
	cfg.ShowActiveRange = show
	if err := w.engine.Configure(cfg); err != nil {
		w.logger.Error("[WHEEL] set active range failed", "err", err)
	}
}

// SnapToMarks reports whether rotation settles on marks.
func (w *Wheel) SnapToMarks() bool { return w.gesture.Config().SnapToMarks }

// SetSnapToMarks toggles snapping.
func (w *Wheel) SetSnapToMarks(snap bool) { w.gesture.SetSnapToMarks(snap) }

// EndLock reports whether rotation is clamped at one full turn.
func (w *Wheel) EndLock() bool { return w.angle.EndLock() }

// SetEndLock toggles the end lock.
func (w *Wheel) SetEndLock(lock bool) { w.angle.SetEndLock(lock) }

// OnlyPositive reports whether the angle is kept in [0, 2π).
func (w *Wheel) OnlyPositive() bool { return w.angle.OnlyPositive() }

// SetOnlyPositive toggles the positive-only policy.
func (w *Wheel) SetOnlyPositive(only bool) { w.angle.SetOnlyPositive(only) }

// OnRotationChanged registers fn for every accepted angle change.
func (w *Wheel) OnRotationChanged(fn func(radians float64)) {
	if fn != nil {
		w.onRotation = append(w.onRotation, fn)
	}
}

// OnScrollStateChanged registers fn for scroll state transitions.
func (w *Wheel) OnScrollStateChanged(fn func(ScrollState)) {
	w.gesture.OnStateChanged(fn)
}

// OnMarkCrossed registers fn for changes of the mark nearest the cursor.
// index is in [0, MarksCount).
func (w *Wheel) OnMarkCrossed(fn func(index int)) {
	if fn != nil {
		w.onMark = append(w.onMark, fn)
	}
}

// ScrollState returns the current gesture state.
func (w *Wheel) ScrollState() ScrollState { return w.gesture.State() }

// Down starts a touch at x.
func (w *Wheel) Down(x float32) { w.gesture.Down(x) }

// Move drags the touch to x.
func (w *Wheel) Move(x float32) error { return w.gesture.Move(x) }

// Scroll rotates by a scroll distance in pixels.
func (w *Wheel) Scroll(dx float32) error { return w.gesture.Scroll(dx) }

// Fling starts a settle from a release velocity in px/s.
func (w *Wheel) Fling(velocity float32, now time.Time) error {
	return w.gesture.Fling(velocity, now)
}

// Up ends the touch.
func (w *Wheel) Up(now time.Time) error { return w.gesture.Up(now) }

// Cancel aborts the touch.
func (w *Wheel) Cancel(now time.Time) error { return w.gesture.Cancel(now) }

// Tick advances a running settle to now and reports whether the host should
// schedule another frame.
func (w *Wheel) Tick(now time.Time) bool {
	running, err := w.gesture.Tick(now)
	if err != nil {
		w.logger.Error("[WHEEL] settle aborted", "err", err)
	}
	return running
}

// Resize sets the drawing area.
func (w *Wheel) Resize(v Viewport) { w.engine.Resize(v) }

// Viewport returns the drawing area.
func (w *Wheel) Viewport() Viewport { return w.engine.Viewport() }

// Frame lays out the wheel at its current angle. The frame is reused by the
// next call.
func (w *Wheel) Frame() *Frame { return w.engine.Layout(w.Radians()) }

// Save returns the persisted state.
func (w *Wheel) Save() State { return State{Radians: w.Radians()} }

// Restore applies a persisted state.
func (w *Wheel) Restore(s State) error {
	if err := w.SetRadians(s.Radians); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	return nil
}

func (w *Wheel) rotationChanged(radians float64) {
	for _, fn := range w.onRotation {
		fn(radians)
	}
	if idx := w.markIndex(radians); idx != w.lastMark {
		w.lastMark = idx
		for _, fn := range w.onMark {
			fn(idx)
		}
	}
}

func (w *Wheel) markIndex(radians float64) int {
	n := w.MarksCount()
	step := twoPi / float64(n)
	idx := int(math.Round(radians/step)) % n
	if idx < 0 {
		idx += n
	}
	return idx
}
