package wheel

import (
	"fmt"
	"log/slog"
	"math"
	"time"
)

// Gesture tunables.
const (
	// ScrollMultiplier converts a pixel scroll distance into radians.
	ScrollMultiplier = 0.002
	// FlingMultiplier converts a fling velocity in px/s into radians of travel.
	FlingMultiplier = 0.0004
	// DefaultSettlePerRadian is the settle duration per radian of travel.
	DefaultSettlePerRadian = 500 * time.Millisecond
	// DefaultDecelerateFactor shapes the settle easing curve.
	DefaultDecelerateFactor = 1.4
)

// ScrollState is the gesture state reported to listeners.
type ScrollState uint8

const (
	ScrollIdle ScrollState = iota
	ScrollDragging
	ScrollSettling
)

var scrollStateNames = map[ScrollState]string{
	ScrollIdle:     "IDLE",
	ScrollDragging: "DRAGGING",
	ScrollSettling: "SETTLING",
}

func (s ScrollState) String() string {
	if name, ok := scrollStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ScrollState(%d)", s)
}

// GestureConfig tunes the Controller.
type GestureConfig struct {
	SnapToMarks bool
	// MarksCount is the number of marks around the full circle, used for
	// snap targets.
	MarksCount int

	ScrollMultiplier float64
	FlingMultiplier  float64
	SettlePerRadian  time.Duration
	Ease             Easing
}

// DefaultGestureConfig returns the stock tuning for marksCount marks.
func DefaultGestureConfig(marksCount int) GestureConfig {
	return GestureConfig{
		MarksCount:       marksCount,
		ScrollMultiplier: ScrollMultiplier,
		FlingMultiplier:  FlingMultiplier,
		SettlePerRadian:  DefaultSettlePerRadian,
		Ease:             Decelerate(DefaultDecelerateFactor),
	}
}

// Controller turns abstract touch events into angle changes. It owns the
// settle animation and the scroll state, and must be driven from a single
// goroutine.
type Controller struct {
	angle *Angle
	cfg   GestureConfig
	anim  Animator

	state      ScrollState
	lastTouchX float32

	onState []func(ScrollState)
	logger  *slog.Logger
}

// NewController binds a controller to angle.
func NewController(angle *Angle, cfg GestureConfig, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{angle: angle, cfg: cfg, logger: logger}
}

// State returns the current scroll state.
func (c *Controller) State() ScrollState { return c.state }

// Animating reports whether a settle animation is running.
func (c *Controller) Animating() bool { return c.anim.Running() }

// Config returns the gesture tuning.
func (c *Controller) Config() GestureConfig { return c.cfg }

// SetSnapToMarks toggles snapping released and flung rotation onto marks.
func (c *Controller) SetSnapToMarks(snap bool) { c.cfg.SnapToMarks = snap }

// SetMarksCount updates the snap grid.
func (c *Controller) SetMarksCount(n int) { c.cfg.MarksCount = n }

// OnStateChanged registers fn for scroll state transitions.
func (c *Controller) OnStateChanged(fn func(ScrollState)) {
	if fn != nil {
		c.onState = append(c.onState, fn)
	}
}

// Down starts a touch sequence. A new drag always wins over a settle.
func (c *Controller) Down(x float32) {
	c.lastTouchX = x
	if c.anim.Cancel() {
		c.logger.Debug("[GESTURE] settle interrupted by touch")
		c.setState(ScrollIdle)
	}
}

// Move scrolls by the distance from the previous touch position to x.
func (c *Controller) Move(x float32) error {
	dx := c.lastTouchX - x
	c.lastTouchX = x
	return c.Scroll(dx)
}

// Scroll rotates by a scroll distance in pixels. Positive values come from
// the finger moving left.
func (c *Controller) Scroll(dx float32) error {
	c.anim.Cancel()
	if _, err := c.angle.Set(c.angle.Radians() + float64(dx)*c.cfg.ScrollMultiplier); err != nil {
		return fmt.Errorf("scroll: %w", err)
	}
	c.setState(ScrollDragging)
	return nil
}

// Fling starts a settle toward the angle the velocity would carry the wheel
// to. velocity is in px/s, positive for the finger moving right.
func (c *Controller) Fling(velocity float32, now time.Time) error {
	target := c.angle.Radians() - float64(velocity)*c.cfg.FlingMultiplier
	if c.cfg.SnapToMarks {
		target = c.NearestMark(target)
	}
	if err := c.settleTo(target, now); err != nil {
		return fmt.Errorf("fling: %w", err)
	}
	return nil
}

// Up ends the touch sequence. Without snapping the wheel goes idle; with
// snapping it settles onto the nearest mark. Up during a settle is ignored.
func (c *Controller) Up(now time.Time) error {
	if c.state == ScrollSettling {
		return nil
	}
	if !c.cfg.SnapToMarks {
		c.setState(ScrollIdle)
		return nil
	}
	if err := c.settleTo(c.NearestMark(c.angle.Radians()), now); err != nil {
		return fmt.Errorf("release: %w", err)
	}
	return nil
}

// Cancel is an aborted touch sequence and behaves like Up.
func (c *Controller) Cancel(now time.Time) error {
	return c.Up(now)
}

// Tick advances the settle animation to now and reports whether it is
// still running.
func (c *Controller) Tick(now time.Time) (bool, error) {
	angle, done, ok := c.anim.Step(now)
	if !ok {
		return false, nil
	}
	locked, err := c.angle.Set(angle)
	if err != nil {
		c.anim.Cancel()
		c.setState(ScrollIdle)
		return false, fmt.Errorf("settle: %w", err)
	}
	if locked {
		c.logger.Debug("[GESTURE] end lock reached, settle cancelled", "radians", c.angle.Radians())
		c.anim.Cancel()
		c.setState(ScrollIdle)
		return false, nil
	}
	if done {
		c.setState(ScrollIdle)
		return false, nil
	}
	return true, nil
}

// NearestMark rounds radians to the closest mark angle.
func (c *Controller) NearestMark(radians float64) float64 {
	if c.cfg.MarksCount <= 0 {
		return radians
	}
	step := twoPi / float64(c.cfg.MarksCount)
	return math.Round(radians/step) * step
}

func (c *Controller) settleTo(target float64, now time.Time) error {
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return fmt.Errorf("%w: %v", ErrNonFinite, target)
	}
	from := c.angle.Radians()
	if limited, locked := c.angle.Limit(target); locked && limited == from {
		c.logger.Debug("[GESTURE] already at end lock, settle skipped", "target", target)
		c.anim.Cancel()
		c.setState(ScrollIdle)
		return nil
	}

	tw := Tween{
		From:     from,
		To:       target,
		Duration: SettleDuration(from, target, c.cfg.SettlePerRadian),
		Ease:     c.cfg.Ease,
	}
	c.anim.Start(tw, now)
	if tw.Duration <= 0 {
		// Already settled: apply the single synthetic tick.
		_, err := c.Tick(now)
		return err
	}
	c.logger.Debug("[GESTURE] settle started", "from", from, "to", target, "duration", tw.Duration)
	c.setState(ScrollSettling)
	return nil
}

func (c *Controller) setState(s ScrollState) {
	if c.state == s {
		return
	}
	c.logger.Debug("[GESTURE] scroll state", "from", c.state, "to", s)
	c.state = s
	for _, fn := range c.onState {
		fn(s)
	}
}
