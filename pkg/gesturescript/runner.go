// Package gesturescript replays scripted touch sequences against a wheel on
// a simulated frame clock.
package gesturescript

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/OpenTraceLab/horizontalwheel/pkg/wheel"
)

// FrameInterval is the simulated display refresh used while waiting.
const FrameInterval = 16 * time.Millisecond

// MaxSettle bounds how long Run keeps ticking after the last command.
const MaxSettle = time.Minute

// ErrNotSettled is returned when the wheel is still moving after MaxSettle.
var ErrNotSettled = errors.New("gesturescript: wheel did not settle")

// Event is one scroll state transition seen during a run.
type Event struct {
	At      time.Duration
	Line    int
	State   wheel.ScrollState
	Radians float64
}

// Trace is the outcome of a run.
type Trace struct {
	Events       []Event
	MarksCrossed int
	Final        float64
	Elapsed      time.Duration
}

// String formats the trace as a table
func (t *Trace) String() string {
	var sb strings.Builder
	for _, ev := range t.Events {
		fmt.Fprintf(&sb, "%8s  line %-3d %-9s %9.3f°\n",
			ev.At, ev.Line, ev.State, wheel.RadiansToDegrees(ev.Radians))
	}
	fmt.Fprintf(&sb, "final %.3f° (%.6f rad) after %s, %d marks crossed\n",
		wheel.RadiansToDegrees(t.Final), t.Final, t.Elapsed, t.MarksCrossed)
	return sb.String()
}

// Runner drives one wheel. It hooks the wheel's listeners once, so create a
// single Runner per wheel.
type Runner struct {
	w *wheel.Wheel

	start time.Time
	now   time.Time
	line  int
	trace *Trace
}

// NewRunner attaches a runner to w.
func NewRunner(w *wheel.Wheel) *Runner {
	r := &Runner{w: w}
	w.OnScrollStateChanged(func(s wheel.ScrollState) {
		if r.trace == nil {
			return
		}
		r.trace.Events = append(r.trace.Events, Event{
			At:      r.now.Sub(r.start),
			Line:    r.line,
			State:   s,
			Radians: w.Radians(),
		})
	})
	w.OnMarkCrossed(func(int) {
		if r.trace != nil {
			r.trace.MarksCrossed++
		}
	})
	return r
}

// Run replays script starting at start, then ticks until the wheel is idle.
func (r *Runner) Run(script *Script, start time.Time) (*Trace, error) {
	r.start, r.now = start, start
	r.trace = &Trace{}
	defer func() { r.trace = nil }()

	for _, cmd := range script.Commands {
		r.line = cmd.Pos.Line
		if err := r.exec(cmd); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", cmd.Pos.Line, cmd, err)
		}
	}
	r.line = 0

	limit := r.now.Add(MaxSettle)
	for r.w.Tick(r.now) {
		if r.now.After(limit) {
			return nil, ErrNotSettled
		}
		r.now = r.now.Add(FrameInterval)
	}

	trace := r.trace
	trace.Final = r.w.Radians()
	trace.Elapsed = r.now.Sub(start)
	return trace, nil
}

func (r *Runner) exec(cmd *Command) error {
	switch {
	case cmd.Down != nil:
		r.w.Down(float32(*cmd.Down))
	case cmd.Move != nil:
		return r.w.Move(float32(*cmd.Move))
	case cmd.Scroll != nil:
		return r.w.Scroll(float32(*cmd.Scroll))
	case cmd.Fling != nil:
		return r.w.Fling(float32(*cmd.Fling), r.now)
	case cmd.Up:
		return r.w.Up(r.now)
	case cmd.Cancel:
		return r.w.Cancel(r.now)
	case cmd.Wait != nil:
		r.wait(time.Duration(*cmd.Wait))
	case cmd.Angle != nil:
		return r.w.SetDegrees(*cmd.Angle)
	}
	return nil
}

// wait advances the clock by d in frame-sized steps, ticking the wheel on
// each frame.
func (r *Runner) wait(d time.Duration) {
	end := r.now.Add(d)
	for r.now.Before(end) {
		step := min(FrameInterval, end.Sub(r.now))
		r.now = r.now.Add(step)
		r.w.Tick(r.now)
	}
}
