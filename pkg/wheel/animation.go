package wheel

import (
	"math"
	"time"
)

// Easing maps linear progress in [0, 1] to eased progress.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// Decelerate starts fast and slows toward the end. A factor of 1 is a
// quadratic ease-out; larger factors decelerate harder.
func Decelerate(factor float64) Easing {
	if factor == 1 {
		return func(t float64) float64 { return 1 - (1-t)*(1-t) }
	}
	return func(t float64) float64 { return 1 - math.Pow(1-t, 2*factor) }
}

// Tween interpolates between two angles over a duration.
type Tween struct {
	From     float64
	To       float64
	Duration time.Duration
	Ease     Easing
}

// At returns the angle at the given fraction of the duration. fraction is
// clamped to [0, 1].
func (tw Tween) At(fraction float64) float64 {
	switch {
	case fraction <= 0:
		return tw.From
	case fraction >= 1:
		return tw.To
	}
	ease := tw.Ease
	if ease == nil {
		ease = Linear
	}
	return tw.From + (tw.To-tw.From)*ease(fraction)
}

// Fraction returns how far along the tween is after elapsed. A zero duration
// is already complete.
func (tw Tween) Fraction(elapsed time.Duration) float64 {
	if tw.Duration <= 0 {
		return 1
	}
	f := float64(elapsed) / float64(tw.Duration)
	return math.Max(0, math.Min(1, f))
}

// SettleDuration scales the angular distance between from and to by perRadian.
func SettleDuration(from, to float64, perRadian time.Duration) time.Duration {
	return time.Duration(math.Abs(to-from) * float64(perRadian))
}

// Animator runs at most one Tween at a time against an external frame clock.
// Starting a new tween cancels the running one.
type Animator struct {
	tween   Tween
	start   time.Time
	running bool
}

// Start cancels any running tween and starts tw at now.
func (a *Animator) Start(tw Tween, now time.Time) {
	a.Cancel()
	a.tween = tw
	a.start = now
	a.running = true
}

// Cancel stops the running tween and reports whether one was running. The
// last angle produced by Step stays in effect.
func (a *Animator) Cancel() bool {
	was := a.running
	a.running = false
	return was
}

// Running reports whether a tween is in progress.
func (a *Animator) Running() bool { return a.running }

// Tween returns the current or most recent tween.
func (a *Animator) Tween() Tween { return a.tween }

// Step returns the angle for now. ok is false when nothing is running. done
// reports that the tween reached its end and stopped; a zero-duration tween
// completes on its first step.
func (a *Animator) Step(now time.Time) (angle float64, done, ok bool) {
	if !a.running {
		return 0, false, false
	}
	f := a.tween.Fraction(now.Sub(a.start))
	angle = a.tween.At(f)
	if f >= 1 {
		a.running = false
		return angle, true, true
	}
	return angle, false, true
}
