package wheel

import (
	"errors"
	"fmt"
	"math"
)

const twoPi = 2 * math.Pi

// ErrNonFinite is returned when an angle is NaN or infinite.
var ErrNonFinite = errors.New("wheel: angle must be finite")

var (
	lockUpper = math.Nextafter(twoPi, 0)
	lockLower = math.Nextafter(-twoPi, 0)
)

// Angle owns the wheel rotation in radians and the policy used to keep it in
// range. The zero value is a free-spinning wheel at angle 0.
type Angle struct {
	radians      float64
	endLock      bool
	onlyPositive bool
	listeners    []func(radians float64)
}

// Radians returns the current rotation.
func (a *Angle) Radians() float64 { return a.radians }

// EndLock reports whether the angle is clamped to (-2π, 2π) instead of wrapping.
func (a *Angle) EndLock() bool { return a.endLock }

// OnlyPositive reports whether the angle is kept in [0, 2π).
func (a *Angle) OnlyPositive() bool { return a.onlyPositive }

// SetEndLock switches between wrapping and clamping at one full turn.
func (a *Angle) SetEndLock(lock bool) {
	a.endLock = lock
}

// SetOnlyPositive toggles the positive-only policy and re-applies it to the
// current angle.
func (a *Angle) SetOnlyPositive(only bool) {
	a.onlyPositive = only
	if only && a.radians < 0 {
		_, _ = a.Set(a.radians)
	}
}

// OnChange registers fn to be called with the new angle after every accepted
// mutation.
func (a *Angle) OnChange(fn func(radians float64)) {
	if fn != nil {
		a.listeners = append(a.listeners, fn)
	}
}

// Limit returns the value Set would store for candidate without storing it.
// locked reports that an end-lock clamp fired.
func (a *Angle) Limit(candidate float64) (value float64, locked bool) {
	if a.endLock {
		switch {
		case candidate >= twoPi:
			return lockUpper, true
		case a.onlyPositive && candidate < 0:
			return 0, true
		case candidate <= -twoPi:
			return lockLower, true
		}
	}
	return Normalize(candidate, a.onlyPositive), false
}

// Set applies the clamping or wrapping policy to candidate, stores the result
// and notifies listeners. locked reports an end-lock clamp; callers must stop
// any running settle animation when it is true.
func (a *Angle) Set(candidate float64) (locked bool, err error) {
	if math.IsNaN(candidate) || math.IsInf(candidate, 0) {
		return false, fmt.Errorf("%w: %v", ErrNonFinite, candidate)
	}
	a.radians, locked = a.Limit(candidate)
	for _, fn := range a.listeners {
		fn(a.radians)
	}
	return locked, nil
}

// Normalize wraps radians into (-2π, 2π) preserving sign, or into [0, 2π) when
// onlyPositive is set. It is idempotent.
func Normalize(radians float64, onlyPositive bool) float64 {
	r := math.Mod(radians, twoPi)
	if onlyPositive && r < 0 {
		r += twoPi
		// A tiny negative input can round up to exactly 2π.
		if r >= twoPi {
			r = 0
		}
	}
	return r
}

// DegreesToRadians converts degrees to radians.
func DegreesToRadians(deg float64) float64 { return deg * math.Pi / 180 }

// RadiansToDegrees converts radians to degrees.
func RadiansToDegrees(rad float64) float64 { return rad * 180 / math.Pi }

// TurnsToRadians converts a fraction of a complete turn to radians.
func TurnsToRadians(turns float64) float64 { return turns * twoPi }

// RadiansToTurns converts radians to a fraction of a complete turn.
func RadiansToTurns(rad float64) float64 { return rad / twoPi }
