package wheel

import (
	"image"
	"image/color"
	"math"
)

// Tunables for the cylinder illusion.
const (
	AlphaRange = 0.7
	ScaleRange = 0.1

	NormalMarkRelativeHeight = 0.6
	ZeroMarkRelativeHeight   = 0.8
	CursorRelativeHeight     = 1.0
)

// Sentinels used in a Frame.
const (
	// GapHidden marks a slot that is not visible in the current frame. Every
	// slot after it is hidden too.
	GapHidden float32 = -1
	// NoMark is used for ZeroIndex and unused ColorSwitches entries.
	NoMark = -1
)

// phaseEpsilon is the phase below which an angle counts as resting on a mark.
const phaseEpsilon = 1e-9

// Insets is viewport padding in pixels.
type Insets struct {
	Left, Top, Right, Bottom float32
}

// Viewport is the drawing area handed to the Engine on resize.
type Viewport struct {
	Width, Height float32
	Padding       Insets
}

// ContentWidth is the width left after horizontal padding.
func (v Viewport) ContentWidth() float32 { return v.Width - v.Padding.Left - v.Padding.Right }

// ContentHeight is the height left after vertical padding.
func (v Viewport) ContentHeight() float32 { return v.Height - v.Padding.Top - v.Padding.Bottom }

// Empty reports a degenerate viewport that cannot hold any marks.
func (v Viewport) Empty() bool { return v.ContentWidth() <= 0 || v.ContentHeight() <= 0 }

// Mark is one entry of a frame's draw list, ordered left to right.
type Mark struct {
	Index  int
	X      float32
	Top    float32
	Bottom float32
	Width  float32
	Color  color.NRGBA
	Zero   bool
}

// Frame is the projected state of the wheel for one draw. The slices are
// owned by the Engine and reused by the next Layout call.
type Frame struct {
	// Gaps holds the horizontal distance from the previous visible mark (or
	// the left content edge) to each slot. GapHidden ends the visible run.
	// When the last slot is hidden the visible gaps fall short of the content
	// width by Trailing; use Span for the full width.
	Gaps []float32
	// Fades holds the brightness factor per slot, 1 facing the viewer.
	Fades []float32
	// Scales holds the height factor per slot.
	Scales []float32
	// ZeroIndex is the slot of the mark at angle 0, or NoMark.
	ZeroIndex int
	// ColorSwitches are slot indices where the draw color toggles between
	// normal and active. Unused entries hold NoMark.
	ColorSwitches [3]int
	// Trailing is the space between the last visible mark and the right
	// content edge. Visible gaps plus Trailing span the content width.
	Trailing float32

	Cursor       image.Rectangle
	CursorRadius int
	CursorColor  color.NRGBA

	Marks []Mark
}

// Alpha returns the 0-255 alpha for slot i.
func (f *Frame) Alpha(i int) uint8 {
	return uint8(255 * f.Fades[i])
}

// Visible returns the number of visible slots.
func (f *Frame) Visible() int {
	for i, g := range f.Gaps {
		if g == GapHidden {
			return i
		}
	}
	return len(f.Gaps)
}

// Span sums the visible gaps and the trailing space.
func (f *Frame) Span() float32 {
	var sum float32
	for _, g := range f.Gaps {
		if g == GapHidden {
			break
		}
		sum += g
	}
	return sum + f.Trailing
}

// Engine projects an angle onto a strip of marks. It keeps fixed-size buffers
// sized to MaxVisibleMarks so that Layout does not allocate.
type Engine struct {
	cfg      LayoutConfig
	viewport Viewport

	normalMarkHeight float32
	zeroMarkHeight   float32
	cursor           image.Rectangle

	raw   []float64
	frame Frame
}

// NewEngine validates cfg and allocates the frame buffers.
func NewEngine(cfg LayoutConfig) (*Engine, error) {
	e := &Engine{}
	if err := e.Configure(cfg); err != nil {
		return nil, err
	}
	return e, nil
}

// Config returns the active configuration.
func (e *Engine) Config() LayoutConfig { return e.cfg }

// Configure replaces the visual configuration. Buffers are reallocated only
// when the mark count changes.
func (e *Engine) Configure(cfg LayoutConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	n := cfg.MaxVisibleMarks
	if len(e.frame.Gaps) != n {
		e.frame.Gaps = make([]float32, n)
		e.frame.Fades = make([]float32, n)
		e.frame.Scales = make([]float32, n)
		e.frame.Marks = make([]Mark, 0, n)
		e.raw = make([]float64, n)
	}
	e.cfg = cfg
	e.Resize(e.viewport)
	return nil
}

// Step is the angular distance between neighbouring marks.
func (e *Engine) Step() float64 {
	return math.Pi / float64(e.cfg.MaxVisibleMarks-1)
}

// Viewport returns the size last passed to Resize.
func (e *Engine) Viewport() Viewport { return e.viewport }

// Resize recomputes the mark heights and the cursor rectangle. Neither
// depends on the angle, so they are cached until the next resize.
func (e *Engine) Resize(v Viewport) {
	e.viewport = v
	if v.Empty() {
		e.normalMarkHeight = 0
		e.zeroMarkHeight = 0
		e.cursor = image.Rectangle{}
		return
	}
	h := v.ContentHeight()
	e.normalMarkHeight = float32(math.Floor(float64(h * NormalMarkRelativeHeight)))
	e.zeroMarkHeight = float32(math.Floor(float64(h * ZeroMarkRelativeHeight)))

	contentH := int(h)
	cursorH := int(h * CursorRelativeHeight)
	cursorW := int(math.Round(float64(e.cfg.CursorWidth)))
	top := int(v.Padding.Top) + (contentH-cursorH)/2
	left := int(v.Padding.Left) + (int(v.ContentWidth())-cursorW)/2
	e.cursor = image.Rect(left, top, left+cursorW, top+cursorH)
}

// Layout computes the frame for the given angle. The returned frame is valid
// until the next call to Layout, Configure or Resize.
func (e *Engine) Layout(radians float64) *Frame {
	f := &e.frame
	f.reset()
	f.CursorColor = e.cfg.ActiveColor
	f.CursorRadius = int(math.Round(float64(e.cfg.CursorRadius)))
	if e.viewport.Empty() {
		return f
	}
	f.Cursor = e.cursor

	step := e.Step()
	offset := math.Mod(twoPi-radians, step)
	if offset < 0 {
		offset += step
	}
	// Angles on a mark leave rounding noise in the phase.
	if offset < phaseEpsilon || step-offset < phaseEpsilon {
		offset = 0
	}
	e.setupGaps(step, offset)
	e.setupFades(step, offset)
	f.ZeroIndex = zeroIndex(radians, step, offset, f.Visible())
	if e.cfg.ShowActiveRange {
		f.ColorSwitches = colorSwitches(radians, e.cfg.MaxVisibleMarks, f.ZeroIndex)
	}
	e.buildMarks()
	return f
}

func (f *Frame) reset() {
	for i := range f.Gaps {
		f.Gaps[i] = GapHidden
		f.Fades[i] = 0
		f.Scales[i] = 0
	}
	f.ZeroIndex = NoMark
	f.ColorSwitches = [3]int{NoMark, NoMark, NoMark}
	f.Trailing = 0
	f.Cursor = image.Rectangle{}
	f.Marks = f.Marks[:0]
}

// setupGaps spaces marks by the sine of the midpoint between neighbours, so
// they bunch up near the rims and spread out in the middle.
func (e *Engine) setupGaps(step, offset float64) {
	gaps := e.frame.Gaps
	n := len(gaps)

	raw := e.raw
	raw[0] = math.Sin(offset / 2)
	sum := raw[0]
	a := offset + step/2
	for i := 1; i < n-1; i++ {
		raw[i] = math.Sin(a)
		sum += raw[i]
		a += step
	}
	lastGap := math.Sin(math.Pi - (step-offset)/2)
	sum += lastGap
	if sum <= 0 {
		return
	}

	k := float64(e.viewport.ContentWidth()) / sum
	for i := 0; i < n-1; i++ {
		gaps[i] = float32(raw[i] * k)
	}
	if offset == 0 {
		gaps[n-1] = float32(lastGap * k)
	} else {
		gaps[n-1] = GapHidden
		e.frame.Trailing = float32(lastGap * k)
	}
}

func (e *Engine) setupFades(step, offset float64) {
	a := offset
	for i := range e.frame.Fades {
		s := math.Sin(a)
		e.frame.Fades[i] = float32(1 - AlphaRange*(1-s))
		e.frame.Scales[i] = float32(1 - ScaleRange*(1-s))
		a += step
	}
}

// zeroIndex finds the slot holding the mark at angle 0. The front hemisphere
// spans [0, π] left to right and the zero mark sits at π/2 - radians.
func zeroIndex(radians, step, offset float64, visible int) int {
	norm := math.Mod(radians+math.Pi/2, twoPi)
	if norm < 0 {
		norm += twoPi
	}
	// Snap the rims so a zero mark resting on either edge stays visible.
	switch {
	case twoPi-norm < phaseEpsilon:
		norm = 0
	case norm > math.Pi && norm-math.Pi < phaseEpsilon:
		norm = math.Pi
	}
	if norm > math.Pi {
		return NoMark
	}
	// offset is the zero mark's position modulo step, so this quotient is an
	// integer up to rounding.
	idx := int(math.Round((math.Pi - norm - offset) / step))
	if idx < 0 || idx >= visible {
		return NoMark
	}
	return idx
}

// colorSwitches returns the slots where the color toggles so that the arc
// between the zero mark and the center cursor is painted active.
func colorSwitches(radians float64, maxVisible, zero int) [3]int {
	middle := float64(maxVisible-1) / 2
	middleFloor := int(math.Floor(middle))
	middleCeil := int(math.Ceil(middle))
	switch {
	case radians > 3*math.Pi/2:
		return [3]int{0, middleFloor, zero}
	case radians >= 0:
		return [3]int{max(0, zero), middleFloor, NoMark}
	case radians < -3*math.Pi/2:
		return [3]int{0, zero, middleCeil}
	default:
		return [3]int{middleCeil, zero, NoMark}
	}
}

func (e *Engine) buildMarks() {
	f := &e.frame
	v := e.viewport
	contentH := v.ContentHeight()
	x := v.Padding.Left
	active := false
	next := 0
	for i, gap := range f.Gaps {
		if gap == GapHidden {
			break
		}
		x += gap
		for next < len(f.ColorSwitches) && i == f.ColorSwitches[next] {
			active = !active
			next++
		}

		m := Mark{Index: i, X: x}
		var height float32
		if i == f.ZeroIndex {
			m.Zero = true
			m.Width = e.cfg.ZeroMarkWidth
			height = e.zeroMarkHeight * f.Scales[i]
			m.Color = e.fade(e.cfg.ActiveColor, f.Fades[i])
		} else {
			m.Width = e.cfg.NormalMarkWidth
			height = e.normalMarkHeight * f.Scales[i]
			c := e.cfg.NormalColor
			if active {
				c = e.cfg.ActiveColor
			}
			m.Color = e.fade(c, f.Fades[i])
		}
		m.Top = v.Padding.Top + (contentH-height)/2
		m.Bottom = m.Top + height
		f.Marks = append(f.Marks, m)
	}
}

func (e *Engine) fade(c color.NRGBA, factor float32) color.NRGBA {
	switch e.cfg.Fade {
	case FadeShade:
		c.R = uint8(float32(c.R) * factor)
		c.G = uint8(float32(c.G) * factor)
		c.B = uint8(float32(c.B) * factor)
	default:
		c.A = uint8(float32(c.A) * factor)
	}
	return c
}
