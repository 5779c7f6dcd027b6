package wheel

import (
	"errors"
	"fmt"
	"image/color"
)

// Defaults match the stock widget appearance.
const (
	DefaultMaxVisibleMarks = 21
	DefaultNormalMarkWidth = 1
	DefaultZeroMarkWidth   = 2
	DefaultCursorWidth     = 3
	DefaultCursorRadius    = 1
)

var (
	DefaultNormalColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	DefaultActiveColor = color.NRGBA{R: 0x54, G: 0xac, B: 0xf0, A: 0xff}
)

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("wheel: invalid configuration")

// ConfigError describes a rejected configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("wheel: invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// FadeMode selects how marks near the rim are dimmed.
type FadeMode uint8

const (
	// FadeAlpha lowers the alpha channel.
	FadeAlpha FadeMode = iota
	// FadeShade darkens the RGB channels toward black.
	FadeShade
)

func (m FadeMode) String() string {
	switch m {
	case FadeAlpha:
		return "alpha"
	case FadeShade:
		return "shade"
	}
	return fmt.Sprintf("FadeMode(%d)", m)
}

// LayoutConfig is the visual configuration handed to the Engine. Widths are in
// pixels; hosts convert from device independent units before passing them in.
type LayoutConfig struct {
	// MaxVisibleMarks is the number of mark slots across the visible
	// half-turn. Must be odd and at least 3.
	MaxVisibleMarks int

	NormalColor     color.NRGBA
	ActiveColor     color.NRGBA
	ShowActiveRange bool
	Fade            FadeMode

	NormalMarkWidth float32
	ZeroMarkWidth   float32
	CursorWidth     float32
	CursorRadius    float32
}

// DefaultLayoutConfig returns the stock appearance.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		MaxVisibleMarks: DefaultMaxVisibleMarks,
		NormalColor:     DefaultNormalColor,
		ActiveColor:     DefaultActiveColor,
		ShowActiveRange: true,
		Fade:            FadeAlpha,
		NormalMarkWidth: DefaultNormalMarkWidth,
		ZeroMarkWidth:   DefaultZeroMarkWidth,
		CursorWidth:     DefaultCursorWidth,
		CursorRadius:    DefaultCursorRadius,
	}
}

// Validate checks the mark count and widths.
func (c LayoutConfig) Validate() error {
	if err := ValidateMaxVisibleMarks(c.MaxVisibleMarks); err != nil {
		return err
	}
	if c.NormalMarkWidth < 0 || c.ZeroMarkWidth < 0 || c.CursorWidth < 0 || c.CursorRadius < 0 {
		return &ConfigError{Field: "width", Reason: "mark and cursor sizes must not be negative"}
	}
	if c.Fade != FadeAlpha && c.Fade != FadeShade {
		return &ConfigError{Field: "fade", Reason: fmt.Sprintf("unknown mode %d", c.Fade)}
	}
	return nil
}

// MarksCount returns the number of marks around the full circle.
func (c LayoutConfig) MarksCount() int {
	return MarksCountFor(c.MaxVisibleMarks)
}

// ValidateMaxVisibleMarks rejects counts that are even or below 3.
func ValidateMaxVisibleMarks(n int) error {
	if n < 3 {
		return &ConfigError{Field: "maxVisibleMarks", Reason: fmt.Sprintf("must be >= 3, got %d", n)}
	}
	if n%2 == 0 {
		return &ConfigError{Field: "maxVisibleMarks", Reason: fmt.Sprintf("must be odd, got %d", n)}
	}
	return nil
}

// VisibleMarksFor converts a full-circle marks count into the number of
// visible slots. The count must be a multiple of 4 so that the front
// half-turn starts, ends and is centered on a mark.
func VisibleMarksFor(marksCount int) (int, error) {
	if marksCount < 4 {
		return 0, &ConfigError{Field: "marksCount", Reason: fmt.Sprintf("must be >= 4, got %d", marksCount)}
	}
	if marksCount%4 != 0 {
		return 0, &ConfigError{Field: "marksCount", Reason: fmt.Sprintf("must be a multiple of 4, got %d", marksCount)}
	}
	return marksCount/2 + 1, nil
}

// MarksCountFor is the inverse of VisibleMarksFor.
func MarksCountFor(maxVisibleMarks int) int {
	return 2 * (maxVisibleMarks - 1)
}
