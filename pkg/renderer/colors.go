package renderer

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/OpenTraceLab/horizontalwheel/pkg/wheel"
)

// ColorTheme selects a wheel palette
type ColorTheme int

const (
	ThemeClassic ColorTheme = iota
	ThemeLight
	ThemeNord
)

// ThemeNames maps theme enum to display name
var ThemeNames = map[ColorTheme]string{
	ThemeClassic: "Classic",
	ThemeLight:   "Light",
	ThemeNord:    "Nord",
}

// Palette holds the colors used to paint a wheel
type Palette struct {
	Background color.NRGBA
	Normal     color.NRGBA
	Active     color.NRGBA
}

var palettes = map[ColorTheme]Palette{
	ThemeClassic: {
		Background: color.NRGBA{R: 0x20, G: 0x22, B: 0x26, A: 0xff},
		Normal:     wheel.DefaultNormalColor,
		Active:     wheel.DefaultActiveColor,
	},
	ThemeLight: {
		Background: color.NRGBA{R: 0xf4, G: 0xf4, B: 0xf4, A: 0xff},
		Normal:     color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff},
		Active:     color.NRGBA{R: 0x1e, G: 0x6f, B: 0xc8, A: 0xff},
	},
	ThemeNord: {
		Background: color.NRGBA{R: 46, G: 52, B: 64, A: 255},   // Nord0
		Normal:     color.NRGBA{R: 216, G: 222, B: 233, A: 255}, // Nord4
		Active:     color.NRGBA{R: 136, G: 192, B: 208, A: 255}, // Nord8
	},
}

// PaletteFor returns the palette for a theme, falling back to Classic.
func PaletteFor(theme ColorTheme) Palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes[ThemeClassic]
}

// String returns the display name
func (t ColorTheme) String() string {
	if name, ok := ThemeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ColorTheme(%d)", int(t))
}

// Next cycles to the following theme
func (t ColorTheme) Next() ColorTheme {
	return (t + 1) % ColorTheme(len(ThemeNames))
}

// ParseTheme looks a theme up by display name, case-insensitively. An empty
// name is Classic.
func ParseTheme(name string) (ColorTheme, error) {
	if name == "" {
		return ThemeClassic, nil
	}
	for t, n := range ThemeNames {
		if strings.EqualFold(n, name) {
			return t, nil
		}
	}
	return ThemeClassic, fmt.Errorf("renderer: unknown theme %q", name)
}
