// Package config loads the YAML configuration shared by the wheel commands.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/horizontalwheel/internal/logging"
	"github.com/OpenTraceLab/horizontalwheel/pkg/renderer"
	"github.com/OpenTraceLab/horizontalwheel/pkg/wheel"
)

// Config is the top-level YAML configuration.
//
// Defaults and validation live here so the commands can assume a
// well-formed config.
type Config struct {
	Wheel   WheelConfig   `yaml:"wheel"`
	Logging LoggingConfig `yaml:"logging"`
}

// WheelConfig is the user-facing wheel configuration.
type WheelConfig struct {
	// MarksCount and MaxVisibleMarks are alternatives. Zero means unset;
	// when both are given they must describe the same wheel. With neither the
	// wheel has 40 marks.
	MarksCount      int `yaml:"marks_count,omitempty"`
	MaxVisibleMarks int `yaml:"max_visible_marks,omitempty"`

	// Theme picks the palette. NormalColor and ActiveColor override it and
	// accept #rrggbb or #aarrggbb.
	Theme       string `yaml:"theme"`
	NormalColor string `yaml:"normal_color,omitempty"`
	ActiveColor string `yaml:"active_color,omitempty"`

	ShowActiveRange bool   `yaml:"show_active_range"`
	Fade            string `yaml:"fade"` // "alpha" or "shade"

	SnapToMarks  bool `yaml:"snap_to_marks"`
	EndLock      bool `yaml:"end_lock"`
	OnlyPositive bool `yaml:"only_positive"`

	SettleMSPerRadian int `yaml:"settle_ms_per_radian"`

	// Sound enables the terminal click on mark crossings.
	Sound bool `yaml:"sound"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a fully-populated Config with defaults.
func DefaultConfig() Config {
	return Config{
		Wheel: WheelConfig{
			Theme:             renderer.ThemeNames[renderer.ThemeClassic],
			ShowActiveRange:   true,
			Fade:              wheel.FadeAlpha.String(),
			SettleMSPerRadian: int(wheel.DefaultSettlePerRadian / time.Millisecond),
		},
		Logging: LoggingConfig{
			Level: string(logging.LevelInfo),
		},
	}
}

// Load reads and parses a YAML config file on top of the defaults. Unknown
// fields are rejected.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path is empty")
	}
	b, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML bytes on top of the defaults.
func Parse(b []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(bytes.TrimSpace(b)) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config yaml: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err == nil {
		return Config{}, fmt.Errorf("decode config yaml: unexpected trailing document")
	}
	return cfg, nil
}

// FlagOverrides carries command line flags. A nil pointer leaves the file
// value alone; a non-nil pointer is applied even when it is a zero value.
type FlagOverrides struct {
	MarksCount      *int
	SnapToMarks     *bool
	EndLock         *bool
	OnlyPositive    *bool
	HideActiveRange *bool
	Theme           *string
	Sound           *bool
	LogLevel        *string
}

// Apply merges the overrides into cfg.
func (o FlagOverrides) Apply(cfg *Config) {
	if cfg == nil {
		return
	}
	if o.MarksCount != nil {
		cfg.Wheel.MarksCount = *o.MarksCount
		cfg.Wheel.MaxVisibleMarks = 0
	}
	if o.SnapToMarks != nil {
		cfg.Wheel.SnapToMarks = *o.SnapToMarks
	}
	if o.EndLock != nil {
		cfg.Wheel.EndLock = *o.EndLock
	}
	if o.OnlyPositive != nil {
		cfg.Wheel.OnlyPositive = *o.OnlyPositive
	}
	if o.HideActiveRange != nil {
		cfg.Wheel.ShowActiveRange = !*o.HideActiveRange
	}
	if o.Theme != nil {
		cfg.Wheel.Theme = *o.Theme
	}
	if o.Sound != nil {
		cfg.Wheel.Sound = *o.Sound
	}
	if o.LogLevel != nil {
		cfg.Logging.Level = *o.LogLevel
	}
}

// Validate checks config invariants and returns a user-friendly error.
// Call it after defaults, file and overrides are applied.
func (c *Config) Validate() error {
	w := c.Wheel
	switch {
	case w.MarksCount < 0:
		return errors.New("wheel.marks_count must be >= 0")
	case w.MaxVisibleMarks < 0:
		return errors.New("wheel.max_visible_marks must be >= 0")
	case w.MarksCount != 0:
		n, err := wheel.VisibleMarksFor(w.MarksCount)
		if err != nil {
			return fmt.Errorf("wheel.marks_count: %w", err)
		}
		if w.MaxVisibleMarks != 0 && w.MaxVisibleMarks != n {
			return fmt.Errorf("wheel.max_visible_marks (%d) does not match wheel.marks_count (%d needs %d)",
				w.MaxVisibleMarks, w.MarksCount, n)
		}
	case w.MaxVisibleMarks != 0:
		if err := wheel.ValidateMaxVisibleMarks(w.MaxVisibleMarks); err != nil {
			return fmt.Errorf("wheel.max_visible_marks: %w", err)
		}
	}

	if _, err := renderer.ParseTheme(w.Theme); err != nil {
		return fmt.Errorf("wheel.theme: %w", err)
	}
	if w.NormalColor != "" {
		if _, err := ParseColor(w.NormalColor); err != nil {
			return fmt.Errorf("wheel.normal_color: %w", err)
		}
	}
	if w.ActiveColor != "" {
		if _, err := ParseColor(w.ActiveColor); err != nil {
			return fmt.Errorf("wheel.active_color: %w", err)
		}
	}
	if _, err := ParseFade(w.Fade); err != nil {
		return fmt.Errorf("wheel.fade: %w", err)
	}
	if w.SettleMSPerRadian < 0 {
		return errors.New("wheel.settle_ms_per_radian must be >= 0")
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// Palette resolves the theme and the color overrides.
func (c *Config) Palette() (renderer.Palette, error) {
	theme, err := renderer.ParseTheme(c.Wheel.Theme)
	if err != nil {
		return renderer.Palette{}, err
	}
	p := renderer.PaletteFor(theme)
	if c.Wheel.NormalColor != "" {
		if p.Normal, err = ParseColor(c.Wheel.NormalColor); err != nil {
			return renderer.Palette{}, err
		}
	}
	if c.Wheel.ActiveColor != "" {
		if p.Active, err = ParseColor(c.Wheel.ActiveColor); err != nil {
			return renderer.Palette{}, err
		}
	}
	return p, nil
}

// ToOptions converts the validated config into wheel options.
func (c *Config) ToOptions() ([]wheel.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	p, err := c.Palette()
	if err != nil {
		return nil, err
	}
	fade, _ := ParseFade(c.Wheel.Fade)

	opts := []wheel.Option{
		wheel.WithColors(p.Normal, p.Active),
		wheel.WithShowActiveRange(c.Wheel.ShowActiveRange),
		wheel.WithFade(fade),
		wheel.WithSnapToMarks(c.Wheel.SnapToMarks),
		wheel.WithEndLock(c.Wheel.EndLock),
		wheel.WithOnlyPositive(c.Wheel.OnlyPositive),
		wheel.WithSettlePerRadian(time.Duration(c.Wheel.SettleMSPerRadian) * time.Millisecond),
	}
	switch {
	case c.Wheel.MarksCount != 0:
		opts = append(opts, wheel.WithMarksCount(c.Wheel.MarksCount))
	case c.Wheel.MaxVisibleMarks != 0:
		opts = append(opts, wheel.WithMaxVisibleMarks(c.Wheel.MaxVisibleMarks))
	}
	return opts, nil
}

// ParseFade converts "alpha" or "shade" to a FadeMode. Empty is alpha.
func ParseFade(s string) (wheel.FadeMode, error) {
	switch strings.ToLower(s) {
	case "", "alpha":
		return wheel.FadeAlpha, nil
	case "shade":
		return wheel.FadeShade, nil
	}
	return wheel.FadeAlpha, fmt.Errorf("invalid fade mode %q (must be alpha or shade)", s)
}

// ParseColor parses #rrggbb or #aarrggbb.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q (want #rrggbb or #aarrggbb)", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	c := color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}
	if len(hex) == 8 {
		c.A = uint8(v >> 24)
	}
	return c, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
