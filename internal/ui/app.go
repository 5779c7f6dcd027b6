package ui

import (
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"strings"
	"time"

	"gioui.org/app"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/oligo/gioview/theme"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/horizontalwheel/pkg/renderer"
	"github.com/OpenTraceLab/horizontalwheel/pkg/wheel"
)

// Options configures the demo window.
type Options struct {
	Wheel *wheel.Wheel
	// Theme forces a palette. Nil restores the one saved by the last run.
	Theme  *renderer.ColorTheme
	Logger *slog.Logger
	// NoPersist disables loading and saving state.json.
	NoPersist bool
}

// App drives the wheel demo window.
type App struct {
	window  *app.Window
	gvTheme *theme.Theme
	ops     op.Ops

	wheel  *wheel.Wheel
	view   *WheelWidget
	theme  renderer.ColorTheme
	logger *slog.Logger

	persist bool

	snapSwitch   widget.Bool
	lockSwitch   widget.Bool
	activeSwitch widget.Bool
	resetBtn     widget.Clickable
	themeBtn     widget.Clickable
	resetIcon    *widget.Icon
	themeIcon    *widget.Icon

	logs     *logBuffer
	logList  widget.List
	logText  string
	logDirty bool
}

// New wires the window, theme and wheel together.
func New(w *app.Window, opts Options) (*App, error) {
	if w == nil {
		w = new(app.Window)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Wheel == nil {
		wh, err := wheel.New(wheel.WithLogger(opts.Logger))
		if err != nil {
			return nil, err
		}
		opts.Wheel = wh
	}

	a := &App{
		window:  w,
		gvTheme: theme.NewTheme("", nil, true),
		wheel:   opts.Wheel,
		logger:  opts.Logger,
		persist: !opts.NoPersist,
		logs:    newLogBuffer(defaultLogLimit),
	}
	a.logList.Axis = layout.Vertical
	a.logList.ScrollToEnd = true
	a.resetIcon = makeIcon(icons.ActionRestore, "reset")
	a.themeIcon = makeIcon(icons.ImagePalette, "theme")

	a.theme = renderer.ThemeClassic
	if opts.Theme != nil {
		a.theme = *opts.Theme
	}
	if a.persist {
		s, err := LoadSettings()
		switch {
		case err != nil:
			a.Logf("[STATE] load failed: %v", err)
		default:
			if opts.Theme == nil {
				a.theme = renderer.ColorTheme(s.Theme)
				p := renderer.PaletteFor(a.theme)
				a.wheel.SetColors(p.Normal, p.Active)
			}
			if err := a.wheel.Restore(s.Wheel); err != nil {
				a.Logf("[STATE] restore failed: %v", err)
			}
		}
	}
	a.view = NewWheelWidget(a.wheel, renderer.PaletteFor(a.theme), opts.Logger)
	a.syncSwitches()

	a.wheel.OnScrollStateChanged(func(s wheel.ScrollState) {
		a.Logf("[WHEEL] %s at %.1f°", s, a.wheel.Degrees())
	})

	a.applyPalette()
	a.Logf("[BOOT] %d marks, theme %s", a.wheel.MarksCount(), a.theme)
	a.Logf("[INFO] Drag or fling the wheel; toggles below change its behaviour")
	return a, nil
}

func makeIcon(data []byte, name string) *widget.Icon {
	icon, err := widget.NewIcon(data)
	if err != nil {
		log.Printf("ui: failed to load %s icon: %v", name, err)
		return nil
	}
	return icon
}

// Run blocks processing window events until the window closes.
func (a *App) Run() error {
	for {
		e := a.window.Event()
		switch ev := e.(type) {
		case app.DestroyEvent:
			a.save()
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&a.ops, ev)
			a.layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}

func (a *App) save() {
	if !a.persist {
		return
	}
	s := &Settings{Wheel: a.wheel.Save(), Theme: int(a.theme)}
	if err := SaveSettings(s); err != nil {
		a.logger.Warn("[STATE] save failed", "err", err)
	}
}

func (a *App) syncSwitches() {
	a.snapSwitch.Value = a.wheel.SnapToMarks()
	a.lockSwitch.Value = a.wheel.EndLock()
	a.activeSwitch.Value = a.wheel.ShowActiveRange()
}

func (a *App) cycleTheme() {
	a.theme = a.theme.Next()
	p := renderer.PaletteFor(a.theme)
	a.view.Palette = p
	a.wheel.SetColors(p.Normal, p.Active)
	a.applyPalette()
	a.Logf("[THEME] %s", a.theme)
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.FillShape(gtx.Ops, a.gvTheme.Palette.Bg, clip.Rect{Max: gtx.Constraints.Max}.Op())

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(a.layoutTopBar),
		layout.Rigid(a.layoutReadout),
		layout.Rigid(a.layoutWheel),
		layout.Rigid(a.layoutToggles),
		layout.Flexed(1, a.layoutLogPane),
	)
}

func (a *App) layoutTopBar(gtx layout.Context) layout.Dimensions {
	for a.resetBtn.Clicked(gtx) {
		if err := a.wheel.SetRadians(0); err != nil {
			a.Logf("[WHEEL] reset failed: %v", err)
		}
	}
	for a.themeBtn.Clicked(gtx) {
		a.cycleTheme()
	}
	return layout.Inset{
		Top: unit.Dp(12), Bottom: unit.Dp(4), Left: unit.Dp(16), Right: unit.Dp(16),
	}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(material.H6(a.gvTheme.Theme, "Horizontal Wheel").Layout),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{}
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.layoutIconButton(gtx, &a.themeBtn, a.themeIcon, a.theme.String())
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.layoutIconButton(gtx, &a.resetBtn, a.resetIcon, "Reset")
			}),
		)
	})
}

func (a *App) layoutIconButton(gtx layout.Context, btn *widget.Clickable, icon *widget.Icon, label string) layout.Dimensions {
	if icon == nil {
		b := material.Button(a.gvTheme.Theme, btn, label)
		b.Inset = layout.UniformInset(unit.Dp(6))
		return b.Layout(gtx)
	}
	b := material.IconButton(a.gvTheme.Theme, btn, icon, label)
	b.Inset = layout.UniformInset(unit.Dp(6))
	b.Size = unit.Dp(20)
	return b.Layout(gtx)
}

func (a *App) layoutReadout(gtx layout.Context) layout.Dimensions {
	return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min.X = gtx.Constraints.Max.X
		return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.H3(a.gvTheme.Theme, formatDegrees(a.wheel.Degrees()))
				lbl.Alignment = text.Middle
				return lbl.Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				msg := fmt.Sprintf("%.4f rad  %.3f turns  %s", a.wheel.Radians(), a.wheel.Turns(), a.wheel.ScrollState())
				lbl := material.Body2(a.gvTheme.Theme, msg)
				lbl.Alignment = text.Middle
				return lbl.Layout(gtx)
			}),
		)
	})
}

func formatDegrees(deg float64) string {
	return fmt.Sprintf("%.1f°", deg)
}

func (a *App) layoutWheel(gtx layout.Context) layout.Dimensions {
	return layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		h := gtx.Dp(unit.Dp(64))
		gtx.Constraints.Min.Y = h
		gtx.Constraints.Max.Y = h
		gtx.Constraints.Min.X = gtx.Constraints.Max.X
		return a.view.Layout(gtx)
	})
}

func (a *App) layoutToggles(gtx layout.Context) layout.Dimensions {
	return layout.Inset{Top: unit.Dp(12), Bottom: unit.Dp(8), Left: unit.Dp(16), Right: unit.Dp(16)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle, Spacing: layout.SpaceEvenly}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.layoutToggle(gtx, &a.snapSwitch, "Snap to marks", func(v bool) {
					a.wheel.SetSnapToMarks(v)
					a.Logf("[WHEEL] snap %s", onOff(v))
				})
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.layoutToggle(gtx, &a.lockSwitch, "End lock", func(v bool) {
					a.wheel.SetEndLock(v)
					a.Logf("[WHEEL] end lock %s", onOff(v))
				})
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.layoutToggle(gtx, &a.activeSwitch, "Active range", func(v bool) {
					a.wheel.SetShowActiveRange(v)
				})
			}),
		)
	})
}

func (a *App) layoutToggle(gtx layout.Context, control *widget.Bool, title string, onChange func(bool)) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			prev := control.Value
			sw := material.Switch(a.gvTheme.Theme, control, title)
			d := sw.Layout(gtx)
			if prev != control.Value {
				onChange(control.Value)
			}
			return d
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
		layout.Rigid(material.Body1(a.gvTheme.Theme, title).Layout),
	)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (a *App) layoutLogPane(gtx layout.Context) layout.Dimensions {
	paint.FillShape(gtx.Ops, a.gvTheme.Bg2, clip.Rect{Max: gtx.Constraints.Max}.Op())
	if a.logDirty {
		a.logText = strings.Join(a.logs.Lines(), "\n")
		a.logDirty = false
	}
	return layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16), Top: unit.Dp(6), Bottom: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min = gtx.Constraints.Max
		return material.List(a.gvTheme.Theme, &a.logList).Layout(gtx, 1, func(gtx layout.Context, _ int) layout.Dimensions {
			label := material.Body2(a.gvTheme.Theme, a.logText)
			label.WrapPolicy = text.WrapGraphemes
			label.Color = a.opaqueFg()
			return label.Layout(gtx)
		})
	})
}

func (a *App) applyPalette() {
	if a.gvTheme == nil {
		return
	}
	if a.theme != renderer.ThemeLight {
		a.gvTheme.WithPalette(theme.Palette{
			Bg:         color.NRGBA{R: 18, G: 20, B: 26, A: 255},
			Fg:         color.NRGBA{R: 233, G: 236, B: 245, A: 255},
			ContrastBg: color.NRGBA{R: 84, G: 172, B: 240, A: 255},
			ContrastFg: color.NRGBA{R: 12, G: 16, B: 24, A: 255},
			Bg2:        color.NRGBA{R: 34, G: 40, B: 50, A: 255},
		})
	} else {
		a.gvTheme.WithPalette(theme.Palette{
			Bg:         color.NRGBA{R: 245, G: 247, B: 253, A: 255},
			Fg:         color.NRGBA{R: 34, G: 37, B: 49, A: 255},
			ContrastBg: color.NRGBA{R: 80, G: 120, B: 255, A: 255},
			ContrastFg: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
			Bg2:        color.NRGBA{R: 225, G: 230, B: 244, A: 255},
		})
	}
}

func (a *App) opaqueFg() color.NRGBA {
	fg := a.gvTheme.Palette.Fg
	fg.A = 0xFF
	return fg
}

func (a *App) invalidate() {
	if a.window != nil {
		a.window.Invalidate()
	}
}

// Logf appends a timestamped line to the log pane.
func (a *App) Logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.logs.Append(time.Now(), msg)
	a.logDirty = true
	a.logger.Debug(msg)
	a.invalidate()
}
