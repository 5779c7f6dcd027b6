// Package tui renders the wheel in a terminal with tcell and drives it from
// the keyboard and mouse.
package tui

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/OpenTraceLab/horizontalwheel/internal/velocity"
	"github.com/OpenTraceLab/horizontalwheel/pkg/renderer"
	"github.com/OpenTraceLab/horizontalwheel/pkg/wheel"
)

const (
	// CellWidth and RowHeight are the virtual pixel size of one terminal cell.
	CellWidth = 8
	RowHeight = 16

	FrameInterval = 16 * time.Millisecond

	// KeyStep is the scroll distance of one arrow key press in virtual pixels.
	KeyStep = CellWidth
	// KeyFling is the velocity of a shift+arrow fling in virtual px/s.
	KeyFling = 1500

	minFling = 50
	maxFling = 8000
)

const (
	markRune     = '│'
	zeroMarkRune = '┃'
	cursorRune   = '▲'
)

// Terminal is the terminal front end of a wheel.
type Terminal struct {
	screen  tcell.Screen
	wheel   *wheel.Wheel
	palette renderer.Palette
	clicker *Clicker
	logger  *slog.Logger

	width, height int
	dragging      bool
	tracker       velocity.Tracker
	now           time.Time
}

// New binds a terminal front end to an initialized screen. clicker may be nil.
func New(screen tcell.Screen, w *wheel.Wheel, palette renderer.Palette, clicker *Clicker, logger *slog.Logger) *Terminal {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if clicker == nil {
		clicker = &Clicker{}
	}
	t := &Terminal{
		screen:  screen,
		wheel:   w,
		palette: palette,
		clicker: clicker,
		logger:  logger,
	}
	w.OnMarkCrossed(func(int) { t.clicker.Click(t.now) })
	w.OnScrollStateChanged(func(s wheel.ScrollState) {
		t.logger.Debug("[TUI] scroll state", "state", s)
	})
	t.resize()
	return t
}

// Open creates and initializes a tcell screen with mouse reporting.
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	return screen, nil
}

// Run handles input and redraws at the frame rate until the user quits or
// ctx is done.
func (t *Terminal) Run(ctx context.Context) error {
	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 100)
	go pollEvents(ctx, t.screen, events)

	t.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !t.HandleEvent(ev, time.Now()) {
				return nil
			}
			t.Draw()

		case now := <-ticker.C:
			t.now = now
			if t.wheel.Tick(now) {
				t.Draw()
			}
		}
	}
}

// pollEvents forwards screen events to out until the screen is finalized or
// ctx is done.
func pollEvents(ctx context.Context, screen tcell.Screen, out chan<- tcell.Event) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// HandleEvent applies one input event at now and reports whether the loop
// should keep running.
func (t *Terminal) HandleEvent(ev tcell.Event, now time.Time) bool {
	t.now = now
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev, now)
	case *tcell.EventMouse:
		t.handleMouse(ev, now)
	case *tcell.EventResize:
		t.resize()
		t.screen.Sync()
	}
	return true
}

func (t *Terminal) handleKey(ev *tcell.EventKey, now time.Time) bool {
	shift := ev.Modifiers()&tcell.ModShift != 0
	var err error
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		if shift {
			err = t.wheel.Fling(-KeyFling, now)
		} else {
			err = t.keyScroll(KeyStep, now)
		}
	case tcell.KeyRight:
		if shift {
			err = t.wheel.Fling(KeyFling, now)
		} else {
			err = t.keyScroll(-KeyStep, now)
		}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 's':
			t.wheel.SetSnapToMarks(!t.wheel.SnapToMarks())
		case 'l':
			t.wheel.SetEndLock(!t.wheel.EndLock())
		case 'a':
			t.wheel.SetShowActiveRange(!t.wheel.ShowActiveRange())
		case 'r':
			err = t.wheel.SetRadians(0)
		}
	}
	if err != nil {
		t.logger.Warn("[TUI] key ignored", "err", err)
	}
	return true
}

// keyScroll is a complete one-step drag, so snapping applies on release.
func (t *Terminal) keyScroll(dx float32, now time.Time) error {
	t.wheel.Down(0)
	if err := t.wheel.Scroll(dx); err != nil {
		return err
	}
	return t.wheel.Up(now)
}

func (t *Terminal) handleMouse(ev *tcell.EventMouse, now time.Time) {
	col, _ := ev.Position()
	x := float32(col*CellWidth + CellWidth/2)
	pressed := ev.Buttons()&tcell.Button1 != 0

	var err error
	switch {
	case pressed && !t.dragging:
		t.dragging = true
		t.tracker.Reset()
		t.tracker.Add(x, now)
		t.wheel.Down(x)
	case pressed:
		t.tracker.Add(x, now)
		err = t.wheel.Move(x)
	case t.dragging:
		t.dragging = false
		v := velocity.Clamp(t.tracker.Velocity(now), minFling, maxFling)
		if v != 0 {
			err = t.wheel.Fling(v, now)
		}
		if err == nil {
			err = t.wheel.Up(now)
		}
	}
	if err != nil {
		t.logger.Warn("[TUI] pointer ignored", "err", err)
	}
}

func (t *Terminal) resize() {
	t.width, t.height = t.screen.Size()
	t.wheel.Resize(wheel.Viewport{
		Width:  float32(t.width * CellWidth),
		Height: RowHeight,
	})
}

// Draw renders the marks row, the cursor row and the status line.
func (t *Terminal) Draw() {
	bg := tcell.StyleDefault.Background(tcellColor(t.palette.Background))
	t.screen.Fill(' ', bg)
	if t.width <= 0 || t.height <= 0 {
		t.screen.Show()
		return
	}

	top := max(0, (t.height-3)/2)
	frame := t.wheel.Frame()
	var zero *wheel.Mark
	for i := range frame.Marks {
		m := &frame.Marks[i]
		if m.Zero {
			zero = m
			continue
		}
		t.setMark(m, markRune, top, bg)
	}
	// Drawn last so it wins a shared column.
	if zero != nil {
		t.setMark(zero, zeroMarkRune, top, bg)
	}

	if !frame.Cursor.Empty() {
		cx := (frame.Cursor.Min.X + frame.Cursor.Max.X) / 2 / CellWidth
		style := bg.Foreground(tcellColor(frame.CursorColor))
		t.screen.SetContent(cx, top+1, cursorRune, nil, style)
	}

	status := fmt.Sprintf("%8.2f°  %-8s  snap:%s  lock:%s", t.wheel.Degrees(), t.wheel.ScrollState(),
		onOff(t.wheel.SnapToMarks()), onOff(t.wheel.EndLock()))
	t.drawText(0, top+2, status, bg.Foreground(tcellColor(t.palette.Normal)))
	t.screen.Show()
}

func (t *Terminal) setMark(m *wheel.Mark, r rune, row int, bg tcell.Style) {
	col := int(m.X) / CellWidth
	if col < 0 || col >= t.width {
		return
	}
	c := blend(m.Color, t.palette.Background)
	t.screen.SetContent(col, row, r, nil, bg.Foreground(tcellColor(c)))
}

func (t *Terminal) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= t.width {
			return
		}
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// blend flattens a translucent mark color onto the background; terminals
// have no alpha.
func blend(fg, bg color.NRGBA) color.NRGBA {
	a := uint32(fg.A)
	mix := func(f, b uint8) uint8 {
		return uint8((uint32(f)*a + uint32(b)*(255-a)) / 255)
	}
	return color.NRGBA{R: mix(fg.R, bg.R), G: mix(fg.G, bg.G), B: mix(fg.B, bg.B), A: 0xff}
}

func tcellColor(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
