package renderer

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/OpenTraceLab/horizontalwheel/pkg/wheel"
)

// PaintFrame draws a laid out wheel frame: every visible mark as a vertical
// stroke, then the cursor on top. Coordinates in the frame are already in
// pixels relative to the widget origin.
func PaintFrame(gtx layout.Context, frame *wheel.Frame) {
	if frame == nil {
		return
	}
	for _, m := range frame.Marks {
		if m.Width <= 0 || m.Bottom <= m.Top {
			continue
		}
		renderLine(gtx, m.X, m.Top, m.X, m.Bottom, m.Width, m.Color)
	}
	renderCursor(gtx, frame.Cursor, frame.CursorRadius, frame.CursorColor)
}

// PaintBackground fills the widget area with the palette background.
func PaintBackground(gtx layout.Context, bg color.NRGBA) {
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, bg)
}

// PaintWheel is PaintBackground followed by PaintFrame, clipped to the
// widget bounds.
func PaintWheel(gtx layout.Context, frame *wheel.Frame, p Palette) layout.Dimensions {
	size := gtx.Constraints.Max
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	PaintBackground(gtx, p.Background)
	PaintFrame(gtx, frame)
	return layout.Dimensions{Size: size}
}

// renderLine renders a line with given width
func renderLine(gtx layout.Context, x1, y1, x2, y2, width float32, lineColor color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(x1, y1))
	path.LineTo(f32.Pt(x2, y2))

	stroke := clip.Stroke{
		Path:  path.End(),
		Width: width,
	}.Op()

	paint.FillShape(gtx.Ops, lineColor, stroke)
}

// renderCursor renders the center cursor as a rounded rectangle
func renderCursor(gtx layout.Context, rect image.Rectangle, radius int, fill color.NRGBA) {
	if rect.Empty() {
		return
	}
	// Keep the radius inside the rectangle so thin cursors stay visible.
	if maxR := min(rect.Dx(), rect.Dy()) / 2; radius > maxR {
		radius = maxR
	}
	stack := op.Offset(rect.Min).Push(gtx.Ops)
	defer stack.Pop()

	rrect := clip.UniformRRect(image.Rectangle{Max: rect.Size()}, radius).Op(gtx.Ops)
	paint.FillShape(gtx.Ops, fill, rrect)
}
