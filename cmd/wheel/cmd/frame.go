package cmd

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/horizontalwheel/pkg/wheel"
)

var (
	frameDegrees float64
	frameWidth   float32
	frameHeight  float32
	framePadding float32
	outputJSON   bool
)

var frameCmd = &cobra.Command{
	Use:   "frame",
	Short: "Print the marks laid out at an angle",
	Long: `Lay the wheel out once at the given angle and print every visible mark:
its slot, x position, vertical extent, stroke width and color.

Supports JSON output for plotting and regression checks.

Examples:
  wheel frame --degrees 30
  wheel frame --degrees -90 --width 800 --height 80 --marks 80
  wheel frame --degrees 45 --json`,
	Args: cobra.NoArgs,
	RunE: runFrame,
}

func init() {
	rootCmd.AddCommand(frameCmd)

	frameCmd.Flags().Float64VarP(&frameDegrees, "degrees", "d", 0, "wheel angle in degrees")
	frameCmd.Flags().Float32Var(&frameWidth, "width", 400, "viewport width in pixels")
	frameCmd.Flags().Float32Var(&frameHeight, "height", 60, "viewport height in pixels")
	frameCmd.Flags().Float32Var(&framePadding, "padding", 0, "horizontal padding on each side in pixels")
	frameCmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
}

// FrameInfo is the JSON form of a laid out frame.
type FrameInfo struct {
	Degrees       float64    `json:"degrees"`
	Radians       float64    `json:"radians"`
	Width         float32    `json:"width"`
	Height        float32    `json:"height"`
	Visible       int        `json:"visible"`
	ZeroIndex     int        `json:"zero_index"`
	ColorSwitches [3]int     `json:"color_switches"`
	Trailing      float32    `json:"trailing"`
	Cursor        [4]int     `json:"cursor"`
	Marks         []MarkInfo `json:"marks"`
}

// MarkInfo is one mark of a FrameInfo.
type MarkInfo struct {
	Slot   int     `json:"slot"`
	X      float32 `json:"x"`
	Top    float32 `json:"top"`
	Bottom float32 `json:"bottom"`
	Width  float32 `json:"width"`
	Color  string  `json:"color"`
	Zero   bool    `json:"zero,omitempty"`
}

func runFrame(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	if err := s.wheel.SetDegrees(frameDegrees); err != nil {
		return fmt.Errorf("set angle: %w", err)
	}
	s.wheel.Resize(wheel.Viewport{
		Width:   frameWidth,
		Height:  frameHeight,
		Padding: wheel.Insets{Left: framePadding, Right: framePadding},
	})
	info := frameInfo(s.wheel)

	out := cmd.OutOrStdout()
	if outputJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	printFrame(out, info)
	return nil
}

func frameInfo(w *wheel.Wheel) FrameInfo {
	f := w.Frame()
	v := w.Viewport()
	info := FrameInfo{
		Degrees:       w.Degrees(),
		Radians:       w.Radians(),
		Width:         v.Width,
		Height:        v.Height,
		Visible:       f.Visible(),
		ZeroIndex:     f.ZeroIndex,
		ColorSwitches: f.ColorSwitches,
		Trailing:      f.Trailing,
		Cursor:        [4]int{f.Cursor.Min.X, f.Cursor.Min.Y, f.Cursor.Max.X, f.Cursor.Max.Y},
		Marks:         make([]MarkInfo, 0, len(f.Marks)),
	}
	for _, m := range f.Marks {
		info.Marks = append(info.Marks, MarkInfo{
			Slot:   m.Index,
			X:      m.X,
			Top:    m.Top,
			Bottom: m.Bottom,
			Width:  m.Width,
			Color:  hexColor(m.Color),
			Zero:   m.Zero,
		})
	}
	return info
}

func printFrame(out io.Writer, info FrameInfo) {
	fmt.Fprintf(out, "Angle:    %.3f° (%.6f rad)\n", info.Degrees, info.Radians)
	fmt.Fprintf(out, "Viewport: %gx%g\n", info.Width, info.Height)
	fmt.Fprintf(out, "Visible:  %d marks, trailing %.2f\n", info.Visible, info.Trailing)
	fmt.Fprintf(out, "Zero:     %s\n", slotName(info.ZeroIndex))
	fmt.Fprintf(out, "Switches: %s %s %s\n",
		slotName(info.ColorSwitches[0]), slotName(info.ColorSwitches[1]), slotName(info.ColorSwitches[2]))
	fmt.Fprintf(out, "Cursor:   (%d,%d)-(%d,%d)\n\n", info.Cursor[0], info.Cursor[1], info.Cursor[2], info.Cursor[3])

	fmt.Fprintf(out, "%4s %8s %7s %7s %5s  %-9s\n", "slot", "x", "top", "bottom", "width", "color")
	for _, m := range info.Marks {
		zero := ""
		if m.Zero {
			zero = "  zero"
		}
		fmt.Fprintf(out, "%4d %8.2f %7.2f %7.2f %5.1f  %-9s%s\n", m.Slot, m.X, m.Top, m.Bottom, m.Width, m.Color, zero)
	}
}

func slotName(i int) string {
	if i == wheel.NoMark {
		return "-"
	}
	return fmt.Sprint(i)
}

// hexColor formats c as #aarrggbb, the form the config file accepts.
func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.A, c.R, c.G, c.B)
}
