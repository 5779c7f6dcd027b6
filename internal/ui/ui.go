package ui

import (
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"
)

// Run launches the demo window and blocks until it closes. Construction
// errors are returned before the window opens.
func Run(opts Options) error {
	w := new(app.Window)
	ui, err := New(w, opts)
	if err != nil {
		return err
	}

	go func() {
		w.Option(app.Title("Horizontal Wheel"), app.Size(unit.Dp(720), unit.Dp(480)))
		if err := ui.Run(); err != nil {
			log.Printf("ui: %v", err)
		}
		os.Exit(0)
	}()

	app.Main()
	return nil
}
