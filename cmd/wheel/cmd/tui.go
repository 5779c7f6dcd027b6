package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/horizontalwheel/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Drive the wheel in the terminal",
	Long: `Draw the wheel as a row of marks in the terminal.

Keys:
  ←/→          scroll
  shift+←/→    fling
  s            toggle snapping
  l            toggle the end lock
  a            toggle the active range
  r            reset to 0°
  q, Esc       quit

The mouse drags and flings the wheel. With --sound every mark crossing
clicks.

Examples:
  wheel tui
  wheel tui --marks 80 --snap --sound`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	palette, err := s.cfg.Palette()
	if err != nil {
		return err
	}

	clicker := &tui.Clicker{}
	if s.cfg.Wheel.Sound {
		if err := clicker.Init(); err != nil {
			s.logger.Warn("[AUDIO] sound disabled", "err", err)
		} else {
			defer clicker.Close()
		}
	}

	screen, err := tui.Open()
	if err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tui.New(screen, s.wheel, palette, clicker, s.logger).Run(ctx)
}
