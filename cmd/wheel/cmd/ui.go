package cmd

import (
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/horizontalwheel/internal/ui"
	"github.com/OpenTraceLab/horizontalwheel/pkg/renderer"
)

var noPersist bool

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the wheel demo window",
	Long: `Open a window with the wheel, an angle readout, toggles for snapping,
the end lock and the active range, and a log pane.

The angle and palette are saved on exit and restored on the next start
unless --no-persist is given. An explicit --theme or config file wins over
the saved palette.

Examples:
  wheel ui
  wheel ui --snap --end-lock
  wheel ui --theme nord --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)

	uiCmd.Flags().BoolVar(&noPersist, "no-persist", false, "do not load or save state.json")
}

func runUI(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	opts := ui.Options{Wheel: s.wheel, Logger: s.logger, NoPersist: noPersist}
	if cmd.Flags().Changed("theme") || configPath != "" {
		theme, err := renderer.ParseTheme(s.cfg.Wheel.Theme)
		if err != nil {
			return err
		}
		opts.Theme = &theme
	}
	return ui.Run(opts)
}
