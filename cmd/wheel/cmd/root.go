package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/horizontalwheel/internal/config"
	"github.com/OpenTraceLab/horizontalwheel/internal/logging"
	"github.com/OpenTraceLab/horizontalwheel/pkg/wheel"
)

var (
	// Global flags
	configPath      string
	logLevel        string
	marksCount      int
	snapToMarks     bool
	endLock         bool
	onlyPositive    bool
	hideActiveRange bool
	themeName       string
	sound           bool
)

var rootCmd = &cobra.Command{
	Use:   "wheel",
	Short: "Horizontal rotary wheel control",
	Long: `A horizontal rotary wheel: a strip of marks drawn as the front half of a
rotating cylinder, turned by dragging and flinging.

Examples:
  wheel ui --snap                          # Open the demo window
  wheel tui --marks 80 --sound             # Drive the wheel in a terminal
  wheel frame --degrees 30 --width 400     # Print the laid out marks
  wheel replay testdata/fling.gesture      # Replay a gesture script`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML config file")
	flags.StringVar(&logLevel, "log-level", "", "log level: error, warn, info or debug")
	flags.IntVar(&marksCount, "marks", 0, "marks around the full circle (multiple of 4)")
	flags.BoolVar(&snapToMarks, "snap", false, "settle on the nearest mark")
	flags.BoolVar(&endLock, "end-lock", false, "stop rotation one full turn from zero")
	flags.BoolVar(&onlyPositive, "only-positive", false, "keep the angle in [0, 360)")
	flags.BoolVar(&hideActiveRange, "hide-active-range", false, "do not highlight the arc from zero to the cursor")
	flags.StringVar(&themeName, "theme", "", "palette: Classic, Light or Nord")
	flags.BoolVar(&sound, "sound", false, "click on mark crossings (tui)")
}

// session is what every subcommand needs from the flags and config file.
type session struct {
	cfg    config.Config
	logger *slog.Logger
	wheel  *wheel.Wheel
}

// loadSession resolves defaults, the config file and the flags that were
// set explicitly, in that order, and builds the wheel.
func loadSession(cmd *cobra.Command) (*session, error) {
	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	overrides(cmd).Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	logger := logging.NewWriter(cmd.ErrOrStderr(), level)

	opts, err := cfg.ToOptions()
	if err != nil {
		return nil, err
	}
	w, err := wheel.New(append(opts, wheel.WithLogger(logger))...)
	if err != nil {
		return nil, fmt.Errorf("create wheel: %w", err)
	}
	logger.Debug("[BOOT] wheel ready", "marks", w.MarksCount(), "snap", w.SnapToMarks(), "endLock", w.EndLock())
	return &session{cfg: cfg, logger: logger, wheel: w}, nil
}

func overrides(cmd *cobra.Command) config.FlagOverrides {
	var o config.FlagOverrides
	flags := cmd.Flags()
	if flags.Changed("marks") {
		o.MarksCount = &marksCount
	}
	if flags.Changed("snap") {
		o.SnapToMarks = &snapToMarks
	}
	if flags.Changed("end-lock") {
		o.EndLock = &endLock
	}
	if flags.Changed("only-positive") {
		o.OnlyPositive = &onlyPositive
	}
	if flags.Changed("hide-active-range") {
		o.HideActiveRange = &hideActiveRange
	}
	if flags.Changed("theme") {
		o.Theme = &themeName
	}
	if flags.Changed("sound") {
		o.Sound = &sound
	}
	if flags.Changed("log-level") {
		o.LogLevel = &logLevel
	}
	return o
}
