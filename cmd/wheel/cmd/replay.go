package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/horizontalwheel/pkg/gesturescript"
)

var replayCmd = &cobra.Command{
	Use:   "replay <script>",
	Short: "Replay a gesture script and print the trace",
	Long: `Run a gesture script against the wheel on a simulated 16ms frame clock and
print every scroll state change with the final angle.

Script commands, one per line or separated by ';':
  down X      touch at x
  move X      drag to x
  scroll DX   scroll by a distance in pixels
  fling VX    release with a velocity in px/s
  up          lift the finger
  cancel      abort the touch
  wait D      let time pass (150ms, 1s)
  angle DEG   set the angle
  # ...       comment

Use - to read the script from stdin.

Examples:
  wheel replay testdata/fling.gesture --snap
  echo 'down 100; move 40; up' | wheel replay -`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	parser, err := gesturescript.NewParser()
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	var script *gesturescript.Script
	if args[0] == "-" {
		script, err = parser.Parse(cmd.InOrStdin())
	} else {
		script, err = parser.ParseFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to parse script: %w", err)
	}

	trace, err := gesturescript.NewRunner(s.wheel).Run(script, time.Unix(0, 0))
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), trace.String())
	return nil
}
