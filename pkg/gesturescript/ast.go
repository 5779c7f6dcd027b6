package gesturescript

import (
	"fmt"
	"time"

	"github.com/alecthomas/participle/v2/lexer"
)

// Script is a parsed gesture script
type Script struct {
	Commands []*Command `( @@ | Newline )*`
}

// Command is one gesture step. Exactly one field is set.
// Example: down 120; move 80; up
type Command struct {
	Pos lexer.Position

	Down   *float64  `  KwDown @Number`
	Move   *float64  `| KwMove @Number`
	Scroll *float64  `| KwScroll @Number`
	Fling  *float64  `| KwFling @Number`
	Up     bool      `| @KwUp`
	Cancel bool      `| @KwCancel`
	Wait   *Duration `| KwWait @Duration`
	Angle  *float64  `| KwAngle @Number`
}

// Duration is a wait length such as 150ms or 1.5s
type Duration time.Duration

// Capture implements participle.Capture
func (d *Duration) Capture(values []string) error {
	v, err := time.ParseDuration(values[0])
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// String renders the command back in script form
func (c *Command) String() string {
	switch {
	case c.Down != nil:
		return fmt.Sprintf("down %g", *c.Down)
	case c.Move != nil:
		return fmt.Sprintf("move %g", *c.Move)
	case c.Scroll != nil:
		return fmt.Sprintf("scroll %g", *c.Scroll)
	case c.Fling != nil:
		return fmt.Sprintf("fling %g", *c.Fling)
	case c.Up:
		return "up"
	case c.Cancel:
		return "cancel"
	case c.Wait != nil:
		return fmt.Sprintf("wait %s", time.Duration(*c.Wait))
	case c.Angle != nil:
		return fmt.Sprintf("angle %g", *c.Angle)
	}
	return "<empty>"
}
