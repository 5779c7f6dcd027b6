package gesturescript

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// ScriptLexer defines the lexical structure of gesture scripts. Commands are
// separated by newlines or semicolons; # starts a comment.
var ScriptLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Newline", Pattern: `[\n;]+`},

	// Keywords
	{Name: "KwDown", Pattern: `(?i)\bdown\b`},
	{Name: "KwMove", Pattern: `(?i)\bmove\b`},
	{Name: "KwScroll", Pattern: `(?i)\bscroll\b`},
	{Name: "KwFling", Pattern: `(?i)\bfling\b`},
	{Name: "KwUp", Pattern: `(?i)\bup\b`},
	{Name: "KwCancel", Pattern: `(?i)\bcancel\b`},
	{Name: "KwWait", Pattern: `(?i)\bwait\b`},
	{Name: "KwAngle", Pattern: `(?i)\bangle\b`},

	// Literals. Durations must come before plain numbers.
	{Name: "Duration", Pattern: `[0-9]+(\.[0-9]+)?(ms|s)\b`},
	{Name: "Number", Pattern: `[-+]?[0-9]+(\.[0-9]+)?`},

	// Identifiers (must come after keywords); only here to report unknown
	// commands as parse errors.
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
})
