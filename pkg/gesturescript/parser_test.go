package gesturescript

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseCommands(t *testing.T) {
	input := `
	# drag then fling
	down 120
	move 80; move 40
	scroll -12.5
	fling 3000
	up
	wait 150ms
	wait 1.5s
	angle -90
	cancel
	`

	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	script, err := parser.ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	want := []string{
		"down 120",
		"move 80",
		"move 40",
		"scroll -12.5",
		"fling 3000",
		"up",
		"wait 150ms",
		"wait 1.5s",
		"angle -90",
		"cancel",
	}
	if len(script.Commands) != len(want) {
		t.Fatalf("parsed %d commands, want %d", len(script.Commands), len(want))
	}
	for i, cmd := range script.Commands {
		if got := cmd.String(); got != want[i] {
			t.Fatalf("command %d = %q, want %q", i, got, want[i])
		}
	}
	if got := script.Commands[0].Pos.Line; got != 3 {
		t.Fatalf("first command line = %d, want 3", got)
	}
	if got := time.Duration(*script.Commands[6].Wait); got != 150*time.Millisecond {
		t.Fatalf("wait = %v, want 150ms", got)
	}
}

func TestParseCaseInsensitive(t *testing.T) {
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	script, err := parser.ParseString("DOWN 1;Up")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if len(script.Commands) != 2 || script.Commands[0].Down == nil || !script.Commands[1].Up {
		t.Fatalf("unexpected commands: %v", script.Commands)
	}
}

func TestParseEmpty(t *testing.T) {
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	script, err := parser.ParseString("# nothing here\n\n")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if len(script.Commands) != 0 {
		t.Fatalf("parsed %d commands, want 0", len(script.Commands))
	}
}

func TestParseErrors(t *testing.T) {
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	for _, input := range []string{
		"spin 10",
		"down",
		"wait 10",
		"fling fast",
		"scroll 1ms",
	} {
		if _, err := parser.ParseString(input); err == nil {
			t.Fatalf("ParseString(%q) succeeded, want error", input)
		}
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drag.gesture")
	if err := os.WriteFile(path, []byte("down 0\nscroll 10\nup\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	script, err := parser.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(script.Commands) != 3 {
		t.Fatalf("parsed %d commands, want 3", len(script.Commands))
	}
	if _, err := parser.ParseFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("ParseFile of a missing file returned nil error")
	}
}
