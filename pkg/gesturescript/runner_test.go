package gesturescript

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/OpenTraceLab/horizontalwheel/pkg/wheel"
)

func run(t *testing.T, w *wheel.Wheel, src string) *Trace {
	t.Helper()
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	script, err := parser.ParseString(src)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	trace, err := NewRunner(w).Run(script, time.Unix(0, 0))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	return trace
}

func states(tr *Trace) []wheel.ScrollState {
	var out []wheel.ScrollState
	for _, ev := range tr.Events {
		out = append(out, ev.State)
	}
	return out
}

func TestRunDrag(t *testing.T) {
	w, err := wheel.New()
	if err != nil {
		t.Fatalf("wheel.New: %v", err)
	}
	trace := run(t, w, "down 100\nmove 150\nup\n")

	want := []wheel.ScrollState{wheel.ScrollDragging, wheel.ScrollIdle}
	if got := states(trace); !reflect.DeepEqual(got, want) {
		t.Fatalf("states = %v, want %v", got, want)
	}
	if math.Abs(trace.Final+0.1) > 1e-9 {
		t.Fatalf("Final = %v, want -0.1", trace.Final)
	}
	if trace.Events[0].Line != 2 || trace.Events[1].Line != 3 {
		t.Fatalf("event lines = %d,%d, want 2,3", trace.Events[0].Line, trace.Events[1].Line)
	}
}

func TestRunFlingSettlesOnMark(t *testing.T) {
	w, err := wheel.New(wheel.WithSnapToMarks(true))
	if err != nil {
		t.Fatalf("wheel.New: %v", err)
	}
	trace := run(t, w, "down 0; fling 3000; up")

	want := []wheel.ScrollState{wheel.ScrollSettling, wheel.ScrollIdle}
	if got := states(trace); !reflect.DeepEqual(got, want) {
		t.Fatalf("states = %v, want %v", got, want)
	}
	step := 2 * math.Pi / 40
	if got, want := trace.Final, -8*step; math.Abs(got-want) > 1e-9 {
		t.Fatalf("Final = %v, want %v", got, want)
	}
	if trace.MarksCrossed != 8 {
		t.Fatalf("MarksCrossed = %d, want 8", trace.MarksCrossed)
	}
	if trace.Elapsed < 600*time.Millisecond {
		t.Fatalf("Elapsed = %v, want at least the settle duration", trace.Elapsed)
	}
}

func TestRunWaitInterruptedByDown(t *testing.T) {
	w, err := wheel.New()
	if err != nil {
		t.Fatalf("wheel.New: %v", err)
	}
	trace := run(t, w, "fling 3000\nwait 100ms\ndown 0\nup")

	want := []wheel.ScrollState{wheel.ScrollSettling, wheel.ScrollIdle}
	if got := states(trace); !reflect.DeepEqual(got, want) {
		t.Fatalf("states = %v, want %v", got, want)
	}
	if trace.Events[1].At != 100*time.Millisecond {
		t.Fatalf("settle interrupted at %v, want 100ms", trace.Events[1].At)
	}
	if trace.Final >= 0 || trace.Final <= -1.2 {
		t.Fatalf("Final = %v, want strictly between -1.2 and 0", trace.Final)
	}
}

func TestRunAngle(t *testing.T) {
	w, err := wheel.New()
	if err != nil {
		t.Fatalf("wheel.New: %v", err)
	}
	trace := run(t, w, "angle 90")
	if math.Abs(trace.Final-math.Pi/2) > 1e-12 {
		t.Fatalf("Final = %v, want π/2", trace.Final)
	}
	if len(trace.Events) != 0 {
		t.Fatalf("events = %v, want none", trace.Events)
	}
	if trace.String() == "" {
		t.Fatal("String() is empty")
	}
}
