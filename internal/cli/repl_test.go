package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"fueltracker/internal/core"
	"fueltracker/internal/gate"
)

type fakeExec struct {
	calls []string
	args  [][]string
	err   error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeExec) Add(context.Context) error                  { return f.record("add", nil) }
func (f *fakeExec) Preview(context.Context) error              { return f.record("preview", nil) }
func (f *fakeExec) List(_ context.Context, a []string) error   { return f.record("list", a) }
func (f *fakeExec) Summary(context.Context) error              { return f.record("summary", nil) }
func (f *fakeExec) Series(context.Context) error               { return f.record("series", nil) }
func (f *fakeExec) Edit(_ context.Context, a []string) error   { return f.record("edit", a) }
func (f *fakeExec) Delete(_ context.Context, a []string) error { return f.record("delete", a) }
func (f *fakeExec) Admin(context.Context) error                { return f.record("admin", nil) }

// captureOutput redirects the REPL seams into a string builder.
func captureOutput(t *testing.T) *strings.Builder {
	t.Helper()
	var out strings.Builder
	origPrintln, origPrint := printlnFn, printFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(&out, a...) }
	printFn = func(a ...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn, printFn = origPrintln, origPrint })
	return &out
}

func lineReader(input string) func() (string, bool, error) {
	return newPrompter(strings.NewReader(input), &strings.Builder{}, -1).line
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{}
	input := strings.Join([]string{
		"help",
		"add",
		"",
		"preview",
		"list km_per_litre asc",
		"summary",
		"series",
		"EDIT 4",
		"delete 4",
		"admin",
		"foobar",
		"exit",
		"add",
	}, "\n")

	runREPL(context.Background(), exec, lineReader(input))

	want := []string{"add", "preview", "list", "summary", "series", "edit", "delete", "admin"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
	if got := exec.args[2]; len(got) != 2 || got[0] != "km_per_litre" || got[1] != "asc" {
		t.Fatalf("unexpected list args %v", got)
	}
	if got := exec.args[5]; len(got) != 1 || got[0] != "4" {
		t.Fatalf("unexpected edit args %v", got)
	}
	for _, s := range []string{"Commands:", "Unknown command: foobar", "Bye!"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("output missing %q:\n%s", s, out.String())
		}
	}
}

func TestRunREPL_StopsOnEOFAndCancelledContext(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, lineReader("summary"))
	if len(exec.calls) != 1 {
		t.Fatalf("expected the last unterminated line to run, got %v", exec.calls)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec = &fakeExec{}
	runREPL(ctx, exec, lineReader("summary\nsummary\n"))
	if len(exec.calls) != 0 {
		t.Fatalf("expected no calls after cancel, got %v", exec.calls)
	}
}

func TestReport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"cancelled is silent", fmt.Errorf("authorize: %w", gate.ErrCancelled), ""},
		{"denied", fmt.Errorf("authorize: %w", core.ErrDenied), "Access denied: incorrect password.\n"},
		{"not found", core.NewNotFound(3), "Error: entry 3 was not found\n"},
		{"not enough data", core.ErrNotEnoughData, "Error: at least two entries are needed to draw a chart\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureOutput(t)
			report(tt.err)
			if out.String() != tt.want {
				t.Fatalf("report() printed %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestPrompterLine(t *testing.T) {
	p := newPrompter(strings.NewReader("  first  \nlast"), &strings.Builder{}, -1)

	for _, want := range []string{"first", "last"} {
		got, ok, err := p.line()
		if err != nil || !ok || got != want {
			t.Fatalf("line() = %q, %v, %v; want %q", got, ok, err, want)
		}
	}
	if _, ok, err := p.line(); ok || err != nil {
		t.Fatalf("expected clean EOF, got ok=%v err=%v", ok, err)
	}
}
