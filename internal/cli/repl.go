package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fueltracker/internal/core"
	"fueltracker/internal/gate"
)

// printlnFn and printFn are test seams for REPL output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests provide a lightweight stub.
type execIface interface {
	Add(ctx context.Context) error
	Preview(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Summary(ctx context.Context) error
	Series(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Admin(ctx context.Context) error
}

const helpText = `Commands:
  add                         log a refuel
  preview                     compute metrics without saving
  list [order_by] [asc|desc]  show all entries (default: date desc)
  summary                     totals and averages
  series                      efficiency and cost over time
  edit <id>                   change an entry (admin)
  delete <id>                 remove an entry (admin)
  admin                       list entries for modification (admin)
  help                        show this text
  exit | quit                 leave`

// runREPL reads commands with readLine until the input ends, the user
// exits or ctx is cancelled. Command errors are reported and the loop
// continues.
func runREPL(ctx context.Context, a execIface, readLine func() (string, bool, error)) {
	for {
		if ctx.Err() != nil {
			return
		}
		printFn("fuel> ")
		line, ok, err := readLine()
		if err != nil || !ok {
			printlnFn()
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			printlnFn(helpText)
		case "add":
			report(a.Add(ctx))
		case "preview":
			report(a.Preview(ctx))
		case "l", "list":
			report(a.List(ctx, args))
		case "summary":
			report(a.Summary(ctx))
		case "series":
			report(a.Series(ctx))
		case "edit":
			report(a.Edit(ctx, args))
		case "delete", "rm":
			report(a.Delete(ctx, args))
		case "admin":
			report(a.Admin(ctx))
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd, "(type 'help')")
		}
	}
}

// report prints a command error in user terms. A cancelled prompt prints
// nothing.
func report(err error) {
	switch {
	case err == nil, errors.Is(err, gate.ErrCancelled):
	case errors.Is(err, core.ErrDenied):
		printlnFn("Access denied: incorrect password.")
	default:
		printlnFn("Error:", core.UserMessage(err))
	}
}
