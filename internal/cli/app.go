package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"fueltracker/internal/core"
	"fueltracker/internal/gate"
	applog "fueltracker/internal/log"
	"fueltracker/internal/services"
)

// App is the interactive logbook shell. Every command reads its answers
// from the same input the REPL reads commands from.
type App struct {
	entries *services.EntryService
	gate    *gate.Gate
	prompt  *prompter
	out     io.Writer
	logger  *applog.Logger
	now     func() time.Time
}

// NewApp wires the shell to in and out. fd is the descriptor of in, used to
// read the admin password without echo when it is a terminal.
func NewApp(entries *services.EntryService, g *gate.Gate, in io.Reader, out io.Writer, fd int, logger *applog.Logger) *App {
	if logger == nil {
		logger = applog.Discard()
	}
	return &App{
		entries: entries,
		gate:    g,
		prompt:  newPrompter(in, out, fd),
		out:     out,
		logger:  logger.WithComponent(applog.ComponentCLI),
		now:     time.Now,
	}
}

// Run starts the REPL and returns when the input ends, the user exits or
// ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	printlnFn("Fuel logbook. Type 'help' for commands.")
	runREPL(ctx, a, a.prompt.line)
}

func (a *App) today() core.Date {
	t := a.now()
	return core.NewDate(t.Year(), int(t.Month()), t.Day())
}

// readRaw asks for the four raw fields, offering def's values as defaults.
func (a *App) readRaw(def core.RawInput) (core.RawInput, error) {
	s, err := a.prompt.ask("Date (YYYY-MM-DD)", def.Date.String())
	if err != nil {
		return core.RawInput{}, err
	}
	date, err := core.ParseDate(s)
	if err != nil {
		return core.RawInput{}, err
	}
	cost, err := a.prompt.askFloat("Total cost", core.FieldTotalCost, def.TotalCost)
	if err != nil {
		return core.RawInput{}, err
	}
	price, err := a.prompt.askFloat("Price per litre", core.FieldPricePerLitre, def.PricePerLitre)
	if err != nil {
		return core.RawInput{}, err
	}
	dist, err := a.prompt.askFloat("Distance (km)", core.FieldDistanceKm, def.DistanceKm)
	if err != nil {
		return core.RawInput{}, err
	}
	return core.RawInput{Date: date, TotalCost: cost, PricePerLitre: price, DistanceKm: dist}, nil
}

// authorize asks for the admin password and checks it against the gate.
func (a *App) authorize(ctx context.Context) error {
	secret, provided, err := a.prompt.password("Admin password: ")
	if err != nil {
		return err
	}
	decision := a.gate.Authorize(secret, provided)
	a.logger.InfoContext(ctx, "Admin access attempt",
		applog.FieldOperation, applog.OpAuthorize,
		applog.FieldAccessGrant, decision.String())
	return decision.Err()
}

func (a *App) Add(ctx context.Context) error {
	raw, err := a.readRaw(core.RawInput{Date: a.today()})
	if err != nil {
		return err
	}
	e, err := a.entries.Create(ctx, raw)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Entry %d added for %s:\n", e.ID, e.Date)
	writeMetrics(a.out, e.Metrics)
	return nil
}

func (a *App) Preview(ctx context.Context) error {
	raw, err := a.readRaw(core.RawInput{Date: a.today()})
	if err != nil {
		return err
	}
	m, err := a.entries.Preview(raw)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Preview for %s (not saved):\n", raw.Date)
	writeMetrics(a.out, m)
	return nil
}

// List prints every entry. args may carry an order field and a direction.
func (a *App) List(ctx context.Context, args []string) error {
	var orderBy, direction string
	if len(args) > 0 {
		orderBy = args[0]
	}
	if len(args) > 1 {
		direction = args[1]
	}
	opts, err := core.ParseListOptions(orderBy, direction)
	if err != nil {
		return err
	}
	entries, err := a.entries.ListAll(ctx, opts)
	if err != nil {
		return err
	}
	writeEntries(a.out, entries)
	return nil
}

func (a *App) Summary(ctx context.Context) error {
	s, err := a.entries.Summary(ctx)
	if err != nil {
		return err
	}
	writeSummary(a.out, s)
	return nil
}

func (a *App) Series(ctx context.Context) error {
	s, err := a.entries.Series(ctx)
	if err != nil {
		return err
	}
	writeSeries(a.out, s)
	return nil
}

// Edit replaces every field of one entry. Blank answers keep the current
// value.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	if err := a.authorize(ctx); err != nil {
		return err
	}
	current, err := a.entries.Get(ctx, id)
	if err != nil {
		return err
	}
	raw, err := a.readRaw(current.Raw())
	if err != nil {
		return err
	}
	updated, err := a.entries.Update(ctx, id, raw)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Entry %d updated:\n", updated.ID)
	writeMetrics(a.out, updated.Metrics)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	if err := a.authorize(ctx); err != nil {
		return err
	}
	current, err := a.entries.Get(ctx, id)
	if err != nil {
		return err
	}
	ok, err := a.prompt.confirm(fmt.Sprintf("Delete entry %d from %s", current.ID, current.Date))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Nothing deleted.")
		return nil
	}
	if err := a.entries.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Entry %d deleted.\n", id)
	return nil
}

// Admin lists entries for modification after checking the password.
func (a *App) Admin(ctx context.Context) error {
	if err := a.authorize(ctx); err != nil {
		return err
	}
	entries, err := a.entries.ListAll(ctx, core.DefaultListOrder)
	if err != nil {
		return err
	}
	writeEntries(a.out, entries)
	fmt.Fprintln(a.out, "Use 'edit <id>' or 'delete <id>' to change an entry.")
	return nil
}
