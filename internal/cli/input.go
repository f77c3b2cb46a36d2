package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/term"

	"fueltracker/internal/core"
	"fueltracker/internal/gate"
)

// readPassword and isTerminal are test seams for the x/term calls.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// prompter reads answers line by line from one shared reader, so the REPL
// and the command prompts never race for buffered input.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

func newPrompter(in io.Reader, out io.Writer, fd int) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out, fd: fd}
}

// line reads one line. ok is false on EOF with nothing typed.
func (p *prompter) line() (string, bool, error) {
	s, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if s == "" {
				return "", false, nil
			}
			return strings.TrimSpace(s), true, nil
		}
		return "", false, err
	}
	return strings.TrimSpace(s), true, nil
}

// ask prints label and returns the answer, or def when the answer is empty.
// EOF cancels the whole command.
func (p *prompter) ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	s, ok, err := p.line()
	if err != nil {
		return "", err
	}
	if !ok {
		fmt.Fprintln(p.out)
		return "", gate.ErrCancelled
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

func (p *prompter) askFloat(label, field string, def float64) (float64, error) {
	d := ""
	if def > 0 {
		d = strconv.FormatFloat(def, 'f', -1, 64)
	}
	s, err := p.ask(label, d)
	if err != nil {
		return 0, err
	}
	return parseAmount(field, s)
}

// password reads the admin secret without echo when stdin is a terminal.
// provided is false when the user enters nothing or closes the input.
func (p *prompter) password(label string) (secret string, provided bool, err error) {
	fmt.Fprint(p.out, label)
	if isTerminal(p.fd) {
		pw, err := readPassword(p.fd)
		fmt.Fprintln(p.out)
		if errors.Is(err, io.EOF) {
			return "", false, nil
		}
		if err != nil {
			return "", false, fmt.Errorf("read password: %w", err)
		}
		return string(pw), len(pw) > 0, nil
	}

	s, ok, err := p.line()
	if err != nil {
		return "", false, fmt.Errorf("read password: %w", err)
	}
	return s, ok && s != "", nil
}

func (p *prompter) confirm(label string) (bool, error) {
	s, err := p.ask(label+" [y/N]", "")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func parseAmount(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &core.ValidationError{Field: field, Reason: fieldLabel(field) + " must be a number"}
	}
	return v, nil
}

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, &core.ValidationError{Field: core.FieldID, Reason: "an entry id is required"}
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, &core.ValidationError{Field: core.FieldID, Reason: "entry id must be a positive whole number"}
	}
	return id, nil
}

func fieldLabel(field string) string {
	switch field {
	case core.FieldTotalCost:
		return "total cost"
	case core.FieldPricePerLitre:
		return "price per litre"
	case core.FieldDistanceKm:
		return "distance"
	default:
		return field
	}
}
