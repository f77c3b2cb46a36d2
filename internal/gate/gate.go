// Package gate holds the shared-passphrase check in front of the logbook's
// administrative operations (edit, delete, admin listing).
//
// It is a nuisance barrier, not a security boundary: one process-wide
// secret, exact string comparison, no hashing, no lockout.
package gate

import (
	"errors"
	"fmt"

	"fueltracker/internal/core"
)

// ErrCancelled is returned when no secret was supplied at all. Callers must
// stay silent on it, unlike on core.ErrDenied.
var ErrCancelled = errors.New("authorization cancelled")

// Decision is the outcome of an authorization attempt.
type Decision int

const (
	Cancelled Decision = iota
	Denied
	Authorized
)

func (d Decision) String() string {
	switch d {
	case Authorized:
		return "authorized"
	case Denied:
		return "denied"
	default:
		return "cancelled"
	}
}

// Err maps the decision to nil, core.ErrDenied or ErrCancelled.
func (d Decision) Err() error {
	switch d {
	case Authorized:
		return nil
	case Denied:
		return core.ErrDenied
	default:
		return ErrCancelled
	}
}

// Gate compares supplied secrets against the configured one.
type Gate struct {
	secret string
}

func New(secret string) *Gate {
	return &Gate{secret: secret}
}

// Authorize checks supplied. provided is false when the user dismissed the
// prompt without answering. An unset configured secret matches nothing.
func (g *Gate) Authorize(supplied string, provided bool) Decision {
	if !provided {
		return Cancelled
	}
	if g.secret == "" || supplied != g.secret {
		return Denied
	}
	return Authorized
}

// Guard runs fn only when supplied is accepted.
func (g *Gate) Guard(supplied string, provided bool, fn func() error) error {
	if err := g.Authorize(supplied, provided).Err(); err != nil {
		return fmt.Errorf("authorize: %w", err)
	}
	return fn()
}
