package ports

import (
	"context"

	"fueltracker/internal/core"
)

// Ports for outbound adapters.
type (
	// EntryWriter persists fully derived entries. Implementations never
	// compute metrics themselves; they store what they are given.
	EntryWriter interface {
		// Create stores e and returns it with a freshly assigned ID.
		Create(ctx context.Context, e core.FuelEntry) (core.FuelEntry, error)
		// Update replaces every raw and derived field of the entry with e.ID.
		// Returns core.ErrNotFound when the id does not exist.
		Update(ctx context.Context, e core.FuelEntry) (core.FuelEntry, error)
		// Delete removes the entry permanently, core.ErrNotFound when absent.
		Delete(ctx context.Context, id int64) error
	}

	EntryReader interface {
		Get(ctx context.Context, id int64) (core.FuelEntry, error)
		// List returns every entry in the requested order; ties keep
		// insertion order.
		List(ctx context.Context, opts core.ListOptions) ([]core.FuelEntry, error)
	}

	// EntryStore is what the entry service needs from a backend.
	EntryStore interface {
		EntryWriter
		EntryReader
		Close() error
	}
)
