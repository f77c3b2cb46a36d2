package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fueltracker/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository implements ports.EntryStore on a local SQLite file.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

// DSN builds the modernc.org/sqlite connection string for dbPath.
func DSN(dbPath string) string {
	return "file:" + dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(FULL)"
}

// NewSQLiteRepository opens (creating if needed) the database at dbPath and
// applies pending migrations.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := DSN(dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer at a time keeps each CRUD call atomic against the file.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repo := &SQLiteRepository{
		db:      db,
		queries: New(db),
	}

	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database file is still reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Create implements ports.EntryWriter
func (r *SQLiteRepository) Create(ctx context.Context, e core.FuelEntry) (core.FuelEntry, error) {
	row, err := r.queries.CreateFuelEntry(ctx, CreateFuelEntryParams{
		Date:           e.Date.String(),
		TotalCost:      e.TotalCost,
		PricePerLitre:  e.PricePerLitre,
		DistanceKm:     e.DistanceKm,
		Litres:         e.Metrics.Litres,
		KmPerLitre:     e.Metrics.KmPerLitre,
		LitresPer100km: e.Metrics.LitresPer100Km,
		CostPerKm:      e.Metrics.CostPerKm,
	})
	if err != nil {
		return core.FuelEntry{}, storageErr("create", fmt.Errorf("insert fuel entry: %w", err))
	}

	slog.DebugContext(ctx, "Fuel entry saved to SQLite", "id", row.ID, "date", row.Date)

	return toDomain("create", row)
}

// Update implements ports.EntryWriter
func (r *SQLiteRepository) Update(ctx context.Context, e core.FuelEntry) (core.FuelEntry, error) {
	row, err := r.queries.UpdateFuelEntry(ctx, UpdateFuelEntryParams{
		ID:             e.ID,
		Date:           e.Date.String(),
		TotalCost:      e.TotalCost,
		PricePerLitre:  e.PricePerLitre,
		DistanceKm:     e.DistanceKm,
		Litres:         e.Metrics.Litres,
		KmPerLitre:     e.Metrics.KmPerLitre,
		LitresPer100km: e.Metrics.LitresPer100Km,
		CostPerKm:      e.Metrics.CostPerKm,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return core.FuelEntry{}, core.NewNotFound(e.ID)
	}
	if err != nil {
		return core.FuelEntry{}, storageErr("update", fmt.Errorf("update fuel entry %d: %w", e.ID, err))
	}

	slog.DebugContext(ctx, "Fuel entry updated in SQLite", "id", row.ID, "date", row.Date)

	return toDomain("update", row)
}

// Delete implements ports.EntryWriter
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteFuelEntry(ctx, id)
	if err != nil {
		return storageErr("delete", fmt.Errorf("delete fuel entry %d: %w", id, err))
	}
	if n == 0 {
		return core.NewNotFound(id)
	}

	slog.DebugContext(ctx, "Fuel entry deleted from SQLite", "id", id)
	return nil
}

// Get implements ports.EntryReader
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (core.FuelEntry, error) {
	row, err := r.queries.GetFuelEntry(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.FuelEntry{}, core.NewNotFound(id)
	}
	if err != nil {
		return core.FuelEntry{}, storageErr("get", fmt.Errorf("get fuel entry %d: %w", id, err))
	}
	return toDomain("get", row)
}

// List implements ports.EntryReader
func (r *SQLiteRepository) List(ctx context.Context, opts core.ListOptions) ([]core.FuelEntry, error) {
	opts = opts.Normalize()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	rows, err := r.queries.ListFuelEntries(ctx, ListFuelEntriesParams{
		OrderBy:    string(opts.OrderBy),
		Descending: opts.Direction == core.Descending,
	})
	if err != nil {
		return nil, storageErr("list", fmt.Errorf("list fuel entries: %w", err))
	}

	entries := make([]core.FuelEntry, 0, len(rows))
	for _, row := range rows {
		e, err := toDomain("list", row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Count returns the number of stored entries.
func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.queries.CountFuelEntries(ctx)
	if err != nil {
		return 0, storageErr("list", fmt.Errorf("count fuel entries: %w", err))
	}
	return n, nil
}

func toDomain(op string, row FuelEntry) (core.FuelEntry, error) {
	date, err := core.ParseDate(row.Date)
	if err != nil {
		return core.FuelEntry{}, storageErr(op, fmt.Errorf("corrupt date %q in fuel entry %d", row.Date, row.ID))
	}
	return core.FuelEntry{
		ID:            row.ID,
		Date:          date,
		TotalCost:     row.TotalCost,
		PricePerLitre: row.PricePerLitre,
		DistanceKm:    row.DistanceKm,
		Metrics: core.Metrics{
			Litres:         row.Litres,
			KmPerLitre:     row.KmPerLitre,
			LitresPer100Km: row.LitresPer100km,
			CostPerKm:      row.CostPerKm,
		},
	}, nil
}

func storageErr(op string, err error) error {
	return &core.StorageError{Op: op, Err: err}
}
