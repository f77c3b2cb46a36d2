package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"fueltracker/internal/core"
	applog "fueltracker/internal/log"
	"fueltracker/internal/ports"
)

// EntryService is the logbook's entry store: it validates raw input, derives
// metrics and hands complete entries to the backend. Writes are serialized
// so a multi-threaded host cannot interleave them.
type EntryService struct {
	store  ports.EntryStore
	logger *applog.Logger
	mu     sync.Mutex
}

func NewEntryService(store ports.EntryStore, logger *applog.Logger) *EntryService {
	if logger == nil {
		logger = applog.Discard()
	}
	return &EntryService{
		store:  store,
		logger: logger.WithComponent(applog.ComponentEntries),
	}
}

// Preview computes the metrics raw would produce without storing anything.
func (s *EntryService) Preview(raw core.RawInput) (core.Metrics, error) {
	e, err := core.NewFuelEntry(raw)
	if err != nil {
		return core.Metrics{}, err
	}
	return e.Metrics, nil
}

// Create validates raw, derives its metrics and persists the new entry.
func (s *EntryService) Create(ctx context.Context, raw core.RawInput) (core.FuelEntry, error) {
	e, err := core.NewFuelEntry(raw)
	if err != nil {
		s.logFailure(ctx, applog.OpCreate, 0, err)
		return core.FuelEntry{}, fmt.Errorf("create entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created, err := s.store.Create(ctx, e)
	if err != nil {
		err = classify(applog.OpCreate, err)
		s.logFailure(ctx, applog.OpCreate, 0, err)
		return core.FuelEntry{}, fmt.Errorf("create entry: %w", err)
	}

	s.logger.InfoContext(ctx, "Fuel entry created", applog.NewFields().
		WithOperation(applog.OpCreate).
		WithEntry(created.ID, created.Date.String(), created.TotalCost, created.DistanceKm).
		ToSlice()...)
	return created, nil
}

// Update replaces every raw and derived field of entry id. Input is
// validated before the store is consulted.
func (s *EntryService) Update(ctx context.Context, id int64, raw core.RawInput) (core.FuelEntry, error) {
	e, err := core.NewFuelEntry(raw)
	if err != nil {
		s.logFailure(ctx, applog.OpUpdate, id, err)
		return core.FuelEntry{}, fmt.Errorf("update entry %d: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.store.Update(ctx, e.WithID(id))
	if err != nil {
		err = classify(applog.OpUpdate, err)
		s.logFailure(ctx, applog.OpUpdate, id, err)
		return core.FuelEntry{}, fmt.Errorf("update entry %d: %w", id, err)
	}

	s.logger.InfoContext(ctx, "Fuel entry updated", applog.NewFields().
		WithOperation(applog.OpUpdate).
		WithEntry(updated.ID, updated.Date.String(), updated.TotalCost, updated.DistanceKm).
		ToSlice()...)
	return updated, nil
}

// Delete removes entry id permanently. Deleting a missing id is an error.
func (s *EntryService) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		err = classify(applog.OpDelete, err)
		s.logFailure(ctx, applog.OpDelete, id, err)
		return fmt.Errorf("delete entry %d: %w", id, err)
	}

	s.logger.InfoContext(ctx, "Fuel entry deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldEntryID, id)
	return nil
}

func (s *EntryService) Get(ctx context.Context, id int64) (core.FuelEntry, error) {
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return core.FuelEntry{}, fmt.Errorf("get entry %d: %w", id, classify("get", err))
	}
	return e, nil
}

// ListAll returns every entry in the requested order, newest first by
// default.
func (s *EntryService) ListAll(ctx context.Context, opts core.ListOptions) ([]core.FuelEntry, error) {
	opts = opts.Normalize()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	entries, err := s.store.List(ctx, opts)
	if err != nil {
		err = classify(applog.OpList, err)
		s.logFailure(ctx, applog.OpList, 0, err)
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// ListForTimeSeries returns every entry oldest first, for plotting.
func (s *EntryService) ListForTimeSeries(ctx context.Context) ([]core.FuelEntry, error) {
	return s.ListAll(ctx, core.TimeSeriesOrder)
}

// Summary aggregates the whole logbook. Nothing is cached; the set is small.
func (s *EntryService) Summary(ctx context.Context) (core.Summary, error) {
	entries, err := s.ListAll(ctx, core.DefaultListOrder)
	if err != nil {
		return core.Summary{}, fmt.Errorf("summarize: %w", err)
	}
	summary := core.Summarize(entries)

	s.logger.DebugContext(ctx, "Summary computed",
		applog.FieldOperation, applog.OpSummary,
		applog.FieldEntryCount, summary.Count)
	return summary, nil
}

// Series returns the efficiency and cost chart data. Fewer than two entries
// yields core.ErrNotEnoughData.
func (s *EntryService) Series(ctx context.Context) (core.Series, error) {
	entries, err := s.ListForTimeSeries(ctx)
	if err != nil {
		return core.Series{}, fmt.Errorf("build series: %w", err)
	}
	series, err := core.BuildSeries(entries)
	if err != nil {
		return series, fmt.Errorf("build series: %w", err)
	}
	return series, nil
}

// Close closes the underlying store.
func (s *EntryService) Close() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		return fmt.Errorf("close entry store: %w", err)
	}
	return nil
}

func (s *EntryService) logFailure(ctx context.Context, op string, id int64, err error) {
	fields := applog.NewFields().WithOperation(op).WithError(err, errorType(err))
	if id != 0 {
		fields[applog.FieldEntryID] = id
	}
	if errors.Is(err, core.ErrStorage) {
		s.logger.ErrorContext(ctx, "Fuel entry operation failed", fields.ToSlice()...)
		return
	}
	s.logger.WarnContext(ctx, "Fuel entry operation rejected", fields.ToSlice()...)
}

// classify leaves domain errors alone and turns anything else coming out of
// a store into a StorageError naming the operation.
func classify(op string, err error) error {
	if errors.Is(err, core.ErrInvalidInput) || errors.Is(err, core.ErrNotFound) || errors.Is(err, core.ErrStorage) {
		return err
	}
	return &core.StorageError{Op: op, Err: err}
}

func errorType(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		return applog.ErrorTypeValidation
	case errors.Is(err, core.ErrNotFound):
		return applog.ErrorTypeNotFound
	case errors.Is(err, core.ErrStorage):
		return applog.ErrorTypeDatabase
	default:
		return applog.ErrorTypeInternal
	}
}
