package memory

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"fueltracker/internal/core"
)

// Store keeps entries in insertion order in process memory. It backs fast
// tests and the "memory" data backend.
type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.FuelEntry
}

func New() *Store {
	return &Store{nextID: 1}
}

// NewFromFile seeds a store from a CSV file with the header
// date,total_cost,price_per_litre,distance_km. A missing file yields an
// empty store; a malformed row is an error.
func NewFromFile(path string) (*Store, error) {
	s := New()
	if path == "" {
		return s, nil
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	if err := s.seed(f); err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) seed(r io.Reader) error {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = 4
	cr.TrimLeadingSpace = true

	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		line++
		if line == 1 && strings.EqualFold(rec[0], "date") {
			continue
		}

		raw, err := parseRecord(rec)
		if err != nil {
			return fmt.Errorf("record %d: %w", line, err)
		}
		e, err := core.NewFuelEntry(raw)
		if err != nil {
			return fmt.Errorf("record %d: %w", line, err)
		}
		if _, err := s.Create(context.Background(), e); err != nil {
			return err
		}
	}
}

func parseRecord(rec []string) (core.RawInput, error) {
	date, err := core.ParseDate(rec[0])
	if err != nil {
		return core.RawInput{}, err
	}
	nums := make([]float64, 3)
	for i, v := range rec[1:] {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return core.RawInput{}, fmt.Errorf("column %d: %w", i+2, err)
		}
		nums[i] = f
	}
	return core.RawInput{Date: date, TotalCost: nums[0], PricePerLitre: nums[1], DistanceKm: nums[2]}, nil
}

// Create stores e under the next id. Ids are never reused.
func (s *Store) Create(_ context.Context, e core.FuelEntry) (core.FuelEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID
	s.nextID++
	s.items = append(s.items, e)
	return e, nil
}

func (s *Store) Update(_ context.Context, e core.FuelEntry) (core.FuelEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(e.ID)
	if i < 0 {
		return core.FuelEntry{}, core.NewNotFound(e.ID)
	}
	s.items[i] = e
	return e, nil
}

func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return core.NewNotFound(id)
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

func (s *Store) Get(_ context.Context, id int64) (core.FuelEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return core.FuelEntry{}, core.NewNotFound(id)
	}
	return s.items[i], nil
}

// List returns a sorted copy; the stored order is untouched.
func (s *Store) List(_ context.Context, opts core.ListOptions) ([]core.FuelEntry, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	out := append([]core.FuelEntry(nil), s.items...)
	s.mu.Unlock()

	core.SortEntries(out, opts)
	return out, nil
}

func (s *Store) Close() error { return nil }

func (s *Store) indexOf(id int64) int {
	for i, e := range s.items {
		if e.ID == id {
			return i
		}
	}
	return -1
}
