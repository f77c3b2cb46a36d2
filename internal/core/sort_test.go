package core

import (
	"errors"
	"testing"
)

func ids(entries []FuelEntry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSortEntries(t *testing.T) {
	base := []FuelEntry{
		mustEntry(t, 1, NewDate(2024, 1, 5), 50, 2, 400),
		mustEntry(t, 2, NewDate(2024, 1, 1), 30, 2, 300),
		mustEntry(t, 3, NewDate(2024, 1, 5), 70, 2, 350),
		mustEntry(t, 4, NewDate(2024, 2, 1), 20, 2, 100),
	}

	cases := []struct {
		name string
		opts ListOptions
		want []int64
	}{
		{"default is date desc with stable ties", ListOptions{}, []int64{4, 1, 3, 2}},
		{"date asc", TimeSeriesOrder, []int64{2, 1, 3, 4}},
		{"total cost asc", ListOptions{OrderBy: SortByTotalCost, Direction: Ascending}, []int64{4, 2, 1, 3}},
		{"id desc", ListOptions{OrderBy: SortByID, Direction: Descending}, []int64{4, 3, 2, 1}},
		{"distance desc", ListOptions{OrderBy: SortByDistance, Direction: Descending}, []int64{1, 3, 2, 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entries := append([]FuelEntry(nil), base...)
			SortEntries(entries, tc.opts)
			if got := ids(entries); !equalIDs(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseListOptions(t *testing.T) {
	opts, err := ParseListOptions("", "")
	if err != nil || opts != DefaultListOrder {
		t.Fatalf("expected defaults, got %+v err=%v", opts, err)
	}

	opts, err = ParseListOptions("KM_PER_LITRE", "asc")
	if err != nil || opts.OrderBy != SortByKmPerLitre || opts.Direction != Ascending {
		t.Fatalf("unexpected %+v err=%v", opts, err)
	}

	if _, err := ParseListOptions("colour", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := ParseListOptions("date", "sideways"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
