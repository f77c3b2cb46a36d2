package core

import (
	"fmt"
	"sort"
	"strings"
)

const (
	SortByDate       SortField = "date"
	SortByID         SortField = "id"
	SortByTotalCost  SortField = "total_cost"
	SortByDistance   SortField = "distance_km"
	SortByKmPerLitre SortField = "km_per_litre"
	SortByCostPerKm  SortField = "cost_per_km"

	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

type (
	SortField     string
	SortDirection string

	// ListOptions selects the order of a full listing.
	ListOptions struct {
		OrderBy   SortField
		Direction SortDirection
	}
)

var (
	// DefaultListOrder is the history view order: newest first.
	DefaultListOrder = ListOptions{OrderBy: SortByDate, Direction: Descending}
	// TimeSeriesOrder is the plotting order: oldest first.
	TimeSeriesOrder = ListOptions{OrderBy: SortByDate, Direction: Ascending}
)

func (f SortField) IsValid() bool {
	switch f {
	case SortByDate, SortByID, SortByTotalCost, SortByDistance, SortByKmPerLitre, SortByCostPerKm:
		return true
	default:
		return false
	}
}

func (d SortDirection) IsValid() bool {
	return d == Ascending || d == Descending
}

// ParseListOptions reads user supplied ordering, falling back to the
// defaults for empty values.
func ParseListOptions(orderBy, direction string) (ListOptions, error) {
	opts := DefaultListOrder
	if v := strings.TrimSpace(strings.ToLower(orderBy)); v != "" {
		opts.OrderBy = SortField(v)
	}
	if v := strings.TrimSpace(strings.ToLower(direction)); v != "" {
		opts.Direction = SortDirection(v)
	}
	return opts, opts.Validate()
}

// Normalize fills empty fields with the defaults.
func (o ListOptions) Normalize() ListOptions {
	if o.OrderBy == "" {
		o.OrderBy = DefaultListOrder.OrderBy
	}
	if o.Direction == "" {
		o.Direction = DefaultListOrder.Direction
	}
	return o
}

func (o ListOptions) Validate() error {
	o = o.Normalize()
	if !o.OrderBy.IsValid() {
		return &ValidationError{Field: "order_by", Reason: fmt.Sprintf("cannot sort by %q", o.OrderBy)}
	}
	if !o.Direction.IsValid() {
		return &ValidationError{Field: "direction", Reason: "direction must be asc or desc"}
	}
	return nil
}

// SortEntries orders entries in place. Entries with equal keys keep
// insertion order (ascending id) in both directions.
func SortEntries(entries []FuelEntry, opts ListOptions) {
	opts = opts.Normalize()
	desc := opts.Direction == Descending

	sort.SliceStable(entries, func(i, j int) bool {
		c := compareBy(opts.OrderBy, entries[i], entries[j])
		if c == 0 {
			return entries[i].ID < entries[j].ID
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func compareBy(field SortField, a, b FuelEntry) int {
	switch field {
	case SortByID:
		return cmpInt(a.ID, b.ID)
	case SortByTotalCost:
		return cmpFloat(a.TotalCost, b.TotalCost)
	case SortByDistance:
		return cmpFloat(a.DistanceKm, b.DistanceKm)
	case SortByKmPerLitre:
		return cmpFloat(a.Metrics.KmPerLitre, b.Metrics.KmPerLitre)
	case SortByCostPerKm:
		return cmpFloat(a.Metrics.CostPerKm, b.Metrics.CostPerKm)
	default:
		return a.Date.Compare(b.Date.Time)
	}
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
