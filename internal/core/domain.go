package core

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of an entry date.
const DateLayout = "2006-01-02"

type (
	// Date is a calendar date without time of day, always in UTC.
	Date struct {
		time.Time
	}

	// RawInput holds the user supplied part of a refuel.
	RawInput struct {
		Date          Date
		TotalCost     float64
		PricePerLitre float64
		DistanceKm    float64
	}

	// FuelEntry is one logged refuelling event with its derived metrics.
	FuelEntry struct {
		ID            int64
		Date          Date
		TotalCost     float64
		PricePerLitre float64
		DistanceKm    float64
		Metrics       Metrics
	}
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string. Empty or malformed input is an
// InvalidInput error on the date field.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, invalid(FieldDate, "date is required")
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, invalid(FieldDate, "date must look like YYYY-MM-DD")
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return invalid(FieldDate, "date is required")
	}
	return nil
}

// String returns the date in YYYY-MM-DD form, or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return invalid(FieldDate, "date must be a string like YYYY-MM-DD")
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Validate checks the date and that all three amounts are strictly positive
// finite numbers. The first failing field is reported.
func (in RawInput) Validate() error {
	if err := in.Date.Validate(); err != nil {
		return err
	}
	return validateAmounts(in.TotalCost, in.PricePerLitre, in.DistanceKm)
}

func validateAmounts(totalCost, pricePerLitre, distanceKm float64) error {
	if !positive(totalCost) {
		return invalid(FieldTotalCost, "total cost must be positive")
	}
	if !positive(pricePerLitre) {
		return invalid(FieldPricePerLitre, "price per litre must be positive")
	}
	if !positive(distanceKm) {
		return invalid(FieldDistanceKm, "distance must be positive")
	}
	return nil
}

// positive is false for NaN and infinities as well.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// NewFuelEntry validates raw and derives every metric in one step. The
// returned entry has no ID until a store assigns one.
func NewFuelEntry(raw RawInput) (FuelEntry, error) {
	if err := raw.Date.Validate(); err != nil {
		return FuelEntry{}, err
	}
	m, err := ComputeMetrics(raw.TotalCost, raw.PricePerLitre, raw.DistanceKm)
	if err != nil {
		return FuelEntry{}, err
	}
	return FuelEntry{
		Date:          raw.Date,
		TotalCost:     raw.TotalCost,
		PricePerLitre: raw.PricePerLitre,
		DistanceKm:    raw.DistanceKm,
		Metrics:       m,
	}, nil
}

// Raw returns the user supplied fields of the entry.
func (e FuelEntry) Raw() RawInput {
	return RawInput{
		Date:          e.Date,
		TotalCost:     e.TotalCost,
		PricePerLitre: e.PricePerLitre,
		DistanceKm:    e.DistanceKm,
	}
}

// WithID returns a copy of e carrying id.
func (e FuelEntry) WithID(id int64) FuelEntry {
	e.ID = id
	return e
}
