package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"fueltracker/internal/core"
)

const maxBodyBytes = 64 << 10

// entryRequest is the body of POST /entries, POST /entries/preview and
// PUT /entries/{id}. Missing amounts decode as 0 and fail validation.
type entryRequest struct {
	Date          string  `json:"date"`
	TotalCost     float64 `json:"total_cost"`
	PricePerLitre float64 `json:"price_per_litre"`
	DistanceKm    float64 `json:"distance_km"`
}

var errMalformedBody = &core.ValidationError{
	Field:  "body",
	Reason: "request body must be a JSON object with date, total_cost, price_per_litre and distance_km",
}

// decodeEntryRequest reads one JSON object and turns it into validated raw
// input. Unknown fields and trailing data are rejected.
func decodeEntryRequest(w http.ResponseWriter, r *http.Request) (core.RawInput, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	var req entryRequest
	if err := dec.Decode(&req); err != nil {
		return core.RawInput{}, errMalformedBody
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return core.RawInput{}, errMalformedBody
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.RawInput{}, err
	}
	raw := core.RawInput{
		Date:          date,
		TotalCost:     req.TotalCost,
		PricePerLitre: req.PricePerLitre,
		DistanceKm:    req.DistanceKm,
	}
	if err := raw.Validate(); err != nil {
		return core.RawInput{}, err
	}
	return raw, nil
}

// parseEntryID reads the {id} path value.
func parseEntryID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("id")), 10, 64)
	if err != nil || id < 1 {
		return 0, &core.ValidationError{Field: core.FieldID, Reason: "entry id must be a positive whole number"}
	}
	return id, nil
}

// parseListOptions reads order_by and direction from the query string.
func parseListOptions(r *http.Request) (core.ListOptions, error) {
	q := r.URL.Query()
	return core.ParseListOptions(q.Get("order_by"), q.Get("direction"))
}

// adminCredential returns the supplied admin secret and whether the header
// was sent at all. An absent header is a cancelled attempt.
func adminCredential(r *http.Request) (string, bool) {
	values := r.Header.Values(HeaderAdminSecret)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}
