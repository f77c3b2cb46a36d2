package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fueltracker/internal/core"
	"fueltracker/internal/gate"
	applog "fueltracker/internal/log"
)

type metricsResponse struct {
	Litres         float64 `json:"litres"`
	KmPerLitre     float64 `json:"km_per_litre"`
	LitresPer100Km float64 `json:"litres_per_100km"`
	CostPerKm      float64 `json:"cost_per_km"`
}

type entryResponse struct {
	ID            int64     `json:"id"`
	Date          core.Date `json:"date"`
	TotalCost     float64   `json:"total_cost"`
	PricePerLitre float64   `json:"price_per_litre"`
	DistanceKm    float64   `json:"distance_km"`
	metricsResponse
}

type summaryResponse struct {
	Count             int     `json:"count"`
	TotalCost         float64 `json:"total_cost"`
	TotalLitres       float64 `json:"total_litres"`
	TotalDistanceKm   float64 `json:"total_distance_km"`
	AvgKmPerLitre     float64 `json:"avg_km_per_litre"`
	AvgLitresPer100Km float64 `json:"avg_litres_per_100km"`
	AvgCostPerKm      float64 `json:"avg_cost_per_km"`
}

type seriesPointResponse struct {
	Date       core.Date `json:"date"`
	KmPerLitre float64   `json:"km_per_litre"`
	CostPerKm  float64   `json:"cost_per_km"`
}

type seriesResponse struct {
	Points []seriesPointResponse `json:"points"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newMetricsResponse(m core.Metrics) metricsResponse {
	return metricsResponse{
		Litres:         m.Litres,
		KmPerLitre:     m.KmPerLitre,
		LitresPer100Km: m.LitresPer100Km,
		CostPerKm:      m.CostPerKm,
	}
}

func newEntryResponse(e core.FuelEntry) entryResponse {
	return entryResponse{
		ID:              e.ID,
		Date:            e.Date,
		TotalCost:       e.TotalCost,
		PricePerLitre:   e.PricePerLitre,
		DistanceKm:      e.DistanceKm,
		metricsResponse: newMetricsResponse(e.Metrics),
	}
}

func newEntryListResponse(entries []core.FuelEntry) []entryResponse {
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, newEntryResponse(e))
	}
	return out
}

func newSummaryResponse(s core.Summary) summaryResponse {
	return summaryResponse{
		Count:             s.Count,
		TotalCost:         s.TotalCost,
		TotalLitres:       s.TotalLitres,
		TotalDistanceKm:   s.TotalDistance,
		AvgKmPerLitre:     s.AvgKmPerLitre,
		AvgLitresPer100Km: s.AvgLitresPer100Km,
		AvgCostPerKm:      s.AvgCostPerKm,
	}
}

func newSeriesResponse(s core.Series) seriesResponse {
	out := seriesResponse{Points: make([]seriesPointResponse, 0, len(s.Points))}
	for _, p := range s.Points {
		out.Points = append(out.Points, seriesPointResponse{Date: p.Date, KmPerLitre: p.KmPerLitre, CostPerKm: p.CostPerKm})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// statusFor maps a domain error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, gate.ErrCancelled):
		return http.StatusUnauthorized
	case errors.Is(err, core.ErrDenied):
		return http.StatusForbidden
	case errors.Is(err, core.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrNotEnoughData):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err for the user. A cancelled authorization gets no
// body at all.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
			applog.FieldError, err,
			applog.FieldPath, r.URL.Path)
	}
	if status == http.StatusUnauthorized {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, status, errorResponse{Error: core.UserMessage(err)})
}
