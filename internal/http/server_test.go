package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fueltracker/internal/gate"
	"fueltracker/internal/services"
	"fueltracker/internal/storage/memory"
)

const testSecret = "s3cret!"

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	svc := services.NewEntryService(memory.New(), nil)
	srv := NewServer(":0", svc, gate.New(testSecret), nil, opts...)
	t.Cleanup(srv.rateLimiter.stop)
	return srv
}

func do(t *testing.T, srv *Server, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func admin(secret string) http.Header {
	h := http.Header{}
	h.Set(HeaderAdminSecret, secret)
	return h
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestHealthAndReady(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rr := do(t, srv, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
}

type downPinger struct{}

func (downPinger) Ping(context.Context) error { return errors.New("database is locked") }

func TestReadyReportsStoreFailure(t *testing.T) {
	srv := newTestServer(t, WithReadiness(downPinger{}))
	rr := do(t, srv, http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestCreateAndGetEntry(t *testing.T) {
	srv := newTestServer(t)

	rr := do(t, srv, http.MethodPost, "/entries", `{"date":"2024-01-01","total_cost":50,"price_per_litre":2,"distance_km":400}`, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[entryResponse](t, rr)
	assert.EqualValues(t, 1, created.ID)
	assert.Equal(t, "/entries/1", rr.Header().Get("Location"))
	assert.Equal(t, 25.0, created.Litres)
	assert.Equal(t, 16.0, created.KmPerLitre)
	assert.Equal(t, 6.25, created.LitresPer100Km)
	assert.Equal(t, 0.125, created.CostPerKm)
	assert.NotEmpty(t, rr.Header().Get(HeaderRequestID))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))

	rr = do(t, srv, http.MethodGet, "/entries/1", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"date":"2024-01-01"`)
	assert.Contains(t, rr.Body.String(), `"km_per_litre":16`)

	rr = do(t, srv, http.MethodGet, "/entries/99", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "entry 99 was not found", decode[errorResponse](t, rr).Error)

	rr = do(t, srv, http.MethodGet, "/entries/abc", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestCreateEntryValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"zero price", `{"date":"2024-01-01","total_cost":50,"price_per_litre":0,"distance_km":400}`, "price per litre must be positive"},
		{"negative distance", `{"date":"2024-01-01","total_cost":50,"price_per_litre":2,"distance_km":-1}`, "distance must be positive"},
		{"missing cost", `{"date":"2024-01-01","price_per_litre":2,"distance_km":400}`, "total cost must be positive"},
		{"bad date", `{"date":"01/02/2024","total_cost":50,"price_per_litre":2,"distance_km":400}`, "date must look like YYYY-MM-DD"},
		{"no date", `{"total_cost":50,"price_per_litre":2,"distance_km":400}`, "date is required"},
		{"unknown field", `{"date":"2024-01-01","total_cost":50,"price_per_litre":2,"distance_km":400,"odometer":1}`, "request body must be a JSON object"},
		{"not json", `date=2024-01-01`, "request body must be a JSON object"},
		{"string amount", `{"date":"2024-01-01","total_cost":"50","price_per_litre":2,"distance_km":400}`, "request body must be a JSON object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, srv, http.MethodPost, "/entries", tt.body, nil)
			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			assert.Contains(t, decode[errorResponse](t, rr).Error, tt.want)
		})
	}

	rr := do(t, srv, http.MethodGet, "/entries", "", nil)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestPreviewStoresNothing(t *testing.T) {
	srv := newTestServer(t)

	rr := do(t, srv, http.MethodPost, "/entries/preview", `{"date":"2024-01-10","total_cost":60,"price_per_litre":2.10,"distance_km":450}`, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	m := decode[metricsResponse](t, rr)
	assert.InDelta(t, 28.5714, m.Litres, 1e-4)
	assert.InDelta(t, 15.75, m.KmPerLitre, 1e-9)

	rr = do(t, srv, http.MethodGet, "/entries", "", nil)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestListOrdering(t *testing.T) {
	srv := newTestServer(t)
	for _, body := range []string{
		`{"date":"2024-01-05","total_cost":50,"price_per_litre":2,"distance_km":400}`,
		`{"date":"2024-01-01","total_cost":30,"price_per_litre":2,"distance_km":300}`,
		`{"date":"2024-01-09","total_cost":20,"price_per_litre":2,"distance_km":100}`,
	} {
		require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/entries", body, nil).Code)
	}

	ids := func(rr *httptest.ResponseRecorder) []int64 {
		var out []int64
		for _, e := range decode[[]entryResponse](t, rr) {
			out = append(out, e.ID)
		}
		return out
	}

	assert.Equal(t, []int64{3, 1, 2}, ids(do(t, srv, http.MethodGet, "/entries", "", nil)))
	assert.Equal(t, []int64{2, 1, 3}, ids(do(t, srv, http.MethodGet, "/entries?order_by=date&direction=asc", "", nil)))
	assert.Equal(t, []int64{1, 2, 3}, ids(do(t, srv, http.MethodGet, "/entries?order_by=total_cost&direction=DESC", "", nil)))

	rr := do(t, srv, http.MethodGet, "/entries?order_by=colour", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestGatedRoutes(t *testing.T) {
	srv := newTestServer(t)
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/entries",
		`{"date":"2024-01-01","total_cost":50,"price_per_litre":2,"distance_km":400}`, nil).Code)
	update := `{"date":"2024-01-02","total_cost":60,"price_per_litre":2.1,"distance_km":450}`

	t.Run("missing secret is cancelled and silent", func(t *testing.T) {
		for _, tc := range []struct{ method, path, body string }{
			{http.MethodPut, "/entries/1", update},
			{http.MethodDelete, "/entries/1", ""},
			{http.MethodGet, "/admin/entries", ""},
		} {
			rr := do(t, srv, tc.method, tc.path, tc.body, nil)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Empty(t, rr.Body.String())
		}
	})

	t.Run("wrong secret is denied with a message", func(t *testing.T) {
		for _, secret := range []string{"", "S3CRET!", "s3cret! "} {
			rr := do(t, srv, http.MethodDelete, "/entries/1", "", admin(secret))
			assert.Equal(t, http.StatusForbidden, rr.Code)
			assert.Equal(t, "incorrect password", decode[errorResponse](t, rr).Error)
		}
		rr := do(t, srv, http.MethodGet, "/entries/1", "", nil)
		assert.Equal(t, http.StatusOK, rr.Code, "denied delete must not remove the entry")
	})

	t.Run("correct secret runs the operation", func(t *testing.T) {
		rr := do(t, srv, http.MethodGet, "/admin/entries", "", admin(testSecret))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decode[[]entryResponse](t, rr), 1)

		rr = do(t, srv, http.MethodPut, "/entries/1", update, admin(testSecret))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.InDelta(t, 15.75, decode[entryResponse](t, rr).KmPerLitre, 1e-9)

		rr = do(t, srv, http.MethodPut, "/entries/1", `{"date":"2024-01-02","total_cost":0,"price_per_litre":2.1,"distance_km":450}`, admin(testSecret))
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

		rr = do(t, srv, http.MethodPut, "/entries/7", update, admin(testSecret))
		assert.Equal(t, http.StatusNotFound, rr.Code)

		rr = do(t, srv, http.MethodDelete, "/entries/1", "", admin(testSecret))
		assert.Equal(t, http.StatusNoContent, rr.Code)

		rr = do(t, srv, http.MethodDelete, "/entries/1", "", admin(testSecret))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestSummaryAndSeries(t *testing.T) {
	srv := newTestServer(t)

	rr := do(t, srv, http.MethodGet, "/summary", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, summaryResponse{}, decode[summaryResponse](t, rr))

	rr = do(t, srv, http.MethodGet, "/series", "", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "at least two entries are needed to draw a chart", decode[errorResponse](t, rr).Error)

	for _, body := range []string{
		`{"date":"2024-01-10","total_cost":60,"price_per_litre":2.10,"distance_km":450}`,
		`{"date":"2024-01-01","total_cost":50,"price_per_litre":2,"distance_km":400}`,
	} {
		require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/entries", body, nil).Code)
	}

	sum := decode[summaryResponse](t, do(t, srv, http.MethodGet, "/summary", "", nil))
	assert.Equal(t, 2, sum.Count)
	assert.InDelta(t, 110, sum.TotalCost, 1e-9)
	assert.InDelta(t, 53.5714, sum.TotalLitres, 1e-4)
	assert.InDelta(t, 850, sum.TotalDistanceKm, 1e-9)
	assert.InDelta(t, 15.867, sum.AvgKmPerLitre, 1e-3)
	assert.InDelta(t, 6.3025, sum.AvgLitresPer100Km, 1e-4)
	assert.InDelta(t, 0.1294, sum.AvgCostPerKm, 1e-4)

	series := decode[seriesResponse](t, do(t, srv, http.MethodGet, "/series", "", nil))
	require.Len(t, series.Points, 2)
	assert.Equal(t, "2024-01-01", series.Points[0].Date.String())
	assert.Equal(t, "2024-01-10", series.Points[1].Date.String())
}

func TestWriteRateLimit(t *testing.T) {
	srv := newTestServer(t, WithWriteLimit(2))
	body := `{"date":"2024-01-01","total_cost":50,"price_per_litre":2,"distance_km":400}`

	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/entries/preview", body, nil).Code)
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/entries/preview", body, nil).Code)
	rr := do(t, srv, http.MethodPost, "/entries/preview", body, nil)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "60", rr.Header().Get("Retry-After"))

	// reads are never limited
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/entries", "", nil).Code)
}
