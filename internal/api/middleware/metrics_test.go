package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware(t *testing.T) {
	httpRequestsTotal.Reset()
	httpRequestDuration.Reset()

	r := chi.NewRouter()
	r.Use(MetricsMiddleware())
	r.Get("/customers/{customerID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Post("/customers", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	for _, path := range []string{"/customers/1", "/customers/2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/customers", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)

	expected := `
		# HELP lunchly_http_requests_total Total number of HTTP requests.
		# TYPE lunchly_http_requests_total counter
		lunchly_http_requests_total{method="GET",path="/customers/{customerID}",status_code="200"} 2
		lunchly_http_requests_total{method="POST",path="/customers",status_code="201"} 1
	`
	if err := testutil.CollectAndCompare(httpRequestsTotal, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics for lunchly_http_requests_total: %v", err)
	}
	assert.Equal(t, 2, testutil.CollectAndCount(httpRequestDuration))
	assert.Equal(t, float64(0), testutil.ToFloat64(httpRequestsInFlight))
}

func TestMetricsMiddlewareWithoutRouter(t *testing.T) {
	httpRequestsTotal.Reset()

	handler := MetricsMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404")))
}
