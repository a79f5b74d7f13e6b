package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/things/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	ok := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/things/{id}", "418")
	missing := HTTPRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404")
	beforeOK := testutil.ToFloat64(ok)
	beforeMissing := testutil.ToFloat64(missing)

	for _, path := range []string{"/things/1", "/things/2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.InDelta(t, 2, testutil.ToFloat64(ok)-beforeOK, 0.001, "route pattern collapses path parameters")
	assert.InDelta(t, 1, testutil.ToFloat64(missing)-beforeMissing, 0.001)
	assert.InDelta(t, 0, testutil.ToFloat64(HTTPRequestsInFlight), 0.001)
}
