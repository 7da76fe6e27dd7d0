package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iwms-dashboard/internal/common/logger"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	reg := promclient.NewRegistry()
	obs := New("iwms-test", reg, logger.NewTestLogger(t))
	defer obs.Shutdown(context.Background())

	r := chi.NewRouter()
	r.Use(obs.Middleware)
	r.Get("/api/leases/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/leases/LSE-001", nil))

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range families {
		if mf.GetName() != "http_server_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "route" && l.GetValue() == "/api/leases/{id}" {
					found = true
					assert.Equal(t, 1.0, m.GetCounter().GetValue())
				}
			}
		}
	}
	assert.True(t, found, "request counter with route label not exported")
}

func TestRecordRequest_NoProvider(t *testing.T) {
	obs := &Observability{log: logger.NewNoOpLogger()}
	assert.NotPanics(t, func() {
		obs.RecordRequest(context.Background(), http.MethodGet, "/", 200, 0)
		obs.Shutdown(context.Background())
	})
}
