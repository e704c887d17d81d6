package obs_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-mandi/internal/obs"
)

func TestHTTPObsRecordsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := obs.NewHTTPMetrics("mandi_test", nil, reg)

	handler := obs.HTTPObs{Metrics: metrics}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shipping/quote", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTeapot, rec.Code)
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.ReqTotal.WithLabelValues(http.MethodGet, "/api/v1/shipping/quote", "418")))
	require.Equal(t, float64(0), testutil.ToFloat64(metrics.InFlight))
}

func TestStatusRecorderDefaults(t *testing.T) {
	rec := obs.NewStatusRecorder(httptest.NewRecorder())
	require.Equal(t, http.StatusOK, rec.Status())

	n, err := rec.Write([]byte("abc"))
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, int64(3), rec.BytesWritten())
}
