package health

import (
	"context"
	"net/http"
	"time"

	"github.com/noah-isme/backend-mandi/internal/common"
)

// Prober is a single dependency readiness check.
type Prober func(ctx context.Context) error

// Handler exposes liveness and readiness endpoints. Readiness probes the
// database, redis and the commodity catalog; any failure flips the whole
// endpoint to 503 so the load balancer drains the instance.
type Handler struct {
	DB      Prober
	Redis   Prober
	Catalog Prober
	Timeout time.Duration
}

// Live reports process liveness.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready probes each dependency and reports per-dependency status.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	probes := map[string]Prober{
		"db":      h.DB,
		"redis":   h.Redis,
		"catalog": h.Catalog,
	}

	status := make(map[string]string, len(probes))
	healthy := true
	for name, probe := range probes {
		if probe == nil {
			status[name] = "not configured"
			continue
		}
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout())
		err := probe(ctx)
		cancel()
		if err != nil {
			status[name] = err.Error()
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	common.JSON(w, code, status)
}

func (h Handler) timeout() time.Duration {
	if h.Timeout <= 0 {
		return 500 * time.Millisecond
	}
	return h.Timeout
}
