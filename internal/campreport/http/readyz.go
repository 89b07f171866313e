package http

import (
	"net/http"
	"time"

	"github.com/Nicholas-Fearon/camp-report-app/internal/campreport/store"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/campsdk"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/httpx"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/jwtx"
)

// ReadyzHandler is the readiness probe. It checks the database connection and
// that the token verifier has keys loaded.
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	verifier jwtx.Verifier,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &campsdk.HealthChecks{
			Database: "ok",
			Signer:   "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		// Check database connectivity
		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		// Check the verifier has at least one trusted key
		if ready, ok := verifier.(interface{ IsReady() bool }); ok && !ready.IsReady() {
			checks.Signer = "error: no keys loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := campsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
