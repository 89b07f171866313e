package http

import (
	"net/http"
	"time"

	"github.com/Nicholas-Fearon/camp-report-app/pkg/campsdk"
	"github.com/Nicholas-Fearon/camp-report-app/pkg/httpx"
)

// LivezHandler is the liveness probe. It answers 200 as long as the process
// is serving requests.
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := campsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		}
		httpx.WriteJSON(w, http.StatusOK, response)
	}
}
