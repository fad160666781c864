package api

import (
	"net/http"
	"time"

	"github.com/phrazzld/ieop-api/internal/api/shared"
)

// ServiceName identifies this service in health responses.
const ServiceName = "ieop-api-v2"

// healthTimestampLayout renders UTC times with millisecond precision.
const healthTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// HealthResponse is the body of GET /health. It is not wrapped in the
// data envelope.
type HealthResponse struct {
	OK        bool   `json:"ok"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// HealthHandler answers liveness checks.
type HealthHandler struct {
	now func() time.Time
}

// NewHealthHandler creates a HealthHandler. A nil clock uses time.Now.
func NewHealthHandler(clock func() time.Time) *HealthHandler {
	if clock == nil {
		clock = time.Now
	}
	return &HealthHandler{now: clock}
}

// Health handles GET /health requests.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		OK:        true,
		Service:   ServiceName,
		Timestamp: h.now().UTC().Format(healthTimestampLayout),
	})
}
