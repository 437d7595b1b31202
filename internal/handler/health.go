package handler

import (
	"net/http"

	"github.com/artermis-ops/agency-mcp/internal/models"
)

const version = "1.0.0"

// HealthHandler handles GET /health
type HealthHandler struct {
	company         string
	mailEnabled     bool
	calendarEnabled bool
}

func NewHealthHandler(company string, mailEnabled, calendarEnabled bool) *HealthHandler {
	return &HealthHandler{
		company:         company,
		mailEnabled:     mailEnabled,
		calendarEnabled: calendarEnabled,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{
		"server":   "ok",
		"weather":  "ok",
		"mail":     enabledState(h.mailEnabled),
		"calendar": enabledState(h.calendarEnabled),
	}
	models.WriteJSON(w, http.StatusOK, models.HealthResponse{
		Status:  "healthy",
		Version: version,
		Company: h.company,
		Checks:  checks,
	})
}

func enabledState(enabled bool) string {
	if enabled {
		return "ok"
	}
	return "disabled"
}
