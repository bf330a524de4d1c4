package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// healthTimeout bounds the backend ping so health checks stay fast.
const healthTimeout = 3 * time.Second

// HealthStatus is the /healthz response body.
type HealthStatus struct {
	Status    string `json:"status"`
	Backend   string `json:"backend"`
	CheckedAt string `json:"checked_at"`
	Time      string `json:"time"`
}

// Healthz reports that the server is up and whether the backend answers.
// The site itself is healthy even when the backend is not. Once the
// scheduled check has run its result is reported; before that the backend
// is pinged directly.
func (h *Handler) Healthz(c echo.Context) error {
	now := h.now().UTC()
	status := HealthStatus{Status: "ok", Time: now.Format(time.RFC3339)}

	if h.backend != nil {
		if reachable, checkedAt := h.backend.Status(); !checkedAt.IsZero() {
			status.Backend = backendLabel(reachable)
			status.CheckedAt = checkedAt.UTC().Format(time.RFC3339)
			return c.JSON(http.StatusOK, status)
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	_, err := h.api.Ping(ctx)
	if err != nil {
		c.Logger().Warnf("Backend ping failed: %v", err)
	}
	status.Backend = backendLabel(err == nil)
	status.CheckedAt = status.Time
	return c.JSON(http.StatusOK, status)
}

func backendLabel(reachable bool) string {
	if reachable {
		return "ok"
	}
	return "unreachable"
}
