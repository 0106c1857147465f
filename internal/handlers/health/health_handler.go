// internal/handlers/health/health_handler.go
package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"client-bff/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Pinger is an optional dependency checked by the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	version string
	checks  map[string]Pinger
	timeout time.Duration
}

func NewHealthHandler(version string, checks map[string]Pinger) *HealthHandler {
	if checks == nil {
		checks = map[string]Pinger{}
	}
	return &HealthHandler{version: version, checks: checks, timeout: 2 * time.Second}
}

// Health godoc
// @Summary  Liveness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  response.Response
// @Router   /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, "ok", gin.H{"status": "ok", "version": h.version})
}

// Ready godoc
// @Summary  Readiness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  response.Response
// @Failure  503  {object}  response.Response
// @Router   /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := make(map[string]string, len(names))
	ready := true
	for _, name := range names {
		if err := h.checks[name].Ping(ctx); err != nil {
			status[name] = err.Error()
			ready = false
			continue
		}
		status[name] = "ok"
	}

	if !ready {
		response.ErrorWithCode(c, http.StatusServiceUnavailable, "NOT_READY", "dependencies unavailable", nil, status)
		return
	}
	response.Success(c, http.StatusOK, "ready", status)
}
