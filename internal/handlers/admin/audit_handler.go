// internal/handlers/admin/audit_handler.go
package admin

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"client-bff/internal/domain/audit"
	xerrors "client-bff/internal/pkg/errors"
	"client-bff/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuditLister lists recorded searches.
type AuditLister interface {
	List(ctx context.Context, filters *audit.ListFilters) ([]audit.SearchAudit, error)
}

type AuditHandler struct {
	audits AuditLister
}

func NewAuditHandler(audits AuditLister) *AuditHandler {
	return &AuditHandler{audits: audits}
}

// ListSearchAudit godoc
// @Summary  Recent searches
// @Tags     admin
// @Produce  json
// @Param    subject  query     string  false  "principal subject"
// @Param    path     query     string  false  "basic, live or index"
// @Param    limit    query     int     false  "max rows (default 50, max 500)"
// @Success  200      {object}  response.Response
// @Failure  403      {object}  response.Response
// @Failure  503      {object}  response.Response
// @Security BearerAuth
// @Router   /api/v1/admin/search/audit [get]
func (h *AuditHandler) ListSearchAudit(c *gin.Context) {
	filters := &audit.ListFilters{
		Subject: c.Query("subject"),
		Path:    c.Query("path"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			response.ValidationError(c, "invalid limit", err, gin.H{"field": "limit"})
			return
		}
		filters.Limit = limit
	}

	rows, err := h.audits.List(c.Request.Context(), filters)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotConfigured) {
			response.Error(c, http.StatusServiceUnavailable, "search audit is not enabled", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to list search audit", err)
		return
	}

	response.Success(c, http.StatusOK, "search audit retrieved", gin.H{
		"items": rows,
		"count": len(rows),
	})
}
