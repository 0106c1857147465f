// internal/handlers/search/search_handler.go
package search

import (
	"context"
	"errors"
	"net/http"
	"time"

	"client-bff/internal/domain/audit"
	"client-bff/internal/domain/vehicle"
	"client-bff/internal/middleware"
	xerrors "client-bff/internal/pkg/errors"
	"client-bff/internal/pkg/response"
	service "client-bff/internal/service/search"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BasicSearcher runs the basic search pipeline.
type BasicSearcher interface {
	Search(ctx context.Context, criteria *vehicle.SearchCriteria) (*vehicle.BasicResult, error)
}

// Recorder observes finished searches.
type Recorder interface {
	Record(ctx context.Context, entry *audit.SearchAudit, elapsed time.Duration) <-chan struct{}
}

type SearchHandler struct {
	basic    BasicSearcher
	advanced service.SearchPath
	live     service.SearchPath
	recorder Recorder
	logger   *zap.Logger
}

// NewSearchHandler wires the search routes. advanced serves the default
// advanced endpoint; live always aggregates from the upstream services.
func NewSearchHandler(basic BasicSearcher, advanced, live service.SearchPath, recorder Recorder, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		basic:    basic,
		advanced: advanced,
		live:     live,
		recorder: recorder,
		logger:   logger,
	}
}

// SearchVehicles godoc
// @Summary      Basic vehicle search
// @Description  Available vehicles for a location and date window, priced for the rental length.
// @Tags         search
// @Accept       json
// @Produce      json
// @Param        request  body      vehicle.SearchCriteria  true  "search criteria"
// @Success      200      {object}  vehicle.BasicResult
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Security     BearerAuth
// @Router       /api/v1/client/search/vehicles [post]
func (h *SearchHandler) SearchVehicles(c *gin.Context) {
	start := time.Now()

	var criteria vehicle.SearchCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		response.ValidationError(c, "invalid request body", err)
		return
	}

	result, err := h.basic.Search(c.Request.Context(), &criteria)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.record(c, service.PathBasic, &criteria, result.Success, result.Code, int64(result.TotalVehicles), start)
	c.JSON(http.StatusOK, result)
}

// AdvancedSearchVehicles godoc
// @Summary      Advanced vehicle search
// @Description  Filtered, sorted and paginated search. Served from the search index when one is configured.
// @Tags         search
// @Accept       json
// @Produce      json
// @Param        request  body      vehicle.AdvancedSearchCriteria  true  "search criteria"
// @Success      200      {object}  vehicle.PagedResult
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Security     BearerAuth
// @Router       /api/v1/client/search/advanced/vehicles [post]
func (h *SearchHandler) AdvancedSearchVehicles(c *gin.Context) {
	h.runPath(c, h.advanced)
}

// LiveSearchVehicles godoc
// @Summary      Advanced vehicle search from live services
// @Description  Same as the advanced search but always aggregates availability and pricing live.
// @Tags         search
// @Accept       json
// @Produce      json
// @Param        request  body      vehicle.AdvancedSearchCriteria  true  "search criteria"
// @Success      200      {object}  vehicle.PagedResult
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Security     BearerAuth
// @Router       /api/v1/client/search/advanced/vehicles/live [post]
func (h *SearchHandler) LiveSearchVehicles(c *gin.Context) {
	h.runPath(c, h.live)
}

func (h *SearchHandler) runPath(c *gin.Context, path service.SearchPath) {
	start := time.Now()

	var criteria vehicle.AdvancedSearchCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		response.ValidationError(c, "invalid request body", err)
		return
	}
	criteria.ApplyDefaults()

	result, err := path.Search(c.Request.Context(), &criteria)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.record(c, path.Name(), &criteria.SearchCriteria, result.Success, result.Code, result.TotalElements, start)
	c.JSON(http.StatusOK, result)
}

func (h *SearchHandler) fail(c *gin.Context, err error) {
	if v, ok := xerrors.AsValidation(err); ok {
		response.ValidationError(c, "invalid search criteria", err, gin.H{"field": v.Field})
		return
	}
	if errors.Is(err, context.Canceled) {
		response.Error(c, 499, "request canceled", nil)
		return
	}
	h.logger.Error("search failed", zap.Error(err), zap.String("request_id", middleware.GetRequestID(c)))
	response.ErrorWithCode(c, http.StatusInternalServerError, string(vehicle.CodeInternalError), vehicle.MsgInternalError, nil)
}

func (h *SearchHandler) record(c *gin.Context, path string, criteria *vehicle.SearchCriteria, success bool, code vehicle.ResultCode, total int64, start time.Time) {
	if h.recorder == nil {
		return
	}

	entry := &audit.SearchAudit{
		RequestID: middleware.GetRequestID(c),
		Path:      path,
		Location:  criteria.PickupLocation,
		Success:   success,
		Code:      string(code),
		Total:     total,
	}
	if p, ok := middleware.GetPrincipal(c); ok {
		entry.Subject = p.Subject
		entry.Realm = p.Realm
		entry.Roles = p.Roles
	}
	if !criteria.PickupDate.IsZero() {
		d := criteria.PickupDate.Time
		entry.PickupDate = &d
	}
	if !criteria.DropOffDate.IsZero() {
		d := criteria.DropOffDate.Time
		entry.DropOffDate = &d
	}

	h.recorder.Record(c.Request.Context(), entry, time.Since(start))
}
