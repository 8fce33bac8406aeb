package api

import (
	"net/http"

	"hrdash/domain/employee"
	"hrdash/internal"
	"hrdash/internal/analysis"
	"hrdash/internal/errors"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the request ID
const RequestIDKey = "request_id"

// DashboardHandler serves every analysis view as GET /<view name>
type DashboardHandler struct {
	service *analysis.Service
	logger  *internal.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *analysis.Service, logger *internal.Logger) *DashboardHandler {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DashboardHandler{service: service, logger: logger}
}

// Register mounts one route per view on r
func (h *DashboardHandler) Register(r gin.IRoutes) {
	for _, view := range h.service.Views() {
		r.GET("/"+view.Name, h.serve(view))
	}
}

func (h *DashboardHandler) serve(view analysis.View) gin.HandlerFunc {
	return func(c *gin.Context) {
		var criteria employee.Criteria
		if !view.Unfiltered {
			if err := c.ShouldBindQuery(&criteria); err != nil {
				h.fail(c, view.Name, errors.InvalidInput(err.Error()))
				return
			}
		}

		payload, err := view.Run(c.Request.Context(), criteria)
		if err != nil {
			h.fail(c, view.Name, err)
			return
		}
		c.JSON(http.StatusOK, payload)
	}
}

// fail answers with a plain-text 500 carrying the error message
func (h *DashboardHandler) fail(c *gin.Context, view string, err error) {
	logf := h.logger.Error
	if errors.HasCode(err, errors.CodeMalformedRow) {
		// bad data, not a broken service
		logf = h.logger.Warn
	}
	logf("[DashboardHandler] %s failed (%s, request %s): %v",
		view, errors.GetCode(err), c.GetString(RequestIDKey), err)
	_ = c.Error(err)
	c.String(http.StatusInternalServerError, err.Error())
}
