package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-match-api/internal/models"
	"github.com/noah-isme/course-match-api/internal/service"
	"github.com/noah-isme/course-match-api/pkg/response"
)

type dashboardService interface {
	Summary(ctx context.Context) (*models.DashboardSummary, bool, error)
}

type exportService interface {
	ExportMatches(ctx context.Context, format service.ExportFormat) (*service.ExportFile, error)
}

// DashboardHandler exposes summary and export endpoints.
type DashboardHandler struct {
	dashboard dashboardService
	exports   exportService
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(dashboard dashboardService, exports exportService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, exports: exports}
}

// Summary godoc
// @Summary Dashboard counters
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=models.DashboardSummary}
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, cacheHit, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil, map[string]interface{}{"cache_hit": cacheHit})
}

// ExportMatches godoc
// @Summary Export match assignments
// @Tags dashboard
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /dashboard/export/matches [get]
func (h *DashboardHandler) ExportMatches(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	file, err := h.exports.ExportMatches(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
