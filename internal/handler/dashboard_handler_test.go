package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/course-match-api/internal/models"
	"github.com/noah-isme/course-match-api/internal/service"
	appErrors "github.com/noah-isme/course-match-api/pkg/errors"
)

type fakeDashboardSrv struct {
	summary  *models.DashboardSummary
	cacheHit bool
	err      error
}

func (f *fakeDashboardSrv) Summary(context.Context) (*models.DashboardSummary, bool, error) {
	return f.summary, f.cacheHit, f.err
}

type fakeExportSrv struct {
	file       *service.ExportFile
	err        error
	lastFormat service.ExportFormat
}

func (f *fakeExportSrv) ExportMatches(_ context.Context, format service.ExportFormat) (*service.ExportFile, error) {
	f.lastFormat = format
	return f.file, f.err
}

func TestDashboardHandlerSummary(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeDashboardSrv{
		summary:  &models.DashboardSummary{TotalCourses: 3, UnmatchedCourses: 1},
		cacheHit: true,
	}, &fakeExportSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil)

	handler.Summary(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data map[string]interface{} `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.Equal(t, float64(1), envelope.Data["unmatched_courses"])
}

func TestDashboardHandlerExportMatches(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exports := &fakeExportSrv{file: &service.ExportFile{
		FileName:    "matches_20260829.csv",
		ContentType: "text/csv",
		Content:     []byte("Course Code,Lecturer\n"),
	}}
	handler := NewDashboardHandler(&fakeDashboardSrv{}, exports)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/export/matches?format=csv", nil)

	handler.ExportMatches(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.FormatCSV, exports.lastFormat)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "matches_20260829.csv")
}

func TestDashboardHandlerExportMatchesUnsupportedFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeDashboardSrv{}, &fakeExportSrv{
		err: appErrors.Clone(appErrors.ErrValidation, "unsupported export format"),
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/export/matches?format=xml", nil)

	handler.ExportMatches(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
