package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/course-match-api/internal/models"
	"github.com/noah-isme/course-match-api/internal/service"
	appErrors "github.com/noah-isme/course-match-api/pkg/errors"
)

type fakeMatchSrv struct {
	autoResult    *models.AutoMatchResult
	autoErr       error
	rematchResult *models.RematchResult
	cleanupResult *models.CleanupResult
	details       []models.MatchDetail
	unmatched     []models.UnmatchedCourse
	created       *models.Match
	createErr     error
	updated       *models.Match
	updateErr     error
	deleteErr     error
	lastCreate    service.CreateMatchRequest
	lastUpdateID  string
}

func (f *fakeMatchSrv) AutoMatch(context.Context) (*models.AutoMatchResult, error) {
	return f.autoResult, f.autoErr
}

func (f *fakeMatchSrv) RematchUnavailableLecturers(context.Context) (*models.RematchResult, error) {
	return f.rematchResult, nil
}

func (f *fakeMatchSrv) CleanupDuplicateMatches(context.Context) (*models.CleanupResult, error) {
	return f.cleanupResult, nil
}

func (f *fakeMatchSrv) GetMatchDetails(context.Context) ([]models.MatchDetail, error) {
	return f.details, nil
}

func (f *fakeMatchSrv) GetUnmatchedCourses(context.Context) ([]models.UnmatchedCourse, error) {
	return f.unmatched, nil
}

func (f *fakeMatchSrv) Create(_ context.Context, req service.CreateMatchRequest) (*models.Match, error) {
	f.lastCreate = req
	return f.created, f.createErr
}

func (f *fakeMatchSrv) Update(_ context.Context, id string, _ service.UpdateMatchRequest) (*models.Match, error) {
	f.lastUpdateID = id
	return f.updated, f.updateErr
}

func (f *fakeMatchSrv) Delete(context.Context, string) error {
	return f.deleteErr
}

type matchEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Meta  map[string]interface{} `json:"meta"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func TestMatchHandlerAutoMatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewMatchHandler(&fakeMatchSrv{
		autoResult: &models.AutoMatchResult{
			NewMatches:        []models.NewMatch{{MatchID: "m1", CourseID: "c1", LecturerID: "l1"}},
			DuplicatesRemoved: 2,
		},
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/matches/auto", nil)

	handler.AutoMatch(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope matchEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, float64(2), envelope.Data["duplicates_removed"])
	assert.Len(t, envelope.Data["new_matches"], 1)
	assert.Equal(t, float64(1), envelope.Meta["matched"])
	assert.Equal(t, float64(2), envelope.Meta["duplicates_removed"])
}

func TestMatchHandlerAutoMatchFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewMatchHandler(&fakeMatchSrv{
		autoErr: appErrors.Clone(appErrors.ErrInternal, "failed to load courses"),
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/matches/auto", nil)

	handler.AutoMatch(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMatchHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeMatchSrv{created: &models.Match{ID: "m1", CourseID: "c1", LecturerID: "l1"}}
	handler := NewMatchHandler(service)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	body := strings.NewReader(`{"course_id":"c1","lecturer_id":"l1"}`)
	c.Request = httptest.NewRequest(http.MethodPost, "/matches", body)
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "c1", service.lastCreate.CourseID)
	assert.Equal(t, "l1", service.lastCreate.LecturerID)
}

func TestMatchHandlerCreateConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewMatchHandler(&fakeMatchSrv{
		createErr: appErrors.Clone(appErrors.ErrConflict, "match already exists for course and lecturer"),
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	body := strings.NewReader(`{"course_id":"c1","lecturer_id":"l1"}`)
	c.Request = httptest.NewRequest(http.MethodPost, "/matches", body)
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	var envelope matchEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, "CONFLICT", envelope.Error.Code)
}

func TestMatchHandlerCreateMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewMatchHandler(&fakeMatchSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/matches", strings.NewReader("{not json"))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchHandlerUpdateNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeMatchSrv{
		updateErr: appErrors.Clone(appErrors.ErrNotFound, "match not found"),
	}
	handler := NewMatchHandler(service)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPatch, "/matches/m-missing", strings.NewReader(`{"is_active":false}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "m-missing"}}

	handler.Update(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "m-missing", service.lastUpdateID)
}

func TestMatchHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewMatchHandler(&fakeMatchSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/matches/m1", nil)
	c.Params = gin.Params{{Key: "id", Value: "m1"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestMatchHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewMatchHandler(&fakeMatchSrv{
		details: []models.MatchDetail{{
			Match:       models.Match{ID: "m1", CourseID: "c1", LecturerID: "l1", IsActive: true},
			CourseCode:  "MATH101",
			CourseTitle: "Calculus I",
		}},
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/matches", nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data []map[string]interface{} `json:"data"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Len(t, envelope.Data, 1)
	assert.Equal(t, "MATH101", envelope.Data[0]["course_code"])
}
