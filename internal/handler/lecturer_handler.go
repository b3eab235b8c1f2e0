package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-match-api/internal/middleware"
	"github.com/noah-isme/course-match-api/internal/models"
	"github.com/noah-isme/course-match-api/internal/service"
	appErrors "github.com/noah-isme/course-match-api/pkg/errors"
	"github.com/noah-isme/course-match-api/pkg/response"
)

// LecturerHandler exposes lecturer CRUD and availability endpoints.
type LecturerHandler struct {
	lecturers *service.LecturerService
	matches   *service.MatchService
}

// NewLecturerHandler creates a LecturerHandler.
func NewLecturerHandler(lecturers *service.LecturerService, matches *service.MatchService) *LecturerHandler {
	return &LecturerHandler{lecturers: lecturers, matches: matches}
}

// List godoc
// @Summary List lecturers
// @Tags lecturers
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param search query string false "Free text search on name and email"
// @Param specialization query string false "Specialization filter"
// @Param availability query bool false "Availability filter"
// @Success 200 {object} response.Envelope{data=[]models.Lecturer}
// @Router /lecturers [get]
func (h *LecturerHandler) List(c *gin.Context) {
	filter := models.LecturerFilter{
		Search:         c.Query("search"),
		Specialization: c.Query("specialization"),
		SortBy:         c.Query("sort_by"),
		SortOrder:      c.Query("sort_order"),
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if raw := c.Query("availability"); raw != "" {
		if available, err := strconv.ParseBool(raw); err == nil {
			filter.Availability = &available
		}
	}

	lecturers, pagination, err := h.lecturers.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lecturers, pagination)
}

// Get godoc
// @Summary Get a lecturer
// @Tags lecturers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lecturer ID"
// @Success 200 {object} response.Envelope{data=models.Lecturer}
// @Failure 404 {object} response.Envelope
// @Router /lecturers/{id} [get]
func (h *LecturerHandler) Get(c *gin.Context) {
	lecturer, err := h.lecturers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lecturer, nil)
}

// Create godoc
// @Summary Create a lecturer with a login account
// @Tags lecturers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateLecturerRequest true "Lecturer"
// @Success 201 {object} response.Envelope{data=models.Lecturer}
// @Failure 409 {object} response.Envelope
// @Router /lecturers [post]
func (h *LecturerHandler) Create(c *gin.Context) {
	var req service.CreateLecturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	lecturer, err := h.lecturers.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, lecturer)
}

// Update godoc
// @Summary Update a lecturer
// @Tags lecturers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lecturer ID"
// @Param payload body service.UpdateLecturerRequest true "Fields to update"
// @Success 200 {object} response.Envelope{data=models.Lecturer}
// @Failure 404 {object} response.Envelope
// @Router /lecturers/{id} [put]
func (h *LecturerHandler) Update(c *gin.Context) {
	var req service.UpdateLecturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	lecturer, err := h.lecturers.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lecturer, nil)
}

// SetAvailability godoc
// @Summary Toggle a lecturer's availability
// @Tags lecturers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lecturer ID"
// @Param payload body service.SetAvailabilityRequest true "Availability"
// @Success 200 {object} response.Envelope{data=models.Lecturer}
// @Failure 403 {object} response.Envelope
// @Router /lecturers/{id}/availability [patch]
func (h *LecturerHandler) SetAvailability(c *gin.Context) {
	var req service.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	lecturer, err := h.lecturers.SetAvailability(c.Request.Context(), c.Param("id"), req, middleware.ClaimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lecturer, nil)
}

// Matches godoc
// @Summary List match rows for a lecturer
// @Tags lecturers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lecturer ID"
// @Success 200 {object} response.Envelope{data=[]models.Match}
// @Router /lecturers/{id}/matches [get]
func (h *LecturerHandler) Matches(c *gin.Context) {
	matches, err := h.matches.ListByLecturer(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, matches, nil)
}

// Delete godoc
// @Summary Delete a lecturer and its account
// @Tags lecturers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lecturer ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /lecturers/{id} [delete]
func (h *LecturerHandler) Delete(c *gin.Context) {
	if err := h.lecturers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
