package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-match-api/internal/models"
	"github.com/noah-isme/course-match-api/internal/service"
	appErrors "github.com/noah-isme/course-match-api/pkg/errors"
	"github.com/noah-isme/course-match-api/pkg/response"
)

type matchService interface {
	AutoMatch(ctx context.Context) (*models.AutoMatchResult, error)
	RematchUnavailableLecturers(ctx context.Context) (*models.RematchResult, error)
	CleanupDuplicateMatches(ctx context.Context) (*models.CleanupResult, error)
	GetMatchDetails(ctx context.Context) ([]models.MatchDetail, error)
	GetUnmatchedCourses(ctx context.Context) ([]models.UnmatchedCourse, error)
	Create(ctx context.Context, req service.CreateMatchRequest) (*models.Match, error)
	Update(ctx context.Context, id string, req service.UpdateMatchRequest) (*models.Match, error)
	Delete(ctx context.Context, id string) error
}

// MatchHandler exposes the matching engine and manual match endpoints.
type MatchHandler struct {
	matches matchService
}

// NewMatchHandler creates a MatchHandler.
func NewMatchHandler(matches matchService) *MatchHandler {
	return &MatchHandler{matches: matches}
}

// AutoMatch godoc
// @Summary Run the full auto-match pass
// @Description Reconciles availability, reactivates restored lecturers, assigns never-matched courses and deactivates duplicate matches.
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=models.AutoMatchResult}
// @Router /matches/auto [post]
func (h *MatchHandler) AutoMatch(c *gin.Context) {
	result, err := h.matches.AutoMatch(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil, response.RunMeta(map[string]int{
		"matched":            len(result.NewMatches),
		"rematched":          len(result.RematchedCourses),
		"deactivated":        len(result.DeactivatedMatches),
		"duplicates_removed": result.DuplicatesRemoved,
	}))
}

// Rematch godoc
// @Summary Repoint matches held by unavailable lecturers
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=models.RematchResult}
// @Router /matches/rematch [post]
func (h *MatchHandler) Rematch(c *gin.Context) {
	result, err := h.matches.RematchUnavailableLecturers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil, response.RunMeta(map[string]int{
		"rematched": len(result.RematchedCourses),
		"unmatched": len(result.UnmatchedCourses),
	}))
}

// Cleanup godoc
// @Summary Delete duplicate match rows
// @Description Keeps the authoritative row per course and hard-deletes the rest.
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=models.CleanupResult}
// @Router /matches/cleanup [post]
func (h *MatchHandler) Cleanup(c *gin.Context) {
	result, err := h.matches.CleanupDuplicateMatches(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil, response.RunMeta(map[string]int{
		"duplicates_removed": result.DuplicatesRemoved,
	}))
}

// List godoc
// @Summary List matches, one authoritative row per course
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=[]models.MatchDetail}
// @Router /matches [get]
func (h *MatchHandler) List(c *gin.Context) {
	matches, err := h.matches.GetMatchDetails(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, matches, nil)
}

// Unmatched godoc
// @Summary List active courses without an active match
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=[]models.UnmatchedCourse}
// @Router /matches/unmatched [get]
func (h *MatchHandler) Unmatched(c *gin.Context) {
	courses, err := h.matches.GetUnmatchedCourses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, nil)
}

// Create godoc
// @Summary Create a manual match
// @Tags matches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateMatchRequest true "Match"
// @Success 201 {object} response.Envelope{data=models.Match}
// @Failure 409 {object} response.Envelope
// @Router /matches [post]
func (h *MatchHandler) Create(c *gin.Context) {
	var req service.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	match, err := h.matches.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, match)
}

// Update godoc
// @Summary Toggle a match's active flag
// @Tags matches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Match ID"
// @Param payload body service.UpdateMatchRequest true "Active flag"
// @Success 200 {object} response.Envelope{data=models.Match}
// @Failure 404 {object} response.Envelope
// @Router /matches/{id} [patch]
func (h *MatchHandler) Update(c *gin.Context) {
	var req service.UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	match, err := h.matches.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, match, nil)
}

// Delete godoc
// @Summary Delete a match row
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Param id path string true "Match ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /matches/{id} [delete]
func (h *MatchHandler) Delete(c *gin.Context) {
	if err := h.matches.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
