package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-match-api/internal/models"
	appErrors "github.com/noah-isme/course-match-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	ExistsByCode(ctx context.Context, code string, excludeID string) (bool, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

type courseMatchCleaner interface {
	DeleteByCourse(ctx context.Context, courseID string) error
}

type courseRegistrationReader interface {
	CountActiveByCourse(ctx context.Context, courseID string) (int, error)
}

// CreateCourseRequest is the payload for creating a course.
type CreateCourseRequest struct {
	Title          string `json:"title" validate:"required"`
	Code           string `json:"code" validate:"required"`
	Description    string `json:"description"`
	Specialization string `json:"specialization" validate:"required"`
	Credits        int    `json:"credits" validate:"required,min=1"`
	Semester       string `json:"semester" validate:"required"`
	MaxStudents    int    `json:"max_students" validate:"required,min=1"`
}

// UpdateCourseRequest is the payload for updating a course. Nil fields are
// left unchanged.
type UpdateCourseRequest struct {
	Title          *string `json:"title"`
	Code           *string `json:"code"`
	Description    *string `json:"description"`
	Specialization *string `json:"specialization"`
	Credits        *int    `json:"credits" validate:"omitempty,min=1"`
	Semester       *string `json:"semester"`
	MaxStudents    *int    `json:"max_students" validate:"omitempty,min=1"`
	IsActive       *bool   `json:"is_active"`
}

// CourseService manages course records.
type CourseService struct {
	courses       courseRepository
	matches       courseMatchCleaner
	registrations courseRegistrationReader
	cache         *CacheService
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewCourseService creates a CourseService.
func NewCourseService(
	courses courseRepository,
	matches courseMatchCleaner,
	registrations courseRegistrationReader,
	cache *CacheService,
	validate *validator.Validate,
	logger *zap.Logger,
) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{
		courses:       courses,
		matches:       matches,
		registrations: registrations,
		cache:         cache,
		validator:     validate,
		logger:        logger,
	}
}

// List returns courses matching the filter plus pagination metadata.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	courses, total, err := s.courses.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// Get returns a single course by id.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// Create adds a new course. Course codes are unique.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	exists, err := s.courses.ExistsByCode(ctx, req.Code, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course code")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "course code already in use")
	}

	now := time.Now().UTC()
	course := &models.Course{
		Title:          req.Title,
		Code:           req.Code,
		Description:    req.Description,
		Specialization: req.Specialization,
		Credits:        req.Credits,
		Semester:       req.Semester,
		MaxStudents:    req.MaxStudents,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}

	s.invalidate(ctx)
	s.logger.Info("course created", zap.String("course_id", course.ID), zap.String("code", course.Code))
	return course, nil
}

// Update applies a partial update to a course.
func (s *CourseService) Update(ctx context.Context, id string, req UpdateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil && *req.Code != course.Code {
		exists, err := s.courses.ExistsByCode(ctx, *req.Code, id)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course code")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, "course code already in use")
		}
		course.Code = *req.Code
	}
	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Specialization != nil {
		course.Specialization = *req.Specialization
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if req.Semester != nil {
		course.Semester = *req.Semester
	}
	if req.MaxStudents != nil {
		course.MaxStudents = *req.MaxStudents
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}
	course.UpdatedAt = time.Now().UTC()

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}

	s.invalidate(ctx)
	return course, nil
}

// Delete removes a course and its match rows. Courses with active
// registrations cannot be deleted.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	active, err := s.registrations.CountActiveByCourse(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count registrations")
	}
	if active > 0 {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "course has active registrations")
	}

	if err := s.matches.DeleteByCourse(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course matches")
	}
	if err := s.courses.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}

	s.invalidate(ctx)
	s.logger.Info("course deleted", zap.String("course_id", id))
	return nil
}

func (s *CourseService) invalidate(ctx context.Context) {
	_ = s.cache.Invalidate(ctx, "matches:*", "dashboard:*")
}
