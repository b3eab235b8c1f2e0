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

type registrationRepository interface {
	FindByID(ctx context.Context, id string) (*models.Registration, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.RegistrationDetail, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.RegistrationDetail, error)
	ExistsActive(ctx context.Context, studentID, courseID string) (bool, error)
	Create(ctx context.Context, reg *models.Registration) error
	UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus) error
}

type registrationCourseStore interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
	AdjustStudentCount(ctx context.Context, id string, delta int) error
}

type registrationStudentReader interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

type registrationMatchReader interface {
	ListByCourse(ctx context.Context, courseID string) ([]models.Match, error)
}

// RegisterRequest enrolls a student into a course.
type RegisterRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	CourseID  string `json:"course_id" validate:"required"`
}

// RegistrationService manages course enrollment.
type RegistrationService struct {
	registrations registrationRepository
	courses       registrationCourseStore
	students      registrationStudentReader
	matches       registrationMatchReader
	cache         *CacheService
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewRegistrationService creates a RegistrationService.
func NewRegistrationService(
	registrations registrationRepository,
	courses registrationCourseStore,
	students registrationStudentReader,
	matches registrationMatchReader,
	cache *CacheService,
	validate *validator.Validate,
	logger *zap.Logger,
) *RegistrationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		registrations: registrations,
		courses:       courses,
		students:      students,
		matches:       matches,
		cache:         cache,
		validator:     validate,
		logger:        logger,
	}
}

// Register enrolls a student into a course. The course must be active, have
// an assigned lecturer, seats left, and the student must not already hold a
// live registration for it.
func (s *RegistrationService) Register(ctx context.Context, req RegisterRequest) (*models.Registration, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	if !course.IsActive {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "course is not active")
	}
	if course.CurrentStudents >= course.MaxStudents {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "course is full")
	}

	exists, err := s.registrations.ExistsActive(ctx, req.StudentID, req.CourseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check registration")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student already registered for this course")
	}

	lecturerID, err := s.assignedLecturer(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if lecturerID == "" {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "course has no assigned lecturer")
	}

	reg := &models.Registration{
		StudentID:    req.StudentID,
		CourseID:     req.CourseID,
		LecturerID:   lecturerID,
		Status:       models.RegistrationRegistered,
		RegisteredAt: time.Now().UTC(),
	}
	if err := s.registrations.Create(ctx, reg); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create registration")
	}
	if err := s.courses.AdjustStudentCount(ctx, req.CourseID, 1); err != nil {
		s.logger.Warn("failed to bump course student count", zap.String("course_id", req.CourseID), zap.Error(err))
	}

	s.invalidate(ctx)
	s.logger.Info("student registered",
		zap.String("registration_id", reg.ID),
		zap.String("student_id", req.StudentID),
		zap.String("course_id", req.CourseID),
	)
	return reg, nil
}

// Drop withdraws a live registration and frees the seat.
func (s *RegistrationService) Drop(ctx context.Context, id string) error {
	reg, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if reg.Status != models.RegistrationRegistered {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "registration is not active")
	}

	if err := s.registrations.UpdateStatus(ctx, id, models.RegistrationDropped); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to drop registration")
	}
	if err := s.courses.AdjustStudentCount(ctx, reg.CourseID, -1); err != nil {
		s.logger.Warn("failed to decrement course student count", zap.String("course_id", reg.CourseID), zap.Error(err))
	}

	s.invalidate(ctx)
	return nil
}

// Complete marks a live registration as completed. The seat stays taken for
// the semester so the counter is untouched.
func (s *RegistrationService) Complete(ctx context.Context, id string) error {
	reg, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if reg.Status != models.RegistrationRegistered {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "registration is not active")
	}

	if err := s.registrations.UpdateStatus(ctx, id, models.RegistrationCompleted); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to complete registration")
	}
	return nil
}

// ListByStudent returns a student's registrations with display fields.
func (s *RegistrationService) ListByStudent(ctx context.Context, studentID string) ([]models.RegistrationDetail, error) {
	regs, err := s.registrations.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list registrations")
	}
	return regs, nil
}

// ListByCourse returns a course's registrations with display fields.
func (s *RegistrationService) ListByCourse(ctx context.Context, courseID string) ([]models.RegistrationDetail, error) {
	regs, err := s.registrations.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list registrations")
	}
	return regs, nil
}

func (s *RegistrationService) get(ctx context.Context, id string) (*models.Registration, error) {
	reg, err := s.registrations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "registration not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load registration")
	}
	return reg, nil
}

func (s *RegistrationService) assignedLecturer(ctx context.Context, courseID string) (string, error) {
	matches, err := s.matches.ListByCourse(ctx, courseID)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course matches")
	}
	active := make([]models.Match, 0, len(matches))
	for _, match := range matches {
		if match.IsActive {
			active = append(active, match)
		}
	}
	if len(active) == 0 {
		return "", nil
	}
	sortAuthoritative(active)
	return active[0].LecturerID, nil
}

func (s *RegistrationService) invalidate(ctx context.Context) {
	_ = s.cache.Invalidate(ctx, "dashboard:*")
}
