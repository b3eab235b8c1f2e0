package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/course-match-api/internal/models"
	appErrors "github.com/noah-isme/course-match-api/pkg/errors"
)

type lecturerRepository interface {
	List(ctx context.Context, filter models.LecturerFilter) ([]models.Lecturer, int, error)
	FindByID(ctx context.Context, id string) (*models.Lecturer, error)
	FindByUserID(ctx context.Context, userID string) (*models.Lecturer, error)
	ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error)
	Create(ctx context.Context, lecturer *models.Lecturer) error
	Update(ctx context.Context, lecturer *models.Lecturer) error
	UpdateAvailability(ctx context.Context, id string, availability bool) error
	Delete(ctx context.Context, id string) error
}

type accountWriter interface {
	ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// CreateLecturerRequest is the payload for creating a lecturer together
// with a login account.
type CreateLecturerRequest struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	Specialization string `json:"specialization" validate:"required"`
	Department     string `json:"department"`
	Experience     int    `json:"experience" validate:"min=0"`
}

// UpdateLecturerRequest is the payload for updating a lecturer. Nil fields
// are left unchanged.
type UpdateLecturerRequest struct {
	Name           *string `json:"name"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Specialization *string `json:"specialization"`
	Department     *string `json:"department"`
	Experience     *int    `json:"experience" validate:"omitempty,min=0"`
}

// SetAvailabilityRequest toggles a lecturer's availability.
type SetAvailabilityRequest struct {
	Availability *bool `json:"availability" validate:"required"`
}

// LecturerService manages lecturer records and their paired accounts.
type LecturerService struct {
	lecturers lecturerRepository
	users     accountWriter
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLecturerService creates a LecturerService.
func NewLecturerService(lecturers lecturerRepository, users accountWriter, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *LecturerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LecturerService{lecturers: lecturers, users: users, cache: cache, validator: validate, logger: logger}
}

// List returns lecturers matching the filter plus pagination metadata.
func (s *LecturerService) List(ctx context.Context, filter models.LecturerFilter) ([]models.Lecturer, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	lecturers, total, err := s.lecturers.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lecturers")
	}
	return lecturers, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// Get returns a single lecturer by id.
func (s *LecturerService) Get(ctx context.Context, id string) (*models.Lecturer, error) {
	lecturer, err := s.lecturers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lecturer not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lecturer")
	}
	return lecturer, nil
}

// GetByUserID returns the lecturer record paired with a user account.
func (s *LecturerService) GetByUserID(ctx context.Context, userID string) (*models.Lecturer, error) {
	lecturer, err := s.lecturers.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lecturer not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lecturer")
	}
	return lecturer, nil
}

// Create adds a lecturer and a paired LECTURER account in one go. New
// lecturers start available.
func (s *LecturerService) Create(ctx context.Context, req CreateLecturerRequest) (*models.Lecturer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lecturer payload")
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.Name,
		Role:         models.RoleLecturer,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create account")
	}

	lecturer := &models.Lecturer{
		UserID:         user.ID,
		Name:           req.Name,
		Email:          req.Email,
		Specialization: req.Specialization,
		Department:     req.Department,
		Experience:     req.Experience,
		Availability:   true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.lecturers.Create(ctx, lecturer); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create lecturer")
	}

	s.invalidate(ctx)
	s.logger.Info("lecturer created", zap.String("lecturer_id", lecturer.ID), zap.String("specialization", lecturer.Specialization))
	return lecturer, nil
}

// Update applies a partial update to a lecturer, mirroring name and email
// changes into the paired account.
func (s *LecturerService) Update(ctx context.Context, id string, req UpdateLecturerRequest) (*models.Lecturer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lecturer payload")
	}

	lecturer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != lecturer.Email {
		exists, err := s.users.ExistsByEmail(ctx, *req.Email, lecturer.UserID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, "email already in use")
		}
		lecturer.Email = *req.Email
	}
	if req.Name != nil {
		lecturer.Name = *req.Name
	}
	if req.Specialization != nil {
		lecturer.Specialization = *req.Specialization
	}
	if req.Department != nil {
		lecturer.Department = *req.Department
	}
	if req.Experience != nil {
		lecturer.Experience = *req.Experience
	}
	lecturer.UpdatedAt = time.Now().UTC()

	if err := s.lecturers.Update(ctx, lecturer); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update lecturer")
	}

	if req.Name != nil || req.Email != nil {
		user, err := s.users.FindByID(ctx, lecturer.UserID)
		if err == nil {
			user.FullName = lecturer.Name
			user.Email = lecturer.Email
			user.UpdatedAt = lecturer.UpdatedAt
			if err := s.users.Update(ctx, user); err != nil {
				s.logger.Warn("failed to mirror lecturer update into account", zap.String("user_id", user.ID), zap.Error(err))
			}
		}
	}

	s.invalidate(ctx)
	return lecturer, nil
}

// SetAvailability flips the availability flag. Admins can toggle anyone;
// lecturers only themselves.
func (s *LecturerService) SetAvailability(ctx context.Context, id string, req SetAvailabilityRequest, actor *models.JWTClaims) (*models.Lecturer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}

	lecturer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor != nil && !actor.IsAdmin() && lecturer.UserID != actor.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot change another lecturer's availability")
	}

	if err := s.lecturers.UpdateAvailability(ctx, id, *req.Availability); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update availability")
	}
	lecturer.Availability = *req.Availability
	lecturer.UpdatedAt = time.Now().UTC()

	s.invalidate(ctx)
	s.logger.Info("lecturer availability changed",
		zap.String("lecturer_id", id),
		zap.Bool("availability", *req.Availability),
	)
	return lecturer, nil
}

// Delete removes a lecturer and its paired account. Match rows pointing at
// the lecturer are left behind; the matching engine treats them as orphans
// and skips them.
func (s *LecturerService) Delete(ctx context.Context, id string) error {
	lecturer, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.lecturers.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "lecturer not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete lecturer")
	}
	if err := s.users.Delete(ctx, lecturer.UserID); err != nil && !errors.Is(err, sql.ErrNoRows) {
		s.logger.Warn("failed to delete paired account", zap.String("user_id", lecturer.UserID), zap.Error(err))
	}

	s.invalidate(ctx)
	s.logger.Info("lecturer deleted", zap.String("lecturer_id", id))
	return nil
}

func (s *LecturerService) invalidate(ctx context.Context) {
	_ = s.cache.Invalidate(ctx, "matches:*", "dashboard:*")
}
