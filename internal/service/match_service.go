package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-match-api/internal/models"
	appErrors "github.com/noah-isme/course-match-api/pkg/errors"
)

const (
	matchViewCacheKey     = "matches:view"
	matchDetailCacheKey   = "matches:view:details"
	unmatchedViewCacheKey = "matches:unmatched"
)

type matchRepository interface {
	List(ctx context.Context) ([]models.Match, error)
	ListDetails(ctx context.Context) ([]models.MatchDetail, error)
	ListByActive(ctx context.Context, active bool) ([]models.Match, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.Match, error)
	ListByLecturer(ctx context.Context, lecturerID string) ([]models.Match, error)
	FindByID(ctx context.Context, id string) (*models.Match, error)
	ExistsForPair(ctx context.Context, courseID, lecturerID string) (bool, error)
	Create(ctx context.Context, match *models.Match) error
	Reassign(ctx context.Context, id, lecturerID string, ts time.Time) error
	SetActive(ctx context.Context, id string, active bool, ts time.Time) error
	Delete(ctx context.Context, id string) error
}

type courseReader interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
	ListActive(ctx context.Context) ([]models.Course, error)
}

type lecturerReader interface {
	FindByID(ctx context.Context, id string) (*models.Lecturer, error)
	ListAvailableBySpecialization(ctx context.Context, specialization string) ([]models.Lecturer, error)
}

// CreateMatchRequest describes a manual match payload.
type CreateMatchRequest struct {
	CourseID   string `json:"course_id" validate:"required"`
	LecturerID string `json:"lecturer_id" validate:"required"`
}

// UpdateMatchRequest toggles the active flag on a match.
type UpdateMatchRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// MatchService implements the course-lecturer matching engine. It owns no
// state of its own: every operation is a full pass over the store's current
// contents. Matches referencing deleted courses or lecturers are skipped,
// never treated as errors; the delete cascades elsewhere make them routine.
type MatchService struct {
	matches   matchRepository
	courses   courseReader
	lecturers lecturerReader
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	viewTTL   time.Duration
}

// NewMatchService creates a service instance.
func NewMatchService(
	matches matchRepository,
	courses courseReader,
	lecturers lecturerReader,
	cache *CacheService,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	viewTTL time.Duration,
) *MatchService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if viewTTL <= 0 {
		viewTTL = time.Minute
	}
	return &MatchService{
		matches:   matches,
		courses:   courses,
		lecturers: lecturers,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		viewTTL:   viewTTL,
	}
}

// AutoMatch reconciles the full match set against current course and
// lecturer state, then assigns lecturers to never-matched active courses.
//
// Passes, in order: repoint or deactivate active matches whose lecturer
// became unavailable; reactivate inactive matches whose lecturer is
// available again (the previous lecturer is restored as-is, with no
// re-ranking); create matches for active courses that have no match row at
// all, picking the most experienced available lecturer of the course's
// specialization; finally soft-deactivate all but the freshest active match
// per course.
func (s *MatchService) AutoMatch(ctx context.Context) (*models.AutoMatchResult, error) {
	start := time.Now()
	now := time.Now().UTC()
	result := &models.AutoMatchResult{
		NewMatches:         []models.NewMatch{},
		RematchedCourses:   []models.RematchedCourse{},
		DeactivatedMatches: []models.UnresolvedCourse{},
	}

	courses, err := s.courses.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active courses")
	}

	activeMatches, err := s.matches.ListByActive(ctx, true)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active matches")
	}

	for _, match := range activeMatches {
		course, err := s.findCourse(ctx, match.CourseID)
		if err != nil {
			return nil, err
		}
		if course == nil {
			continue
		}
		lecturer, err := s.findLecturer(ctx, match.LecturerID)
		if err != nil {
			return nil, err
		}
		if lecturer == nil || lecturer.Availability {
			continue
		}

		if err := s.matches.SetActive(ctx, match.ID, false, now); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate match")
		}

		candidates, err := s.lecturers.ListAvailableBySpecialization(ctx, course.Specialization)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load available lecturers")
		}
		if len(candidates) > 0 {
			selected := mostExperienced(candidates)
			if err := s.matches.Reassign(ctx, match.ID, selected.ID, now); err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reassign match")
			}
			result.RematchedCourses = append(result.RematchedCourses, models.RematchedCourse{
				MatchID:       match.ID,
				CourseID:      course.ID,
				OldLecturerID: match.LecturerID,
				NewLecturerID: selected.ID,
			})
		} else {
			result.DeactivatedMatches = append(result.DeactivatedMatches, models.UnresolvedCourse{
				CourseID:       course.ID,
				Specialization: course.Specialization,
			})
		}
	}

	inactiveMatches, err := s.matches.ListByActive(ctx, false)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load inactive matches")
	}

	for _, match := range inactiveMatches {
		course, err := s.findCourse(ctx, match.CourseID)
		if err != nil {
			return nil, err
		}
		lecturer, err := s.findLecturer(ctx, match.LecturerID)
		if err != nil {
			return nil, err
		}
		if course == nil || lecturer == nil {
			continue
		}
		if !lecturer.Availability {
			continue
		}

		if err := s.matches.SetActive(ctx, match.ID, true, now); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reactivate match")
		}
		result.RematchedCourses = append(result.RematchedCourses, models.RematchedCourse{
			MatchID:       match.ID,
			CourseID:      course.ID,
			NewLecturerID: lecturer.ID,
			Reactivated:   true,
		})
	}

	for _, course := range courses {
		existing, err := s.matches.ListByCourse(ctx, course.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course matches")
		}
		// Courses with any match row, even an inactive orphaned one, are
		// handled by the reconciliation passes above; only never-matched
		// courses get a fresh assignment.
		if len(existing) > 0 {
			continue
		}

		candidates, err := s.lecturers.ListAvailableBySpecialization(ctx, course.Specialization)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load available lecturers")
		}
		if len(candidates) == 0 {
			continue
		}

		selected := mostExperienced(candidates)
		match := &models.Match{
			CourseID:      course.ID,
			LecturerID:    selected.ID,
			IsAutoMatched: true,
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.matches.Create(ctx, match); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create match")
		}
		result.NewMatches = append(result.NewMatches, models.NewMatch{
			MatchID:    match.ID,
			CourseID:   course.ID,
			LecturerID: selected.ID,
		})
	}

	duplicates, err := s.deactivateDuplicateActives(ctx, now)
	if err != nil {
		return nil, err
	}
	result.DuplicatesRemoved = duplicates

	s.invalidateViews(ctx)
	if s.metrics != nil {
		s.metrics.ObserveMatchingRun("auto_match", time.Since(start))
		s.metrics.AddMatchesCreated(len(result.NewMatches))
	}
	s.logger.Info("auto match completed",
		zap.Int("new_matches", len(result.NewMatches)),
		zap.Int("rematched", len(result.RematchedCourses)),
		zap.Int("deactivated", len(result.DeactivatedMatches)),
		zap.Int("duplicates_removed", result.DuplicatesRemoved),
	)

	return result, nil
}

// RematchUnavailableLecturers is the standalone availability pass: it scans
// only active matches and repoints each one whose lecturer went unavailable.
// The existing match row is patched in place so a course keeps a single
// authoritative row.
func (s *MatchService) RematchUnavailableLecturers(ctx context.Context) (*models.RematchResult, error) {
	start := time.Now()
	now := time.Now().UTC()
	result := &models.RematchResult{
		RematchedCourses: []models.RematchedCourse{},
		UnmatchedCourses: []models.UnresolvedCourse{},
	}

	activeMatches, err := s.matches.ListByActive(ctx, true)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active matches")
	}

	for _, match := range activeMatches {
		lecturer, err := s.findLecturer(ctx, match.LecturerID)
		if err != nil {
			return nil, err
		}
		if lecturer == nil || lecturer.Availability {
			continue
		}

		if err := s.matches.SetActive(ctx, match.ID, false, now); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate match")
		}

		course, err := s.findCourse(ctx, match.CourseID)
		if err != nil {
			return nil, err
		}
		if course == nil {
			continue
		}

		candidates, err := s.lecturers.ListAvailableBySpecialization(ctx, course.Specialization)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load available lecturers")
		}
		if len(candidates) > 0 {
			selected := mostExperienced(candidates)
			if err := s.matches.Reassign(ctx, match.ID, selected.ID, now); err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reassign match")
			}
			result.RematchedCourses = append(result.RematchedCourses, models.RematchedCourse{
				MatchID:       match.ID,
				CourseID:      course.ID,
				OldLecturerID: match.LecturerID,
				NewLecturerID: selected.ID,
			})
		} else {
			result.UnmatchedCourses = append(result.UnmatchedCourses, models.UnresolvedCourse{
				CourseID:       course.ID,
				Specialization: course.Specialization,
			})
		}
	}

	s.invalidateViews(ctx)
	if s.metrics != nil {
		s.metrics.ObserveMatchingRun("rematch_unavailable", time.Since(start))
	}

	return result, nil
}

// CleanupDuplicateMatches hard-deletes every non-authoritative match row.
// Unlike AutoMatch's own dedup pass, which only deactivates, this is the
// convergence operation that restores the at-most-one-row-per-course
// invariant in storage.
func (s *MatchService) CleanupDuplicateMatches(ctx context.Context) (*models.CleanupResult, error) {
	start := time.Now()

	all, err := s.matches.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load matches")
	}

	grouped := groupByCourse(all)
	removed := 0
	for _, group := range grouped {
		if len(group) < 2 {
			continue
		}
		sortAuthoritative(group)
		for _, stale := range group[1:] {
			if err := s.matches.Delete(ctx, stale.ID); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					continue
				}
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete duplicate match")
			}
			removed++
		}
	}

	s.invalidateViews(ctx)
	if s.metrics != nil {
		s.metrics.ObserveMatchingRun("cleanup_duplicates", time.Since(start))
	}
	s.logger.Info("duplicate match cleanup completed", zap.Int("removed", removed))

	return &models.CleanupResult{DuplicatesRemoved: removed}, nil
}

// GetMatches returns one authoritative match per course: active rows win
// over inactive ones, then the most recently updated. Read-only.
func (s *MatchService) GetMatches(ctx context.Context) ([]models.Match, error) {
	var cached []models.Match
	if hit, _ := s.cache.Get(ctx, matchViewCacheKey, &cached); hit {
		return cached, nil
	}

	all, err := s.matches.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load matches")
	}

	grouped := groupByCourse(all)
	deduped := make([]models.Match, 0, len(grouped))
	for _, group := range grouped {
		sortAuthoritative(group)
		deduped = append(deduped, group[0])
	}
	sort.Slice(deduped, func(i, j int) bool {
		if !deduped[i].CreatedAt.Equal(deduped[j].CreatedAt) {
			return deduped[i].CreatedAt.Before(deduped[j].CreatedAt)
		}
		return deduped[i].ID < deduped[j].ID
	})

	_ = s.cache.Set(ctx, matchViewCacheKey, deduped, s.viewTTL)
	return deduped, nil
}

// GetMatchDetails is GetMatches joined with course and lecturer display
// fields, deduplicated by the same authority rule.
func (s *MatchService) GetMatchDetails(ctx context.Context) ([]models.MatchDetail, error) {
	var cached []models.MatchDetail
	if hit, _ := s.cache.Get(ctx, matchDetailCacheKey, &cached); hit {
		return cached, nil
	}

	all, err := s.matches.ListDetails(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load matches")
	}

	grouped := make(map[string][]models.MatchDetail, len(all))
	for _, d := range all {
		grouped[d.CourseID] = append(grouped[d.CourseID], d)
	}
	deduped := make([]models.MatchDetail, 0, len(grouped))
	for _, group := range grouped {
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].IsActive != group[j].IsActive {
				return group[i].IsActive
			}
			if !group[i].UpdatedAt.Equal(group[j].UpdatedAt) {
				return group[i].UpdatedAt.After(group[j].UpdatedAt)
			}
			return group[i].ID < group[j].ID
		})
		deduped = append(deduped, group[0])
	}
	sort.Slice(deduped, func(i, j int) bool {
		if !deduped[i].CreatedAt.Equal(deduped[j].CreatedAt) {
			return deduped[i].CreatedAt.Before(deduped[j].CreatedAt)
		}
		return deduped[i].ID < deduped[j].ID
	})

	_ = s.cache.Set(ctx, matchDetailCacheKey, deduped, s.viewTTL)
	return deduped, nil
}

// GetUnmatchedCourses returns every active course lacking an active match,
// annotated with lecturer availability for its specialization. Read-only.
func (s *MatchService) GetUnmatchedCourses(ctx context.Context) ([]models.UnmatchedCourse, error) {
	var cached []models.UnmatchedCourse
	if hit, _ := s.cache.Get(ctx, unmatchedViewCacheKey, &cached); hit {
		return cached, nil
	}

	courses, err := s.courses.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active courses")
	}
	activeMatches, err := s.matches.ListByActive(ctx, true)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active matches")
	}

	matchedCourses := make(map[string]struct{}, len(activeMatches))
	for _, match := range activeMatches {
		matchedCourses[match.CourseID] = struct{}{}
	}

	unmatched := make([]models.UnmatchedCourse, 0)
	for _, course := range courses {
		if _, ok := matchedCourses[course.ID]; ok {
			continue
		}
		candidates, err := s.lecturers.ListAvailableBySpecialization(ctx, course.Specialization)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load available lecturers")
		}
		unmatched = append(unmatched, models.UnmatchedCourse{
			Course:                  course,
			HasAvailableLecturers:   len(candidates) > 0,
			AvailableLecturersCount: len(candidates),
		})
	}

	_ = s.cache.Set(ctx, unmatchedViewCacheKey, unmatched, s.viewTTL)
	return unmatched, nil
}

// Create adds a manual match between a course and a lecturer.
func (s *MatchService) Create(ctx context.Context, req CreateMatchRequest) (*models.Match, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid match payload")
	}

	course, err := s.findCourse(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	lecturer, err := s.findLecturer(ctx, req.LecturerID)
	if err != nil {
		return nil, err
	}
	if lecturer == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "lecturer not found")
	}

	exists, err := s.matches.ExistsForPair(ctx, req.CourseID, req.LecturerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check match uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "match already exists for this course and lecturer")
	}

	now := time.Now().UTC()
	match := &models.Match{
		CourseID:      req.CourseID,
		LecturerID:    req.LecturerID,
		IsAutoMatched: false,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.matches.Create(ctx, match); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create match")
	}

	s.invalidateViews(ctx)
	return match, nil
}

// Update toggles the active flag on a match.
func (s *MatchService) Update(ctx context.Context, id string, req UpdateMatchRequest) (*models.Match, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid match payload")
	}

	match, err := s.matches.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "match not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load match")
	}

	now := time.Now().UTC()
	if err := s.matches.SetActive(ctx, match.ID, *req.IsActive, now); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update match")
	}
	match.IsActive = *req.IsActive
	match.UpdatedAt = now

	s.invalidateViews(ctx)
	return match, nil
}

// Delete removes a match row outright.
func (s *MatchService) Delete(ctx context.Context, id string) error {
	if err := s.matches.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "match not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete match")
	}
	s.invalidateViews(ctx)
	return nil
}

// ListByCourse returns every match row for a course.
func (s *MatchService) ListByCourse(ctx context.Context, courseID string) ([]models.Match, error) {
	matches, err := s.matches.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list matches")
	}
	return matches, nil
}

// ListByLecturer returns every match row for a lecturer.
func (s *MatchService) ListByLecturer(ctx context.Context, lecturerID string) ([]models.Match, error) {
	matches, err := s.matches.ListByLecturer(ctx, lecturerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list matches")
	}
	return matches, nil
}

func (s *MatchService) deactivateDuplicateActives(ctx context.Context, now time.Time) (int, error) {
	activeAll, err := s.matches.ListByActive(ctx, true)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active matches")
	}

	kept := make(map[string]models.Match, len(activeAll))
	var stale []string
	for _, match := range activeAll {
		existing, ok := kept[match.CourseID]
		if !ok {
			kept[match.CourseID] = match
			continue
		}
		if match.UpdatedAt.After(existing.UpdatedAt) {
			stale = append(stale, existing.ID)
			kept[match.CourseID] = match
		} else {
			stale = append(stale, match.ID)
		}
	}

	for _, id := range stale {
		if err := s.matches.SetActive(ctx, id, false, now); err != nil {
			return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate duplicate match")
		}
	}
	return len(stale), nil
}

func (s *MatchService) findCourse(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

func (s *MatchService) findLecturer(ctx context.Context, id string) (*models.Lecturer, error) {
	lecturer, err := s.lecturers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lecturer")
	}
	return lecturer, nil
}

func (s *MatchService) invalidateViews(ctx context.Context) {
	_ = s.cache.Invalidate(ctx, "matches:*", "dashboard:*")
}

// mostExperienced picks the highest-experience lecturer. The sort is stable
// so equal experience falls back to the repository's retrieval order
// (created_at, then id), keeping selection deterministic.
func mostExperienced(lecturers []models.Lecturer) models.Lecturer {
	sorted := make([]models.Lecturer, len(lecturers))
	copy(sorted, lecturers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Experience > sorted[j].Experience
	})
	return sorted[0]
}

func groupByCourse(matches []models.Match) map[string][]models.Match {
	grouped := make(map[string][]models.Match)
	for _, match := range matches {
		grouped[match.CourseID] = append(grouped[match.CourseID], match)
	}
	return grouped
}

// sortAuthoritative orders a course's match rows best-first: active before
// inactive, then most recently updated, then id for a stable total order.
func sortAuthoritative(group []models.Match) {
	sort.SliceStable(group, func(i, j int) bool {
		if group[i].IsActive != group[j].IsActive {
			return group[i].IsActive
		}
		if !group[i].UpdatedAt.Equal(group[j].UpdatedAt) {
			return group[i].UpdatedAt.After(group[j].UpdatedAt)
		}
		return group[i].ID < group[j].ID
	})
}
