package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-match-api/internal/models"
	appErrors "github.com/noah-isme/course-match-api/pkg/errors"
)

const dashboardSummaryCacheKey = "dashboard:summary"

type dashboardCourseReader interface {
	Count(ctx context.Context, activeOnly bool) (int, error)
	ListActive(ctx context.Context) ([]models.Course, error)
}

type dashboardLecturerReader interface {
	Count(ctx context.Context) (int, error)
}

type dashboardStudentReader interface {
	Count(ctx context.Context) (int, error)
}

type dashboardMatchReader interface {
	CountActive(ctx context.Context) (int, error)
	ListByActive(ctx context.Context, active bool) ([]models.Match, error)
}

// DashboardService aggregates counts for the admin dashboard.
type DashboardService struct {
	courses   dashboardCourseReader
	lecturers dashboardLecturerReader
	students  dashboardStudentReader
	matches   dashboardMatchReader
	cache     *CacheService
	logger    *zap.Logger
	ttl       time.Duration
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(
	courses dashboardCourseReader,
	lecturers dashboardLecturerReader,
	students dashboardStudentReader,
	matches dashboardMatchReader,
	cache *CacheService,
	logger *zap.Logger,
	ttl time.Duration,
) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &DashboardService{
		courses:   courses,
		lecturers: lecturers,
		students:  students,
		matches:   matches,
		cache:     cache,
		logger:    logger,
		ttl:       ttl,
	}
}

// Summary returns entity counts plus the number of active courses still
// lacking an active match. The bool reports whether the cache served it.
func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, bool, error) {
	var cached models.DashboardSummary
	if hit, _ := s.cache.Get(ctx, dashboardSummaryCacheKey, &cached); hit {
		return &cached, true, nil
	}

	totalCourses, err := s.courses.Count(ctx, false)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count courses")
	}
	activeCourses, err := s.courses.Count(ctx, true)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count active courses")
	}
	totalLecturers, err := s.lecturers.Count(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count lecturers")
	}
	totalStudents, err := s.students.Count(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count students")
	}
	activeMatches, err := s.matches.CountActive(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count active matches")
	}
	unmatched, err := s.unmatchedCount(ctx)
	if err != nil {
		return nil, false, err
	}

	summary := &models.DashboardSummary{
		TotalCourses:     totalCourses,
		ActiveCourses:    activeCourses,
		TotalLecturers:   totalLecturers,
		TotalStudents:    totalStudents,
		ActiveMatches:    activeMatches,
		UnmatchedCourses: unmatched,
	}

	_ = s.cache.Set(ctx, dashboardSummaryCacheKey, summary, s.ttl)
	return summary, false, nil
}

func (s *DashboardService) unmatchedCount(ctx context.Context) (int, error) {
	courses, err := s.courses.ListActive(ctx)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active courses")
	}
	active, err := s.matches.ListByActive(ctx, true)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active matches")
	}

	matched := make(map[string]struct{}, len(active))
	for _, match := range active {
		matched[match.CourseID] = struct{}{}
	}
	count := 0
	for _, course := range courses {
		if _, ok := matched[course.ID]; !ok {
			count++
		}
	}
	return count, nil
}
