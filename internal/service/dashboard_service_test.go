package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-match-api/internal/models"
)

type dashCourseStub struct {
	courses []models.Course
}

func (r *dashCourseStub) Count(_ context.Context, activeOnly bool) (int, error) {
	if !activeOnly {
		return len(r.courses), nil
	}
	count := 0
	for _, c := range r.courses {
		if c.IsActive {
			count++
		}
	}
	return count, nil
}

func (r *dashCourseStub) ListActive(_ context.Context) ([]models.Course, error) {
	var out []models.Course
	for _, c := range r.courses {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

type dashCountStub struct {
	count int
}

func (r *dashCountStub) Count(_ context.Context) (int, error) {
	return r.count, nil
}

type dashMatchStub struct {
	matches []models.Match
}

func (r *dashMatchStub) CountActive(_ context.Context) (int, error) {
	count := 0
	for _, m := range r.matches {
		if m.IsActive {
			count++
		}
	}
	return count, nil
}

func (r *dashMatchStub) ListByActive(_ context.Context, active bool) ([]models.Match, error) {
	var out []models.Match
	for _, m := range r.matches {
		if m.IsActive == active {
			out = append(out, m)
		}
	}
	return out, nil
}

func TestDashboardSummaryCountsUnmatched(t *testing.T) {
	courses := &dashCourseStub{courses: []models.Course{
		{ID: "c1", IsActive: true},
		{ID: "c2", IsActive: true},
		{ID: "c3", IsActive: false},
	}}
	matches := &dashMatchStub{matches: []models.Match{
		{ID: "m1", CourseID: "c1", IsActive: true},
		{ID: "m2", CourseID: "c2", IsActive: false},
	}}
	svc := NewDashboardService(courses, &dashCountStub{count: 4}, &dashCountStub{count: 25}, matches, nil, nil, time.Minute)

	summary, cacheHit, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)

	assert.Equal(t, 3, summary.TotalCourses)
	assert.Equal(t, 2, summary.ActiveCourses)
	assert.Equal(t, 4, summary.TotalLecturers)
	assert.Equal(t, 25, summary.TotalStudents)
	assert.Equal(t, 1, summary.ActiveMatches)
	assert.Equal(t, 1, summary.UnmatchedCourses)
}
