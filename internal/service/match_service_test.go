package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-match-api/internal/models"
	appErrors "github.com/noah-isme/course-match-api/pkg/errors"
)

type stubMatchRepo struct {
	matches []models.Match
	nextID  int
}

func (r *stubMatchRepo) List(_ context.Context) ([]models.Match, error) {
	out := make([]models.Match, len(r.matches))
	copy(out, r.matches)
	return out, nil
}

func (r *stubMatchRepo) ListDetails(_ context.Context) ([]models.MatchDetail, error) {
	out := make([]models.MatchDetail, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, models.MatchDetail{
			Match:        m,
			CourseCode:   "C-" + m.CourseID,
			CourseTitle:  "Course " + m.CourseID,
			LecturerName: "Lecturer " + m.LecturerID,
		})
	}
	return out, nil
}

func (r *stubMatchRepo) ListByActive(_ context.Context, active bool) ([]models.Match, error) {
	var out []models.Match
	for _, m := range r.matches {
		if m.IsActive == active {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMatchRepo) ListByCourse(_ context.Context, courseID string) ([]models.Match, error) {
	var out []models.Match
	for _, m := range r.matches {
		if m.CourseID == courseID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMatchRepo) ListByLecturer(_ context.Context, lecturerID string) ([]models.Match, error) {
	var out []models.Match
	for _, m := range r.matches {
		if m.LecturerID == lecturerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMatchRepo) FindByID(_ context.Context, id string) (*models.Match, error) {
	for i := range r.matches {
		if r.matches[i].ID == id {
			m := r.matches[i]
			return &m, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *stubMatchRepo) ExistsForPair(_ context.Context, courseID, lecturerID string) (bool, error) {
	for _, m := range r.matches {
		if m.CourseID == courseID && m.LecturerID == lecturerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubMatchRepo) Create(_ context.Context, match *models.Match) error {
	if match.ID == "" {
		r.nextID++
		match.ID = fmt.Sprintf("m-%d", r.nextID)
	}
	r.matches = append(r.matches, *match)
	return nil
}

func (r *stubMatchRepo) Reassign(_ context.Context, id, lecturerID string, ts time.Time) error {
	for i := range r.matches {
		if r.matches[i].ID == id {
			r.matches[i].LecturerID = lecturerID
			r.matches[i].IsActive = true
			r.matches[i].UpdatedAt = ts
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *stubMatchRepo) SetActive(_ context.Context, id string, active bool, ts time.Time) error {
	for i := range r.matches {
		if r.matches[i].ID == id {
			r.matches[i].IsActive = active
			r.matches[i].UpdatedAt = ts
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *stubMatchRepo) Delete(_ context.Context, id string) error {
	for i := range r.matches {
		if r.matches[i].ID == id {
			r.matches = append(r.matches[:i], r.matches[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *stubMatchRepo) activeForCourse(courseID string) []models.Match {
	var out []models.Match
	for _, m := range r.matches {
		if m.CourseID == courseID && m.IsActive {
			out = append(out, m)
		}
	}
	return out
}

type stubCourseRepo struct {
	courses []models.Course
}

func (r *stubCourseRepo) FindByID(_ context.Context, id string) (*models.Course, error) {
	for i := range r.courses {
		if r.courses[i].ID == id {
			c := r.courses[i]
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *stubCourseRepo) ListActive(_ context.Context) ([]models.Course, error) {
	var out []models.Course
	for _, c := range r.courses {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

type stubLecturerRepo struct {
	lecturers []models.Lecturer
}

func (r *stubLecturerRepo) FindByID(_ context.Context, id string) (*models.Lecturer, error) {
	for i := range r.lecturers {
		if r.lecturers[i].ID == id {
			l := r.lecturers[i]
			return &l, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *stubLecturerRepo) ListAvailableBySpecialization(_ context.Context, specialization string) ([]models.Lecturer, error) {
	var out []models.Lecturer
	for _, l := range r.lecturers {
		if l.Availability && l.Specialization == specialization {
			out = append(out, l)
		}
	}
	return out, nil
}

func newMatchService(matches *stubMatchRepo, courses *stubCourseRepo, lecturers *stubLecturerRepo) *MatchService {
	return NewMatchService(matches, courses, lecturers, nil, nil, nil, nil, time.Minute)
}

func course(id, specialization string, active bool) models.Course {
	return models.Course{ID: id, Title: "Course " + id, Code: "C-" + id, Specialization: specialization, Credits: 3, Semester: "2026A", MaxStudents: 30, IsActive: active}
}

func lecturer(id, specialization string, experience int, available bool) models.Lecturer {
	return models.Lecturer{ID: id, UserID: "u-" + id, Name: "Lecturer " + id, Email: id + "@example.edu", Specialization: specialization, Experience: experience, Availability: available}
}

func TestAutoMatchAssignsMostExperiencedLecturer(t *testing.T) {
	matches := &stubMatchRepo{}
	courses := &stubCourseRepo{courses: []models.Course{course("c1", "Mathematics", true)}}
	lecturers := &stubLecturerRepo{lecturers: []models.Lecturer{
		lecturer("l1", "Mathematics", 5, true),
		lecturer("l2", "Mathematics", 9, true),
		lecturer("l3", "Physics", 20, true),
	}}
	svc := newMatchService(matches, courses, lecturers)

	result, err := svc.AutoMatch(context.Background())
	require.NoError(t, err)

	require.Len(t, result.NewMatches, 1)
	assert.Equal(t, "c1", result.NewMatches[0].CourseID)
	assert.Equal(t, "l2", result.NewMatches[0].LecturerID)
	require.Len(t, matches.matches, 1)
	assert.True(t, matches.matches[0].IsAutoMatched)
	assert.True(t, matches.matches[0].IsActive)
}

func TestAutoMatchSpecializationMustMatch(t *testing.T) {
	matches := &stubMatchRepo{}
	courses := &stubCourseRepo{courses: []models.Course{course("c1", "Chemistry", true)}}
	lecturers := &stubLecturerRepo{lecturers: []models.Lecturer{
		lecturer("l1", "Mathematics", 15, true),
	}}
	svc := newMatchService(matches, courses, lecturers)

	result, err := svc.AutoMatch(context.Background())
	require.NoError(t, err)

	assert.Empty(t, result.NewMatches)
	assert.Empty(t, matches.matches)
}

func TestAutoMatchSkipsInactiveCourses(t *testing.T) {
	matches := &stubMatchRepo{}
	courses := &stubCourseRepo{courses: []models.Course{course("c1", "Mathematics", false)}}
	lecturers := &stubLecturerRepo{lecturers: []models.Lecturer{lecturer("l1", "Mathematics", 5, true)}}
	svc := newMatchService(matches, courses, lecturers)

	result, err := svc.AutoMatch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.NewMatches)
	assert.Empty(t, matches.matches)
}

func TestAutoMatchIsIdempotent(t *testing.T) {
	matches := &stubMatchRepo{}
	courses := &stubCourseRepo{courses: []models.Course{
		course("c1", "Mathematics", true),
		course("c2", "Physics", true),
	}}
	lecturers := &stubLecturerRepo{lecturers: []models.Lecturer{
		lecturer("l1", "Mathematics", 5, true),
		lecturer("l2", "Physics", 3, true),
	}}
	svc := newMatchService(matches, courses, lecturers)

	first, err := svc.AutoMatch(context.Background())
	require.NoError(t, err)
	require.Len(t, first.NewMatches, 2)

	second, err := svc.AutoMatch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, second.NewMatches)
	assert.Empty(t, second.RematchedCourses)
	assert.Zero(t, second.DuplicatesRemoved)
	assert.Len(t, matches.matches, 2)
}

func TestAutoMatchRepointsMatchOfUnavailableLecturer(t *testing.T) {
	created := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	matches := &stubMatchRepo{matches: []models.Match{
		{ID: "m1", CourseID: "c1", LecturerID: "l1", IsAutoMatched: true, IsActive: true, CreatedAt: created, UpdatedAt: created},
	}}
	courses := &stubCourseRepo{courses: []models.Course{course("c1", "Mathematics", true)}}
	lecturers := &stubLecturerRepo{lecturers: []models.Lecturer{
		lecturer("l1", "Mathematics", 10, false),
		lecturer("l2", "Mathematics", 4, true),
	}}
	svc := newMatchService(matches, courses, lecturers)

	result, err := svc.AutoMatch(context.Background())
	require.NoError(t, err)

	require.Len(t, result.RematchedCourses, 1)
	assert.Equal(t, "m1", result.RematchedCourses[0].MatchID)
	assert.Equal(t, "l1", result.RematchedCourses[0].OldLecturerID)
	assert.Equal(t, "l2", result.RematchedCourses[0].NewLecturerID)
	assert.Empty(t, result.NewMatches)

	// Same row, repointed, still the only row.
	require.Len(t, matches.matches, 1)
	assert.Equal(t, "m1", matches.matches[0].ID)
	assert.Equal(t, "l2", matches.matches[0].LecturerID)
	assert.True(t, matches.matches[0].IsActive)
}

func TestAutoMatchLeavesMatchInactiveWhenNoReplacement(t *testing.T) {
	created := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	matches := &stubMatchRepo{matches: []models.Match{
		{ID: "m1", CourseID: "c1", LecturerID: "l1", IsActive: true, CreatedAt: created, UpdatedAt: created},
	}}
	courses := &stubCourseRepo{courses: []models.Course{course("c1", "Mathematics", true)}}
	lecturers := &stubLecturerRepo{lecturers: []models.Lecturer{
		lecturer("l1", "Mathematics", 10, false),
	}}
	svc := newMatchService(matches, courses, lecturers)

	result, err := svc.AutoMatch(context.Background())
	require.NoError(t, err)

	require.Len(t, result.DeactivatedMatches, 1)
	assert.Equal(t, "c1", result.DeactivatedMatches[0].CourseID)
	assert.Equal(t, "Mathematics", result.DeactivatedMatches[0].Specialization)
	assert.Empty(t, result.NewMatches)

	// The course keeps its inactive row and gets no fresh assignment.
	require.Len(t, matches.matches, 1)
	assert.False(t, matches.matches[0].IsActive)
}

func TestAutoMatchReactivatesMatchWhenLecturerReturns(t *testing.T) {
	created := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	matches := &stubMatchRepo{matches: []models.Match{
		{ID: "m1", CourseID: "c1", LecturerID: "l1", IsActive: false, CreatedAt: created, UpdatedAt: created},
	}}
	courses := &stubCourseRepo{courses: []models.Course{course("c1", "Mathematics", true)}}
	lecturers := &stubLecturerRepo{lecturers: []models.Lecturer{
		lecturer("l1", "Mathematics", 2, true),
		lecturer("l2", "Mathematics", 30, true),
	}}
	svc := newMatchService(matches, courses, lecturers)

	result, err := svc.AutoMatch(context.Background())
	require.NoError(t, err)

	// The previous lecturer is restored without re-ranking, even though a
	// more experienced one is available.
	require.Len(t, result.RematchedCourses, 1)
	assert.True(t, result.RematchedCourses[0].Reactivated)
	assert.Equal(t, "l1", result.RematchedCourses[0].NewLecturerID)
	assert.Empty(t, result.NewMatches)

	require.Len(t, matches.matches, 1)
	assert.Equal(t, "l1", matches.matches[0].LecturerID)
	assert.True(t, matches.matches[0].IsActive)
}

func TestAutoMatchSkipsOrphanedMatches(t *testing.T) {
	created := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	matches := &stubMatchRepo{matches: []models.Match{
		{ID: "m1", CourseID: "gone", LecturerID: "l1", IsActive: true, CreatedAt: created, UpdatedAt: created},
		{ID: "m2", CourseID: "c1", LecturerID: "gone", IsActive: false, CreatedAt: created, UpdatedAt: created},
	}}
	courses := &stubCourseRepo{courses: []models.Course{course("c1", "Mathematics", true)}}
	lecturers := &stubLecturerRepo{lecturers: []models.Lecturer{lecturer("l1", "Mathematics", 5, true)}}
	svc := newMatchService(matches, courses, lecturers)

	result, err := svc.AutoMatch(context.Background())
	require.NoError(t, err)

	// c1 already has a row (the orphaned m2) so it gets no fresh match,
	// and both orphans survive untouched.
	assert.Empty(t, result.NewMatches)
	assert.Empty(t, result.RematchedCourses)
	assert.Len(t, matches.matches, 2)
}

func TestAutoMatchDeactivatesDuplicateActiveMatches(t *testing.T) {
	older := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	matches := &stubMatchRepo{matches: []models.Match{
		{ID: "m1", CourseID: "c1", LecturerID: "l1", IsActive: true, CreatedAt: older, UpdatedAt: older},
		{ID: "m2", CourseID: "c1", LecturerID: "l2", IsActive: true, CreatedAt: newer, UpdatedAt: newer},
	}}
	courses := &stubCourseRepo{courses: []models.Course{course("c1", "Mathematics", true)}}
	lecturers := &stubLecturerRepo{lecturers: []models.Lecturer{
		lecturer("l1", "Mathematics", 5, true),
		lecturer("l2", "Mathematics", 7, true),
	}}
	svc := newMatchService(matches, courses, lecturers)

	result, err := svc.AutoMatch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.DuplicatesRemoved)
	active := matches.activeForCourse("c1")
	require.Len(t, active, 1)
	assert.Equal(t, "m2", active[0].ID)
	// Soft dedup only: the stale row still exists.
	assert.Len(t, matches.matches, 2)
}

func TestRematchRepointsOnlyUnavailable(t *testing.T) {
	created := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	matches := &stubMatchRepo{matches: []models.Match{
		{ID: "m1", CourseID: "c1", LecturerID: "l1", IsActive: true, CreatedAt: created, UpdatedAt: created},
		{ID: "m2", CourseID: "c2", LecturerID: "l2", IsActive: true, CreatedAt: created, UpdatedAt: created},
	}}
	courses := &stubCourseRepo{courses: []models.Course{
		course("c1", "Mathematics", true),
		course("c2", "Physics", true),
	}}
	lecturers := &stubLecturerRepo{lecturers: []models.Lecturer{
		lecturer("l1", "Mathematics", 10, false),
		lecturer("l2", "Physics", 4, true),
		lecturer("l3", "Mathematics", 6, true),
	}}
	svc := newMatchService(matches, courses, lecturers)

	result, err := svc.RematchUnavailableLecturers(context.Background())
	require.NoError(t, err)

	require.Len(t, result.RematchedCourses, 1)
	assert.Equal(t, "c1", result.RematchedCourses[0].CourseID)
	assert.Equal(t, "l3", result.RematchedCourses[0].NewLecturerID)
	assert.Empty(t, result.UnmatchedCourses)

	m2, err := matches.FindByID(context.Background(), "m2")
	require.NoError(t, err)
	assert.Equal(t, "l2", m2.LecturerID)
}

func TestRematchReportsCoursesWithoutReplacement(t *testing.T) {
	created := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	matches := &stubMatchRepo{matches: []models.Match{
		{ID: "m1", CourseID: "c1", LecturerID: "l1", IsActive: true, CreatedAt: created, UpdatedAt: created},
	}}
	courses := &stubCourseRepo{courses: []models.Course{course("c1", "Mathematics", true)}}
	lecturers := &stubLecturerRepo{lecturers: []models.Lecturer{lecturer("l1", "Mathematics", 10, false)}}
	svc := newMatchService(matches, courses, lecturers)

	result, err := svc.RematchUnavailableLecturers(context.Background())
	require.NoError(t, err)

	require.Len(t, result.UnmatchedCourses, 1)
	assert.Equal(t, "c1", result.UnmatchedCourses[0].CourseID)
	assert.False(t, matches.matches[0].IsActive)
}

func TestCleanupDeletesAllButAuthoritativeRow(t *testing.T) {
	t0 := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	matches := &stubMatchRepo{matches: []models.Match{
		{ID: "m1", CourseID: "c1", LecturerID: "l1", IsActive: false, CreatedAt: t0, UpdatedAt: t0.Add(3 * time.Hour)},
		{ID: "m2", CourseID: "c1", LecturerID: "l2", IsActive: true, CreatedAt: t0, UpdatedAt: t0},
		{ID: "m3", CourseID: "c1", LecturerID: "l3", IsActive: true, CreatedAt: t0, UpdatedAt: t0.Add(time.Hour)},
		{ID: "m4", CourseID: "c2", LecturerID: "l1", IsActive: true, CreatedAt: t0, UpdatedAt: t0},
	}}
	svc := newMatchService(matches, &stubCourseRepo{}, &stubLecturerRepo{})

	result, err := svc.CleanupDuplicateMatches(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.DuplicatesRemoved)
	require.Len(t, matches.matches, 2)
	// Active beats inactive regardless of recency, then most recently
	// updated wins.
	kept, err := matches.ListByCourse(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "m3", kept[0].ID)
}

func TestCleanupIsIdempotent(t *testing.T) {
	t0 := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	matches := &stubMatchRepo{matches: []models.Match{
		{ID: "m1", CourseID: "c1", LecturerID: "l1", IsActive: true, CreatedAt: t0, UpdatedAt: t0},
		{ID: "m2", CourseID: "c1", LecturerID: "l2", IsActive: false, CreatedAt: t0, UpdatedAt: t0},
	}}
	svc := newMatchService(matches, &stubCourseRepo{}, &stubLecturerRepo{})

	first, err := svc.CleanupDuplicateMatches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.DuplicatesRemoved)

	second, err := svc.CleanupDuplicateMatches(context.Background())
	require.NoError(t, err)
	assert.Zero(t, second.DuplicatesRemoved)
	assert.Len(t, matches.matches, 1)
}

func TestGetMatchesReturnsOneRowPerCourse(t *testing.T) {
	t0 := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	matches := &stubMatchRepo{matches: []models.Match{
		{ID: "m1", CourseID: "c1", LecturerID: "l1", IsActive: false, CreatedAt: t0, UpdatedAt: t0.Add(2 * time.Hour)},
		{ID: "m2", CourseID: "c1", LecturerID: "l2", IsActive: true, CreatedAt: t0, UpdatedAt: t0},
		{ID: "m3", CourseID: "c2", LecturerID: "l1", IsActive: false, CreatedAt: t0.Add(time.Minute), UpdatedAt: t0},
	}}
	svc := newMatchService(matches, &stubCourseRepo{}, &stubLecturerRepo{})

	view, err := svc.GetMatches(context.Background())
	require.NoError(t, err)

	require.Len(t, view, 2)
	assert.Equal(t, "m2", view[0].ID)
	assert.Equal(t, "m3", view[1].ID)
	// Projection only, storage untouched.
	assert.Len(t, matches.matches, 3)
}

func TestGetMatchDetailsDeduplicatesLikeGetMatches(t *testing.T) {
	t0 := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	matches := &stubMatchRepo{matches: []models.Match{
		{ID: "m1", CourseID: "c1", LecturerID: "l1", IsActive: false, CreatedAt: t0, UpdatedAt: t0.Add(2 * time.Hour)},
		{ID: "m2", CourseID: "c1", LecturerID: "l2", IsActive: true, CreatedAt: t0, UpdatedAt: t0},
		{ID: "m3", CourseID: "c2", LecturerID: "l1", IsActive: false, CreatedAt: t0.Add(time.Minute), UpdatedAt: t0},
	}}
	svc := newMatchService(matches, &stubCourseRepo{}, &stubLecturerRepo{})

	view, err := svc.GetMatchDetails(context.Background())
	require.NoError(t, err)

	require.Len(t, view, 2)
	assert.Equal(t, "m2", view[0].ID)
	assert.Equal(t, "Lecturer l2", view[0].LecturerName)
	assert.Equal(t, "m3", view[1].ID)
	assert.Equal(t, "C-c2", view[1].CourseCode)
}

func TestGetUnmatchedCourses(t *testing.T) {
	t0 := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	matches := &stubMatchRepo{matches: []models.Match{
		{ID: "m1", CourseID: "c1", LecturerID: "l1", IsActive: true, CreatedAt: t0, UpdatedAt: t0},
		{ID: "m2", CourseID: "c2", LecturerID: "l1", IsActive: false, CreatedAt: t0, UpdatedAt: t0},
	}}
	courses := &stubCourseRepo{courses: []models.Course{
		course("c1", "Mathematics", true),
		course("c2", "Physics", true),
		course("c3", "Chemistry", true),
		course("c4", "Mathematics", false),
	}}
	lecturers := &stubLecturerRepo{lecturers: []models.Lecturer{
		lecturer("l2", "Physics", 3, true),
		lecturer("l3", "Physics", 8, true),
	}}
	svc := newMatchService(matches, courses, lecturers)

	unmatched, err := svc.GetUnmatchedCourses(context.Background())
	require.NoError(t, err)

	// c1 is matched, c4 inactive; c2 (inactive match only) and c3 qualify.
	require.Len(t, unmatched, 2)
	byID := map[string]models.UnmatchedCourse{}
	for _, u := range unmatched {
		byID[u.ID] = u
	}
	require.Contains(t, byID, "c2")
	require.Contains(t, byID, "c3")
	assert.True(t, byID["c2"].HasAvailableLecturers)
	assert.Equal(t, 2, byID["c2"].AvailableLecturersCount)
	assert.False(t, byID["c3"].HasAvailableLecturers)
	assert.Zero(t, byID["c3"].AvailableLecturersCount)
}

func TestCreateMatchRejectsDuplicatePair(t *testing.T) {
	t0 := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	matches := &stubMatchRepo{matches: []models.Match{
		{ID: "m1", CourseID: "c1", LecturerID: "l1", IsActive: false, CreatedAt: t0, UpdatedAt: t0},
	}}
	courses := &stubCourseRepo{courses: []models.Course{course("c1", "Mathematics", true)}}
	lecturers := &stubLecturerRepo{lecturers: []models.Lecturer{lecturer("l1", "Mathematics", 5, true)}}
	svc := newMatchService(matches, courses, lecturers)

	_, err := svc.Create(context.Background(), CreateMatchRequest{CourseID: "c1", LecturerID: "l1"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestCreateMatchValidatesReferences(t *testing.T) {
	svc := newMatchService(&stubMatchRepo{}, &stubCourseRepo{}, &stubLecturerRepo{})

	_, err := svc.Create(context.Background(), CreateMatchRequest{CourseID: "missing", LecturerID: "missing"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestCreateMatchManualFlag(t *testing.T) {
	matches := &stubMatchRepo{}
	courses := &stubCourseRepo{courses: []models.Course{course("c1", "Mathematics", true)}}
	lecturers := &stubLecturerRepo{lecturers: []models.Lecturer{lecturer("l1", "Mathematics", 5, true)}}
	svc := newMatchService(matches, courses, lecturers)

	match, err := svc.Create(context.Background(), CreateMatchRequest{CourseID: "c1", LecturerID: "l1"})
	require.NoError(t, err)
	assert.False(t, match.IsAutoMatched)
	assert.True(t, match.IsActive)
}

func TestUpdateMatchUnknownID(t *testing.T) {
	svc := newMatchService(&stubMatchRepo{}, &stubCourseRepo{}, &stubLecturerRepo{})
	active := false
	_, err := svc.Update(context.Background(), "missing", UpdateMatchRequest{IsActive: &active})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDeleteMatchUnknownID(t *testing.T) {
	svc := newMatchService(&stubMatchRepo{}, &stubCourseRepo{}, &stubLecturerRepo{})
	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestMostExperiencedTieBreakKeepsRetrievalOrder(t *testing.T) {
	first := lecturer("l1", "Mathematics", 7, true)
	second := lecturer("l2", "Mathematics", 7, true)
	picked := mostExperienced([]models.Lecturer{first, second})
	assert.Equal(t, "l1", picked.ID)

	picked = mostExperienced([]models.Lecturer{second, first})
	assert.Equal(t, "l2", picked.ID)
}
