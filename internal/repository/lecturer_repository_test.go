package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-match-api/internal/models"
)

func newLecturerRepoMock(t *testing.T) (*LecturerRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewLecturerRepository(sqlx.NewDb(db, "postgres")), mock
}

func lecturerRows(lecturers ...models.Lecturer) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "email", "specialization", "department", "experience", "availability", "created_at", "updated_at"})
	for _, l := range lecturers {
		rows.AddRow(l.ID, l.UserID, l.Name, l.Email, l.Specialization, l.Department, l.Experience, l.Availability, l.CreatedAt, l.UpdatedAt)
	}
	return rows
}

func TestLecturerRepositoryListAvailableBySpecializationOrdering(t *testing.T) {
	repo, mock := newLecturerRepoMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM lecturers WHERE availability = TRUE AND specialization = $1 ORDER BY experience DESC, created_at ASC, id ASC")).
		WithArgs("Mathematics").
		WillReturnRows(lecturerRows(
			models.Lecturer{ID: "l2", UserID: "u2", Name: "B", Email: "b@example.edu", Specialization: "Mathematics", Experience: 9, Availability: true, CreatedAt: now, UpdatedAt: now},
			models.Lecturer{ID: "l1", UserID: "u1", Name: "A", Email: "a@example.edu", Specialization: "Mathematics", Experience: 5, Availability: true, CreatedAt: now, UpdatedAt: now},
		))

	lecturers, err := repo.ListAvailableBySpecialization(context.Background(), "Mathematics")
	require.NoError(t, err)
	require.Len(t, lecturers, 2)
	assert.Equal(t, "l2", lecturers[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLecturerRepositoryFindByIDNotFound(t *testing.T) {
	repo, mock := newLecturerRepoMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM lecturers WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLecturerRepositoryUpdateAvailability(t *testing.T) {
	repo, mock := newLecturerRepoMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE lecturers SET availability = $2, updated_at = $3 WHERE id = $1")).
		WithArgs("l1", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateAvailability(context.Background(), "l1", false))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLecturerRepositoryExistsByEmailExcludesID(t *testing.T) {
	repo, mock := newLecturerRepoMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM lecturers WHERE LOWER(email) = LOWER($1) AND id <> $2 LIMIT 1")).
		WithArgs("a@example.edu", "l1").
		WillReturnError(sql.ErrNoRows)

	exists, err := repo.ExistsByEmail(context.Background(), "a@example.edu", "l1")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
