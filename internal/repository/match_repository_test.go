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

func newMatchRepoMock(t *testing.T) (*MatchRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewMatchRepository(sqlx.NewDb(db, "postgres")), mock
}

func matchRows(matches ...models.Match) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "course_id", "lecturer_id", "is_auto_matched", "is_active", "created_at", "updated_at"})
	for _, m := range matches {
		rows.AddRow(m.ID, m.CourseID, m.LecturerID, m.IsAutoMatched, m.IsActive, m.CreatedAt, m.UpdatedAt)
	}
	return rows
}

func TestMatchRepositoryListByActive(t *testing.T) {
	repo, mock := newMatchRepoMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM matches WHERE is_active = $1 ORDER BY created_at ASC, id ASC")).
		WithArgs(true).
		WillReturnRows(matchRows(models.Match{ID: "m1", CourseID: "c1", LecturerID: "l1", IsActive: true, CreatedAt: now, UpdatedAt: now}))

	matches, err := repo.ListByActive(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "m1", matches[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchRepositoryCreateGeneratesID(t *testing.T) {
	repo, mock := newMatchRepoMock(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO matches")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	match := &models.Match{CourseID: "c1", LecturerID: "l1", IsAutoMatched: true, IsActive: true}
	require.NoError(t, repo.Create(context.Background(), match))
	assert.NotEmpty(t, match.ID)
	assert.False(t, match.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchRepositoryReassignKeepsRow(t *testing.T) {
	repo, mock := newMatchRepoMock(t)
	ts := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE matches SET lecturer_id = $2, is_active = TRUE, updated_at = $3 WHERE id = $1")).
		WithArgs("m1", "l2", ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Reassign(context.Background(), "m1", "l2", ts))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchRepositorySetActive(t *testing.T) {
	repo, mock := newMatchRepoMock(t)
	ts := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE matches SET is_active = $2, updated_at = $3 WHERE id = $1")).
		WithArgs("m1", false, ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetActive(context.Background(), "m1", false, ts))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchRepositoryExistsForPair(t *testing.T) {
	repo, mock := newMatchRepoMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM matches WHERE course_id = $1 AND lecturer_id = $2 LIMIT 1")).
		WithArgs("c1", "l1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsForPair(context.Background(), "c1", "l1")
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM matches WHERE course_id = $1 AND lecturer_id = $2 LIMIT 1")).
		WithArgs("c1", "l2").
		WillReturnError(sql.ErrNoRows)

	exists, err = repo.ExistsForPair(context.Background(), "c1", "l2")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchRepositoryDeleteMissingRow(t *testing.T) {
	repo, mock := newMatchRepoMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM matches WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
