package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-match-api/internal/models"
)

const matchColumns = "id, course_id, lecturer_id, is_auto_matched, is_active, created_at, updated_at"

// MatchRepository manages persistence for course-lecturer matches.
type MatchRepository struct {
	db *sqlx.DB
}

// NewMatchRepository constructs a MatchRepository.
func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// List returns every match row ordered by creation time.
func (r *MatchRepository) List(ctx context.Context) ([]models.Match, error) {
	query := fmt.Sprintf("SELECT %s FROM matches ORDER BY created_at ASC, id ASC", matchColumns)
	var matches []models.Match
	if err := r.db.SelectContext(ctx, &matches, query); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}

// ListByActive returns matches filtered by the is_active flag.
func (r *MatchRepository) ListByActive(ctx context.Context, active bool) ([]models.Match, error) {
	query := fmt.Sprintf("SELECT %s FROM matches WHERE is_active = $1 ORDER BY created_at ASC, id ASC", matchColumns)
	var matches []models.Match
	if err := r.db.SelectContext(ctx, &matches, query, active); err != nil {
		return nil, fmt.Errorf("list matches by active: %w", err)
	}
	return matches, nil
}

// ListByCourse returns every match row for a course, active or not.
func (r *MatchRepository) ListByCourse(ctx context.Context, courseID string) ([]models.Match, error) {
	query := fmt.Sprintf("SELECT %s FROM matches WHERE course_id = $1 ORDER BY created_at ASC, id ASC", matchColumns)
	var matches []models.Match
	if err := r.db.SelectContext(ctx, &matches, query, courseID); err != nil {
		return nil, fmt.Errorf("list matches by course: %w", err)
	}
	return matches, nil
}

// ListByLecturer returns every match row for a lecturer.
func (r *MatchRepository) ListByLecturer(ctx context.Context, lecturerID string) ([]models.Match, error) {
	query := fmt.Sprintf("SELECT %s FROM matches WHERE lecturer_id = $1 ORDER BY created_at ASC, id ASC", matchColumns)
	var matches []models.Match
	if err := r.db.SelectContext(ctx, &matches, query, lecturerID); err != nil {
		return nil, fmt.Errorf("list matches by lecturer: %w", err)
	}
	return matches, nil
}

// ListDetails returns every match row joined with course and lecturer
// display fields. Orphaned references come back as empty strings.
func (r *MatchRepository) ListDetails(ctx context.Context) ([]models.MatchDetail, error) {
	const query = `
SELECT m.id, m.course_id, m.lecturer_id, m.is_auto_matched, m.is_active, m.created_at, m.updated_at,
       COALESCE(c.title, '') AS course_title, COALESCE(c.code, '') AS course_code,
       COALESCE(l.name, '') AS lecturer_name, COALESCE(c.specialization, '') AS specialization
FROM matches m
LEFT JOIN courses c ON c.id = m.course_id
LEFT JOIN lecturers l ON l.id = m.lecturer_id
ORDER BY m.created_at ASC, m.id ASC`
	var details []models.MatchDetail
	if err := r.db.SelectContext(ctx, &details, query); err != nil {
		return nil, fmt.Errorf("list match details: %w", err)
	}
	return details, nil
}

// FindByID fetches a match by ID.
func (r *MatchRepository) FindByID(ctx context.Context, id string) (*models.Match, error) {
	query := fmt.Sprintf("SELECT %s FROM matches WHERE id = $1", matchColumns)
	var match models.Match
	if err := r.db.GetContext(ctx, &match, query, id); err != nil {
		return nil, err
	}
	return &match, nil
}

// ExistsForPair reports whether any match row links the course and lecturer.
func (r *MatchRepository) ExistsForPair(ctx context.Context, courseID, lecturerID string) (bool, error) {
	const query = `SELECT 1 FROM matches WHERE course_id = $1 AND lecturer_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, courseID, lecturerID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check match pair: %w", err)
	}
	return true, nil
}

// Create inserts a new match row.
func (r *MatchRepository) Create(ctx context.Context, match *models.Match) error {
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if match.CreatedAt.IsZero() {
		match.CreatedAt = now
	}
	if match.UpdatedAt.IsZero() {
		match.UpdatedAt = now
	}

	const query = `INSERT INTO matches (id, course_id, lecturer_id, is_auto_matched, is_active, created_at, updated_at)
		VALUES (:id, :course_id, :lecturer_id, :is_auto_matched, :is_active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, match); err != nil {
		return fmt.Errorf("create match: %w", err)
	}
	return nil
}

// Reassign repoints an existing match row at a new lecturer and reactivates
// it, preserving the row identity.
func (r *MatchRepository) Reassign(ctx context.Context, id, lecturerID string, ts time.Time) error {
	const query = `UPDATE matches SET lecturer_id = $2, is_active = TRUE, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, lecturerID, ts); err != nil {
		return fmt.Errorf("reassign match: %w", err)
	}
	return nil
}

// SetActive flips the is_active flag on a match row.
func (r *MatchRepository) SetActive(ctx context.Context, id string, active bool, ts time.Time) error {
	const query = `UPDATE matches SET is_active = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, active, ts); err != nil {
		return fmt.Errorf("set match active: %w", err)
	}
	return nil
}

// Delete removes a match row.
func (r *MatchRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted match rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByCourse removes every match row referencing the course.
func (r *MatchRepository) DeleteByCourse(ctx context.Context, courseID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE course_id = $1`, courseID); err != nil {
		return fmt.Errorf("delete matches by course: %w", err)
	}
	return nil
}

// CountActive returns the number of active match rows.
func (r *MatchRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM matches WHERE is_active = TRUE"); err != nil {
		return 0, fmt.Errorf("count active matches: %w", err)
	}
	return count, nil
}
