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

const registrationColumns = "id, student_id, course_id, lecturer_id, status, registered_at"

// RegistrationRepository manages persistence for course registrations.
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository constructs a RegistrationRepository.
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// FindByID fetches a registration by ID.
func (r *RegistrationRepository) FindByID(ctx context.Context, id string) (*models.Registration, error) {
	query := fmt.Sprintf("SELECT %s FROM registrations WHERE id = $1", registrationColumns)
	var reg models.Registration
	if err := r.db.GetContext(ctx, &reg, query, id); err != nil {
		return nil, err
	}
	return &reg, nil
}

// ListByStudent returns registrations with display fields for a student.
func (r *RegistrationRepository) ListByStudent(ctx context.Context, studentID string) ([]models.RegistrationDetail, error) {
	const query = `
SELECT rg.id, rg.student_id, rg.course_id, rg.lecturer_id, rg.status, rg.registered_at,
       s.name AS student_name, c.title AS course_title, c.code AS course_code, COALESCE(l.name, '') AS lecturer_name
FROM registrations rg
JOIN students s ON s.id = rg.student_id
JOIN courses c ON c.id = rg.course_id
LEFT JOIN lecturers l ON l.id = rg.lecturer_id
WHERE rg.student_id = $1
ORDER BY rg.registered_at DESC`
	var regs []models.RegistrationDetail
	if err := r.db.SelectContext(ctx, &regs, query, studentID); err != nil {
		return nil, fmt.Errorf("list registrations by student: %w", err)
	}
	return regs, nil
}

// ListByCourse returns registrations with display fields for a course.
func (r *RegistrationRepository) ListByCourse(ctx context.Context, courseID string) ([]models.RegistrationDetail, error) {
	const query = `
SELECT rg.id, rg.student_id, rg.course_id, rg.lecturer_id, rg.status, rg.registered_at,
       s.name AS student_name, c.title AS course_title, c.code AS course_code, COALESCE(l.name, '') AS lecturer_name
FROM registrations rg
JOIN students s ON s.id = rg.student_id
JOIN courses c ON c.id = rg.course_id
LEFT JOIN lecturers l ON l.id = rg.lecturer_id
WHERE rg.course_id = $1
ORDER BY rg.registered_at DESC`
	var regs []models.RegistrationDetail
	if err := r.db.SelectContext(ctx, &regs, query, courseID); err != nil {
		return nil, fmt.Errorf("list registrations by course: %w", err)
	}
	return regs, nil
}

// ExistsActive reports whether the student already holds a live
// registration for the course.
func (r *RegistrationRepository) ExistsActive(ctx context.Context, studentID, courseID string) (bool, error) {
	const query = `SELECT 1 FROM registrations WHERE student_id = $1 AND course_id = $2 AND status = 'registered' LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, studentID, courseID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check registration: %w", err)
	}
	return true, nil
}

// CountActiveByCourse counts live registrations for the course.
func (r *RegistrationRepository) CountActiveByCourse(ctx context.Context, courseID string) (int, error) {
	const query = `SELECT COUNT(*) FROM registrations WHERE course_id = $1 AND status = 'registered'`
	var count int
	if err := r.db.GetContext(ctx, &count, query, courseID); err != nil {
		return 0, fmt.Errorf("count registrations by course: %w", err)
	}
	return count, nil
}

// Create inserts a new registration row.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	if reg.ID == "" {
		reg.ID = uuid.NewString()
	}
	if reg.RegisteredAt.IsZero() {
		reg.RegisteredAt = time.Now().UTC()
	}
	const query = `INSERT INTO registrations (id, student_id, course_id, lecturer_id, status, registered_at)
		VALUES (:id, :student_id, :course_id, :lecturer_id, :status, :registered_at)`
	if _, err := r.db.NamedExecContext(ctx, query, reg); err != nil {
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

// UpdateStatus transitions a registration's lifecycle state.
func (r *RegistrationRepository) UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE registrations SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update registration status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check updated registration rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
