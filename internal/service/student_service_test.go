package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-match-api/internal/models"
	appErrors "github.com/noah-isme/course-match-api/pkg/errors"
)

type stubStudentStore struct {
	students []models.Student
	nextID   int
}

func (r *stubStudentStore) List(_ context.Context, _ models.StudentFilter) ([]models.Student, int, error) {
	out := make([]models.Student, len(r.students))
	copy(out, r.students)
	return out, len(r.students), nil
}

func (r *stubStudentStore) FindByID(_ context.Context, id string) (*models.Student, error) {
	for _, s := range r.students {
		if s.ID == id {
			out := s
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *stubStudentStore) FindByUserID(_ context.Context, userID string) (*models.Student, error) {
	for _, s := range r.students {
		if s.UserID == userID {
			out := s
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *stubStudentStore) ExistsByEmail(_ context.Context, email string, excludeID string) (bool, error) {
	for _, s := range r.students {
		if s.Email == email && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubStudentStore) ExistsByStudentNumber(_ context.Context, number string, excludeID string) (bool, error) {
	for _, s := range r.students {
		if s.StudentNumber == number && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubStudentStore) Create(_ context.Context, student *models.Student) error {
	if student.ID == "" {
		r.nextID++
		student.ID = fmt.Sprintf("s-%d", r.nextID)
	}
	r.students = append(r.students, *student)
	return nil
}

func (r *stubStudentStore) Update(_ context.Context, student *models.Student) error {
	for i := range r.students {
		if r.students[i].ID == student.ID {
			r.students[i] = *student
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *stubStudentStore) Delete(_ context.Context, id string) error {
	for i := range r.students {
		if r.students[i].ID == id {
			r.students = append(r.students[:i], r.students[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func newStudentService(store *stubStudentStore, users *stubAccountRepo) *StudentService {
	return NewStudentService(store, users, nil, nil)
}

func TestStudentCreatePairsAccount(t *testing.T) {
	store := &stubStudentStore{}
	users := newStubAccountRepo()
	svc := newStudentService(store, users)

	student, err := svc.Create(context.Background(), CreateStudentRequest{
		Name: "Grace Hopper", Email: "grace@example.edu", Password: "secret123",
		StudentNumber: "2026-001", Department: "Computer Science", Year: 1,
	})
	require.NoError(t, err)
	require.NotEmpty(t, student.UserID)

	account, err := users.FindByID(context.Background(), student.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, account.Role)
	assert.Equal(t, "grace@example.edu", account.Email)
	assert.NotEqual(t, "secret123", account.PasswordHash)
}

func TestStudentCreateRejectsDuplicateNumber(t *testing.T) {
	store := &stubStudentStore{students: []models.Student{
		{ID: "s-1", StudentNumber: "2026-001", Email: "first@example.edu"},
	}}
	svc := newStudentService(store, newStubAccountRepo())

	_, err := svc.Create(context.Background(), CreateStudentRequest{
		Name: "Grace Hopper", Email: "grace@example.edu", Password: "secret123",
		StudentNumber: "2026-001", Year: 1,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestStudentCreateRejectsDuplicateEmail(t *testing.T) {
	users := newStubAccountRepo()
	_ = users.Create(context.Background(), &models.User{ID: "u-1", Email: "grace@example.edu"})
	svc := newStudentService(&stubStudentStore{}, users)

	_, err := svc.Create(context.Background(), CreateStudentRequest{
		Name: "Grace Hopper", Email: "grace@example.edu", Password: "secret123",
		StudentNumber: "2026-002", Year: 1,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestStudentUpdateMirrorsAccount(t *testing.T) {
	users := newStubAccountRepo()
	_ = users.Create(context.Background(), &models.User{ID: "u-1", Email: "old@example.edu", FullName: "Old Name"})
	store := &stubStudentStore{students: []models.Student{
		{ID: "s-1", UserID: "u-1", Name: "Old Name", Email: "old@example.edu", StudentNumber: "2026-001", Year: 2},
	}}
	svc := newStudentService(store, users)

	name := "New Name"
	updated, err := svc.Update(context.Background(), "s-1", UpdateStudentRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)

	account, err := users.FindByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "New Name", account.FullName)
}

func TestStudentGetByUserIDNotFound(t *testing.T) {
	svc := newStudentService(&stubStudentStore{}, newStubAccountRepo())

	_, err := svc.GetByUserID(context.Background(), "u-missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestStudentDeleteCascadesAccount(t *testing.T) {
	users := newStubAccountRepo()
	_ = users.Create(context.Background(), &models.User{ID: "u-1", Email: "grace@example.edu"})
	store := &stubStudentStore{students: []models.Student{
		{ID: "s-1", UserID: "u-1", Email: "grace@example.edu", StudentNumber: "2026-001", Year: 1},
	}}
	svc := newStudentService(store, users)

	require.NoError(t, svc.Delete(context.Background(), "s-1"))
	assert.Empty(t, store.students)
	_, err := users.FindByID(context.Background(), "u-1")
	assert.Error(t, err)
}
