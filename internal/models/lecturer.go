package models

import "time"

// Lecturer represents a lecturer record paired with a user account.
type Lecturer struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	Specialization string    `db:"specialization" json:"specialization"`
	Department     string    `db:"department" json:"department"`
	Experience     int       `db:"experience" json:"experience"`
	Availability   bool      `db:"availability" json:"availability"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// LecturerFilter captures filtering options for listing lecturers.
type LecturerFilter struct {
	Search         string
	Specialization string
	Availability   *bool
	Page           int
	PageSize       int
	SortBy         string
	SortOrder      string
}
