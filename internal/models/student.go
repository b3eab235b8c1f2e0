package models

import "time"

// Student represents a student record paired with a user account.
type Student struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"user_id"`
	Name          string    `db:"name" json:"name"`
	Email         string    `db:"email" json:"email"`
	StudentNumber string    `db:"student_number" json:"student_number"`
	Department    string    `db:"department" json:"department"`
	Year          int       `db:"year" json:"year"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// StudentFilter captures filtering options for listing students.
type StudentFilter struct {
	Search     string
	Department string
	Year       *int
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
