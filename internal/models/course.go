package models

import "time"

// Course represents a course offering that lecturers can be matched to.
type Course struct {
	ID              string    `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Code            string    `db:"code" json:"code"`
	Description     string    `db:"description" json:"description"`
	Specialization  string    `db:"specialization" json:"specialization"`
	Credits         int       `db:"credits" json:"credits"`
	Semester        string    `db:"semester" json:"semester"`
	MaxStudents     int       `db:"max_students" json:"max_students"`
	CurrentStudents int       `db:"current_students" json:"current_students"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// CourseFilter captures filtering options for listing courses.
type CourseFilter struct {
	Search         string
	Specialization string
	Semester       string
	IsActive       *bool
	Page           int
	PageSize       int
	SortBy         string
	SortOrder      string
}

// UnmatchedCourse is a course without an active match, annotated with
// lecturer availability for its specialization.
type UnmatchedCourse struct {
	Course
	HasAvailableLecturers   bool `json:"has_available_lecturers"`
	AvailableLecturersCount int  `json:"available_lecturers_count"`
}
