package models

import "time"

// RegistrationStatus enumerates the registration lifecycle.
type RegistrationStatus string

const (
	RegistrationRegistered RegistrationStatus = "registered"
	RegistrationDropped    RegistrationStatus = "dropped"
	RegistrationCompleted  RegistrationStatus = "completed"
)

// Registration links a student to a course and the lecturer teaching it.
type Registration struct {
	ID           string             `db:"id" json:"id"`
	StudentID    string             `db:"student_id" json:"student_id"`
	CourseID     string             `db:"course_id" json:"course_id"`
	LecturerID   string             `db:"lecturer_id" json:"lecturer_id"`
	Status       RegistrationStatus `db:"status" json:"status"`
	RegisteredAt time.Time          `db:"registered_at" json:"registered_at"`
}

// RegistrationDetail joins registration rows with display fields.
type RegistrationDetail struct {
	Registration
	StudentName  string `db:"student_name" json:"student_name"`
	CourseTitle  string `db:"course_title" json:"course_title"`
	CourseCode   string `db:"course_code" json:"course_code"`
	LecturerName string `db:"lecturer_name" json:"lecturer_name"`
}
