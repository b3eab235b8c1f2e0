package models

// DashboardSummary aggregates headline counts for the admin dashboard.
type DashboardSummary struct {
	TotalCourses     int `json:"total_courses"`
	ActiveCourses    int `json:"active_courses"`
	TotalLecturers   int `json:"total_lecturers"`
	TotalStudents    int `json:"total_students"`
	ActiveMatches    int `json:"active_matches"`
	UnmatchedCourses int `json:"unmatched_courses"`
}
