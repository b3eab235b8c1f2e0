package models

import "time"

// Match links a course to a lecturer. Several rows may exist for a course;
// the authoritative one is chosen at read time by (is_active desc,
// updated_at desc).
type Match struct {
	ID            string    `db:"id" json:"id"`
	CourseID      string    `db:"course_id" json:"course_id"`
	LecturerID    string    `db:"lecturer_id" json:"lecturer_id"`
	IsAutoMatched bool      `db:"is_auto_matched" json:"is_auto_matched"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// MatchDetail is a match joined with course and lecturer display fields.
type MatchDetail struct {
	Match
	CourseTitle    string `db:"course_title" json:"course_title"`
	CourseCode     string `db:"course_code" json:"course_code"`
	LecturerName   string `db:"lecturer_name" json:"lecturer_name"`
	Specialization string `db:"specialization" json:"specialization"`
}

// NewMatch records a match created by an auto-match run.
type NewMatch struct {
	MatchID    string `json:"match_id"`
	CourseID   string `json:"course_id"`
	LecturerID string `json:"lecturer_id"`
}

// RematchedCourse records a course whose match was repointed or reactivated.
type RematchedCourse struct {
	MatchID       string `json:"match_id"`
	CourseID      string `json:"course_id"`
	OldLecturerID string `json:"old_lecturer_id,omitempty"`
	NewLecturerID string `json:"new_lecturer_id"`
	Reactivated   bool   `json:"reactivated,omitempty"`
}

// UnresolvedCourse records a course left without an active match because no
// lecturer of its specialization is available.
type UnresolvedCourse struct {
	CourseID       string `json:"course_id"`
	Specialization string `json:"specialization"`
}

// AutoMatchResult summarises a full auto-match run.
type AutoMatchResult struct {
	NewMatches         []NewMatch         `json:"new_matches"`
	RematchedCourses   []RematchedCourse  `json:"rematched_courses"`
	DeactivatedMatches []UnresolvedCourse `json:"deactivated_matches"`
	DuplicatesRemoved  int                `json:"duplicates_removed"`
}

// RematchResult summarises a standalone availability-reconciliation run.
type RematchResult struct {
	RematchedCourses []RematchedCourse  `json:"rematched_courses"`
	UnmatchedCourses []UnresolvedCourse `json:"unmatched_courses"`
}

// CleanupResult reports how many duplicate match rows were removed.
type CleanupResult struct {
	DuplicatesRemoved int `json:"duplicates_removed"`
}
