package models

import "time"

// EnrollmentStatus represents the lifecycle of an approved course record.
type EnrollmentStatus string

// Possible enrollment statuses. An enrollment is created as APPROVED by the
// workflow and moved to COMPLETED by the external grading process once a
// grade is assigned.
const (
	EnrollmentStatusApproved  EnrollmentStatus = "APPROVED"
	EnrollmentStatusCompleted EnrollmentStatus = "COMPLETED"
)

// EnrollmentRecord is the authoritative record of a student's participation
// in a course. Keyed by (student_id, course_code, semester); created only by
// approval and never deleted in normal operation.
type EnrollmentRecord struct {
	ID            string           `db:"id" json:"id"`
	StudentID     string           `db:"student_id" json:"student_id"`
	CourseCode    string           `db:"course_code" json:"course_code"`
	Semester      int              `db:"semester" json:"semester"`
	CourseType    CourseType       `db:"course_type" json:"course_type"`
	CreditOrAudit bool             `db:"credit_or_audit" json:"credit_or_audit"`
	Credits       int              `db:"credits" json:"credits"`
	Status        EnrollmentStatus `db:"status" json:"status"`
	Grade         *string          `db:"grade" json:"grade,omitempty"`
	ApprovedAt    time.Time        `db:"approved_at" json:"approved_at"`
	CompletedAt   *time.Time       `db:"completed_at" json:"completed_at,omitempty"`
}

// CompletedCourse is the aggregation engine's input shape. Credits are kept
// in their source representation; the engine coerces them and treats a
// non-numeric value as a fatal input error rather than silently scoring it
// as zero.
type CompletedCourse struct {
	Semester int    `json:"semester"`
	Credits  string `json:"credits"`
	Grade    string `json:"grade"`
}

// SemesterSummary is one row of the derived SPI/CPI report. It is computed
// on demand and never persisted.
type SemesterSummary struct {
	Semester int     `json:"semester"`
	SPI      float64 `json:"spi"`
	CPI      float64 `json:"cpi"`
}
