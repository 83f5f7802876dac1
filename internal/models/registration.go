package models

import "time"

// CourseType classifies how a course counts toward a student's program.
type CourseType string

// Possible course types.
const (
	CourseTypeCore     CourseType = "CORE"
	CourseTypeElective CourseType = "ELECTIVE"
	CourseTypeAudit    CourseType = "AUDIT"
)

// Valid reports whether the course type is part of the fixed vocabulary.
func (t CourseType) Valid() bool {
	switch t {
	case CourseTypeCore, CourseTypeElective, CourseTypeAudit:
		return true
	}
	return false
}

// RegistrationRequest is a student's pending course registration. The pair
// (student_id, course_code) is the primary key: a request that is no longer
// pending does not exist as a row, so at most one pending request per pair
// can ever be present.
type RegistrationRequest struct {
	ID            string     `db:"id" json:"id"`
	StudentID     string     `db:"student_id" json:"student_id"`
	CourseCode    string     `db:"course_code" json:"course_code"`
	CourseType    CourseType `db:"course_type" json:"course_type"`
	CreditOrAudit bool       `db:"credit_or_audit" json:"credit_or_audit"`
	Semester      int        `db:"semester" json:"semester"`
	SubmittedAt   time.Time  `db:"submitted_at" json:"submitted_at"`
}

// RegistrationRequestDetail enriches a request with catalog context for
// faculty review screens.
type RegistrationRequestDetail struct {
	RegistrationRequest
	CourseName string `db:"course_name" json:"course_name"`
	Credits    string `db:"credits" json:"credits"`
}

// RegistrationRequestFilter provides filters for listing pending requests.
type RegistrationRequestFilter struct {
	StudentID   string
	CourseCodes []string
	Page        int
	PageSize    int
}
