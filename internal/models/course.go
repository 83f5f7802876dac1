package models

// Course is a catalog entry. Credits are stored as text in the reference
// data (legacy import); the workflow validates them at its boundary before
// they ever reach an enrollment record.
type Course struct {
	Code       string `db:"code" json:"code"`
	Name       string `db:"name" json:"name"`
	Department string `db:"department" json:"department"`
	Credits    string `db:"credits" json:"credits"`
}

// FacultyCourseAssignment links a faculty member to a course they teach and
// therefore review registration requests for.
type FacultyCourseAssignment struct {
	FacultyID  string `db:"faculty_id" json:"faculty_id"`
	CourseCode string `db:"course_code" json:"course_code"`
}
