package models

import "time"

// Audit actions emitted by the registration workflow.
const (
	AuditActionSubmitted = "REGISTRATION_SUBMITTED"
	AuditActionApproved  = "REGISTRATION_APPROVED"
	AuditActionRejected  = "REGISTRATION_REJECTED"
)

// AuditEvent records a workflow decision for the administrative trail.
// Events are delivered fire-and-forget: a failure to record one never rolls
// back the workflow transaction it describes.
type AuditEvent struct {
	ID         string    `db:"id" json:"id"`
	Action     string    `db:"action" json:"action"`
	StudentID  string    `db:"student_id" json:"student_id"`
	CourseCode string    `db:"course_code" json:"course_code"`
	Semester   int       `db:"semester" json:"semester"`
	ActorID    *string   `db:"actor_id" json:"actor_id,omitempty"`
	Reason     *string   `db:"reason" json:"reason,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
