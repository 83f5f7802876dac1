package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sarveshmore2004/Institute-Automation-System-sub002/internal/models"
)

// EnrollmentRepository reads the authoritative enrollment store. Creation
// happens only inside the approval transaction; grade assignment belongs to
// the external grading process.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

const enrollmentColumns = `id, student_id, course_code, semester, course_type, credit_or_audit, credits, status, grade, approved_at, completed_at`

// ListByStudent returns every enrollment record for a student.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID string) ([]models.EnrollmentRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM enrollments WHERE student_id = $1 ORDER BY semester, course_code`, enrollmentColumns)
	var records []models.EnrollmentRecord
	if err := r.db.SelectContext(ctx, &records, query, studentID); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return records, nil
}

// ListCompletedByStudent returns the graded history that feeds transcript
// aggregation.
func (r *EnrollmentRepository) ListCompletedByStudent(ctx context.Context, studentID string) ([]models.EnrollmentRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM enrollments WHERE student_id = $1 AND status = $2 ORDER BY semester, course_code`, enrollmentColumns)
	var records []models.EnrollmentRecord
	if err := r.db.SelectContext(ctx, &records, query, studentID, models.EnrollmentStatusCompleted); err != nil {
		return nil, fmt.Errorf("list completed enrollments: %w", err)
	}
	return records, nil
}

// FindByKey returns the enrollment for the composite key, if present.
func (r *EnrollmentRepository) FindByKey(ctx context.Context, studentID, courseCode string, semester int) (*models.EnrollmentRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM enrollments WHERE student_id = $1 AND course_code = $2 AND semester = $3`, enrollmentColumns)
	var record models.EnrollmentRecord
	if err := r.db.GetContext(ctx, &record, query, studentID, courseCode, semester); err != nil {
		return nil, err
	}
	return &record, nil
}
