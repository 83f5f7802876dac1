package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sarveshmore2004/Institute-Automation-System-sub002/internal/models"
)

// RegistrationRepository owns the registration request store and the
// approval move into the enrollment store. No other component writes to
// registration_requests.
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository constructs the repository.
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation. The (student_id, course_code) primary key enforces the
// single-pending-request invariant; racing submits lose here.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// Create inserts a new pending request. A unique-constraint failure means a
// pending request already exists for the (student, course) pair.
func (r *RegistrationRepository) Create(ctx context.Context, req *models.RegistrationRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.SubmittedAt.IsZero() {
		req.SubmittedAt = time.Now().UTC()
	}
	const query = `INSERT INTO registration_requests (id, student_id, course_code, course_type, credit_or_audit, semester, submitted_at)
        VALUES (:id, :student_id, :course_code, :course_type, :credit_or_audit, :semester, :submitted_at)`
	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("create registration request: %w", err)
	}
	return nil
}

// FindPending returns the pending request for a (student, course) pair.
func (r *RegistrationRepository) FindPending(ctx context.Context, studentID, courseCode string) (*models.RegistrationRequest, error) {
	const query = `SELECT id, student_id, course_code, course_type, credit_or_audit, semester, submitted_at
        FROM registration_requests WHERE student_id = $1 AND course_code = $2`
	var req models.RegistrationRequest
	if err := r.db.GetContext(ctx, &req, query, studentID, courseCode); err != nil {
		return nil, err
	}
	return &req, nil
}

// ListPending returns pending requests matching the filter, newest first.
func (r *RegistrationRepository) ListPending(ctx context.Context, filter models.RegistrationRequestFilter) ([]models.RegistrationRequestDetail, int, error) {
	base := `FROM registration_requests rr
LEFT JOIN courses c ON c.code = rr.course_code`
	var conditions []string
	var args []interface{}

	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("rr.student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if len(filter.CourseCodes) > 0 {
		placeholders := make([]string, len(filter.CourseCodes))
		for i, code := range filter.CourseCodes {
			placeholders[i] = fmt.Sprintf("$%d", len(args)+1)
			args = append(args, code)
		}
		conditions = append(conditions, fmt.Sprintf("rr.course_code IN (%s)", strings.Join(placeholders, ",")))
	}

	clause := ""
	if len(conditions) > 0 {
		clause = " WHERE " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT rr.id, rr.student_id, rr.course_code, rr.course_type, rr.credit_or_audit, rr.semester, rr.submitted_at,
        COALESCE(c.name, '') AS course_name, COALESCE(c.credits, '') AS credits
        %s ORDER BY rr.submitted_at DESC LIMIT %d OFFSET %d`, base+clause, size, offset)

	var requests []models.RegistrationRequestDetail
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list pending requests: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base+clause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count pending requests: %w", err)
	}
	return requests, total, nil
}

// Delete removes the pending request and returns it. sql.ErrNoRows means
// the request was already processed by a concurrent decision.
func (r *RegistrationRepository) Delete(ctx context.Context, studentID, courseCode string) (*models.RegistrationRequest, error) {
	const query = `DELETE FROM registration_requests WHERE student_id = $1 AND course_code = $2
        RETURNING id, student_id, course_code, course_type, credit_or_audit, semester, submitted_at`
	var req models.RegistrationRequest
	if err := r.db.GetContext(ctx, &req, query, studentID, courseCode); err != nil {
		return nil, err
	}
	return &req, nil
}

// ApproveParams carries the catalog-derived values joined into the
// enrollment at approval time.
type ApproveParams struct {
	StudentID  string
	CourseCode string
	Credits    int
}

// Approve converts the pending request into an enrollment record as a
// single transaction. The DELETE ... RETURNING is the atomic claim on the
// request row: of two racing approvals exactly one sees the row, the other
// gets sql.ErrNoRows and the store is left untouched. The enrollment upsert
// is idempotent on (student_id, course_code, semester) so a committed
// approval replayed after a retry cannot duplicate the record.
func (r *RegistrationRepository) Approve(ctx context.Context, params ApproveParams) (record *models.EnrollmentRecord, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin approval transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const claimQuery = `DELETE FROM registration_requests WHERE student_id = $1 AND course_code = $2
        RETURNING id, student_id, course_code, course_type, credit_or_audit, semester, submitted_at`
	var req models.RegistrationRequest
	if err = tx.GetContext(ctx, &req, claimQuery, params.StudentID, params.CourseCode); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("claim registration request: %w", err)
	}

	now := time.Now().UTC()
	const upsertQuery = `INSERT INTO enrollments (id, student_id, course_code, semester, course_type, credit_or_audit, credits, status, approved_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (student_id, course_code, semester)
        DO UPDATE SET course_type = EXCLUDED.course_type,
                      credit_or_audit = EXCLUDED.credit_or_audit,
                      credits = EXCLUDED.credits,
                      approved_at = EXCLUDED.approved_at
        RETURNING id, student_id, course_code, semester, course_type, credit_or_audit, credits, status, grade, approved_at, completed_at`
	var enrollment models.EnrollmentRecord
	if err = tx.GetContext(ctx, &enrollment, upsertQuery,
		uuid.NewString(), req.StudentID, req.CourseCode, req.Semester,
		req.CourseType, req.CreditOrAudit, params.Credits, models.EnrollmentStatusApproved, now); err != nil {
		return nil, fmt.Errorf("upsert enrollment: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit approval: %w", err)
	}
	return &enrollment, nil
}
