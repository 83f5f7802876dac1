package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sarveshmore2004/Institute-Automation-System-sub002/internal/models"
)

// AuditRepository persists workflow audit events.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository constructs the repository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create inserts an audit event row.
func (r *AuditRepository) Create(ctx context.Context, event *models.AuditEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO audit_events (id, action, student_id, course_code, semester, actor_id, reason, created_at)
        VALUES (:id, :action, :student_id, :course_code, :semester, :actor_id, :reason, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create audit event: %w", err)
	}
	return nil
}

// ListByStudent returns the audit trail for a student, newest first.
func (r *AuditRepository) ListByStudent(ctx context.Context, studentID string, limit int) ([]models.AuditEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	const query = `SELECT id, action, student_id, course_code, semester, actor_id, reason, created_at
        FROM audit_events WHERE student_id = $1 ORDER BY created_at DESC LIMIT $2`
	var events []models.AuditEvent
	if err := r.db.SelectContext(ctx, &events, query, studentID, limit); err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return events, nil
}
