package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sarveshmore2004/Institute-Automation-System-sub002/internal/models"
	"github.com/sarveshmore2004/Institute-Automation-System-sub002/pkg/config"
	"github.com/sarveshmore2004/Institute-Automation-System-sub002/pkg/jobs"
)

const auditJobType = "audit_event"

type auditStore interface {
	Create(ctx context.Context, event *models.AuditEvent) error
}

// AuditService delivers workflow audit events through a background queue.
// Delivery is fire-and-forget: a full queue or a failed write is logged and
// dropped, never propagated back into the workflow.
type AuditService struct {
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewAuditService constructs the audit sink and its worker queue. Call
// Start before recording and Stop on shutdown.
func NewAuditService(store auditStore, cfg config.AuditConfig, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	handler := func(ctx context.Context, job jobs.Job) error {
		event, ok := job.Payload.(models.AuditEvent)
		if !ok {
			return fmt.Errorf("unexpected audit payload type %T", job.Payload)
		}
		return store.Create(ctx, &event)
	}
	queue := jobs.NewQueue("audit", handler, jobs.QueueConfig{
		Workers:    cfg.WorkerConcurrency,
		BufferSize: cfg.BufferSize,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return &AuditService{queue: queue, logger: logger}
}

// Start launches the queue workers.
func (s *AuditService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *AuditService) Stop() {
	s.queue.Stop()
}

// Record enqueues an audit event without blocking the caller. Safe on a nil
// receiver so a disabled sink can be injected directly.
func (s *AuditService) Record(event models.AuditEvent) {
	if s == nil {
		return
	}
	job := jobs.Job{ID: uuid.NewString(), Type: auditJobType, Payload: event}
	if err := s.queue.Offer(job); err != nil {
		s.logger.Warn("audit event dropped",
			zap.String("action", event.Action),
			zap.String("student_id", event.StudentID),
			zap.String("course_code", event.CourseCode),
			zap.Error(err))
	}
}
