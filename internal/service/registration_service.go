package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sarveshmore2004/Institute-Automation-System-sub002/internal/models"
	"github.com/sarveshmore2004/Institute-Automation-System-sub002/internal/repository"
	appErrors "github.com/sarveshmore2004/Institute-Automation-System-sub002/pkg/errors"
)

type registrationStore interface {
	Create(ctx context.Context, req *models.RegistrationRequest) error
	ListPending(ctx context.Context, filter models.RegistrationRequestFilter) ([]models.RegistrationRequestDetail, int, error)
	Delete(ctx context.Context, studentID, courseCode string) (*models.RegistrationRequest, error)
	Approve(ctx context.Context, params repository.ApproveParams) (*models.EnrollmentRecord, error)
}

type catalogReader interface {
	FindCourse(ctx context.Context, courseCode string) (*models.Course, error)
	ListFacultyCourses(ctx context.Context, facultyID string) ([]string, error)
}

// auditSink receives workflow decisions fire-and-forget. Implementations
// must never block the caller; a lost event never affects the workflow.
type auditSink interface {
	Record(event models.AuditEvent)
}

// SubmitRegistrationRequest describes a student submission.
type SubmitRegistrationRequest struct {
	StudentID     string            `json:"student_id" validate:"required"`
	CourseCode    string            `json:"course_code" validate:"required"`
	CourseType    models.CourseType `json:"course_type" validate:"required,oneof=CORE ELECTIVE AUDIT"`
	CreditOrAudit bool              `json:"credit_or_audit"`
	Semester      int               `json:"semester" validate:"required,min=1"`
}

// ApproveRegistrationRequest identifies the pending request to approve.
type ApproveRegistrationRequest struct {
	StudentID  string `json:"student_id" validate:"required"`
	CourseCode string `json:"course_code" validate:"required"`
	ActorID    string `json:"actor_id"`
}

// RejectRegistrationRequest identifies the pending request to reject.
type RejectRegistrationRequest struct {
	StudentID  string `json:"student_id" validate:"required"`
	CourseCode string `json:"course_code" validate:"required"`
	Reason     string `json:"reason" validate:"required"`
	ActorID    string `json:"actor_id"`
}

// BulkApproveRequest approves every listed student for one course.
type BulkApproveRequest struct {
	CourseCode string   `json:"course_code" validate:"required"`
	StudentIDs []string `json:"student_ids" validate:"required,min=1,dive,required"`
	ActorID    string   `json:"actor_id"`
}

// BulkApproveSkip records a per-student failure within a batch.
type BulkApproveSkip struct {
	StudentID string `json:"student_id"`
	Reason    string `json:"reason"`
}

// BulkApproveResult summarises partial outcomes of a batch approval.
type BulkApproveResult struct {
	Approved []models.EnrollmentRecord `json:"approved"`
	Skipped  []BulkApproveSkip         `json:"skipped,omitempty"`
}

// RegistrationService is the approval workflow engine. It owns the request
// store, moves approved requests into the enrollment store, and enforces
// the workflow invariants at its boundary.
type RegistrationService struct {
	requests     registrationStore
	catalog      catalogReader
	audit        auditSink
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
	bulkMaxItems int
}

// NewRegistrationService constructs RegistrationService.
func NewRegistrationService(requests registrationStore, catalog catalogReader, audit auditSink, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, bulkMaxItems int) *RegistrationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if bulkMaxItems <= 0 {
		bulkMaxItems = 200
	}
	return &RegistrationService{
		requests:     requests,
		catalog:      catalog,
		audit:        audit,
		metrics:      metrics,
		validator:    validate,
		logger:       logger,
		bulkMaxItems: bulkMaxItems,
	}
}

// Submit creates a pending registration request. The course must resolve in
// the catalog and its credit value must be well formed; malformed catalog
// credits are rejected here, at the workflow boundary, not coerced to zero
// later inside aggregation.
func (s *RegistrationService) Submit(ctx context.Context, req SubmitRegistrationRequest) (*models.RegistrationRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}
	course, err := s.catalog.FindCourse(ctx, req.CourseCode)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrUnknownCourse, fmt.Sprintf("course %s not found in catalog", req.CourseCode))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve course")
	}
	if _, err := parseCredits(course.Credits); err != nil {
		return nil, err
	}

	request := &models.RegistrationRequest{
		StudentID:     req.StudentID,
		CourseCode:    req.CourseCode,
		CourseType:    req.CourseType,
		CreditOrAudit: req.CreditOrAudit,
		Semester:      req.Semester,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrDuplicateRequest,
				fmt.Sprintf("a pending request for course %s already exists", req.CourseCode))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create registration request")
	}

	s.record(models.AuditEvent{
		Action:     models.AuditActionSubmitted,
		StudentID:  request.StudentID,
		CourseCode: request.CourseCode,
		Semester:   request.Semester,
	})
	return request, nil
}

// Approve converts the pending request for (studentID, courseCode) into an
// enrollment record in a single atomic unit. A concurrent second approval
// observes REQUEST_NOT_FOUND; that is the expected race outcome, not an
// anomaly, and callers surface it as "request already processed".
func (s *RegistrationService) Approve(ctx context.Context, req ApproveRegistrationRequest) (*models.EnrollmentRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid approval payload")
	}
	credits, err := s.resolveCredits(ctx, req.CourseCode)
	if err != nil {
		return nil, err
	}
	record, err := s.requests.Approve(ctx, repository.ApproveParams{
		StudentID:  req.StudentID,
		CourseCode: req.CourseCode,
		Credits:    credits,
	})
	if err != nil {
		if err == sql.ErrNoRows {
			if s.metrics != nil {
				s.metrics.RecordWorkflowDecision(decisionAlreadyProcessed)
			}
			return nil, appErrors.Clone(appErrors.ErrRequestNotFound, "request already processed")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to approve registration request")
	}

	if s.metrics != nil {
		s.metrics.RecordWorkflowDecision(decisionApproved)
	}
	s.record(models.AuditEvent{
		Action:     models.AuditActionApproved,
		StudentID:  record.StudentID,
		CourseCode: record.CourseCode,
		Semester:   record.Semester,
		ActorID:    optional(req.ActorID),
	})
	return record, nil
}

// Reject deletes the pending request without creating any enrollment. The
// reason travels only to the audit sink.
func (s *RegistrationService) Reject(ctx context.Context, req RejectRegistrationRequest) (*models.RegistrationRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid rejection payload")
	}
	request, err := s.requests.Delete(ctx, req.StudentID, req.CourseCode)
	if err != nil {
		if err == sql.ErrNoRows {
			if s.metrics != nil {
				s.metrics.RecordWorkflowDecision(decisionAlreadyProcessed)
			}
			return nil, appErrors.Clone(appErrors.ErrRequestNotFound, "request already processed")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reject registration request")
	}

	if s.metrics != nil {
		s.metrics.RecordWorkflowDecision(decisionRejected)
	}
	s.record(models.AuditEvent{
		Action:     models.AuditActionRejected,
		StudentID:  request.StudentID,
		CourseCode: request.CourseCode,
		Semester:   request.Semester,
		ActorID:    optional(req.ActorID),
		Reason:     optional(req.Reason),
	})
	return request, nil
}

// BulkApprove applies Approve to each student independently. Per-item
// failures land in Skipped and never abort the rest of the batch; there is
// no atomicity across students.
func (s *RegistrationService) BulkApprove(ctx context.Context, req BulkApproveRequest) (*BulkApproveResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk approval payload")
	}
	if len(req.StudentIDs) > s.bulkMaxItems {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("batch exceeds %d students", s.bulkMaxItems))
	}
	credits, err := s.resolveCredits(ctx, req.CourseCode)
	if err != nil {
		return nil, err
	}

	result := &BulkApproveResult{Approved: []models.EnrollmentRecord{}}
	for _, studentID := range req.StudentIDs {
		record, err := s.requests.Approve(ctx, repository.ApproveParams{
			StudentID:  studentID,
			CourseCode: req.CourseCode,
			Credits:    credits,
		})
		if err != nil {
			reason := "internal error"
			if err == sql.ErrNoRows {
				reason = "no pending request"
			} else {
				s.logger.Warn("bulk approval item failed",
					zap.String("student_id", studentID),
					zap.String("course_code", req.CourseCode),
					zap.Error(err))
			}
			result.Skipped = append(result.Skipped, BulkApproveSkip{StudentID: studentID, Reason: reason})
			continue
		}
		if s.metrics != nil {
			s.metrics.RecordWorkflowDecision(decisionApproved)
		}
		s.record(models.AuditEvent{
			Action:     models.AuditActionApproved,
			StudentID:  record.StudentID,
			CourseCode: record.CourseCode,
			Semester:   record.Semester,
			ActorID:    optional(req.ActorID),
		})
		result.Approved = append(result.Approved, *record)
	}
	return result, nil
}

// ListPendingForStudent returns a student's pending requests.
func (s *RegistrationService) ListPendingForStudent(ctx context.Context, studentID string, page, pageSize int) ([]models.RegistrationRequestDetail, *models.Pagination, error) {
	if studentID == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "student id required")
	}
	filter := models.RegistrationRequestFilter{StudentID: studentID, Page: page, PageSize: pageSize}
	return s.listPending(ctx, filter)
}

// ListPendingForFaculty returns pending requests for every course assigned
// to the faculty member via the catalog.
func (s *RegistrationService) ListPendingForFaculty(ctx context.Context, facultyID string, page, pageSize int) ([]models.RegistrationRequestDetail, *models.Pagination, error) {
	if facultyID == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "faculty id required")
	}
	courses, err := s.catalog.ListFacultyCourses(ctx, facultyID)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve faculty courses")
	}
	if len(courses) == 0 {
		return []models.RegistrationRequestDetail{}, &models.Pagination{Page: 1, PageSize: defaultPageSize, TotalCount: 0}, nil
	}
	filter := models.RegistrationRequestFilter{CourseCodes: courses, Page: page, PageSize: pageSize}
	return s.listPending(ctx, filter)
}

const defaultPageSize = 20

const (
	decisionApproved         = "approved"
	decisionRejected         = "rejected"
	decisionAlreadyProcessed = "already_processed"
)

func (s *RegistrationService) listPending(ctx context.Context, filter models.RegistrationRequestFilter) ([]models.RegistrationRequestDetail, *models.Pagination, error) {
	requests, total, err := s.requests.ListPending(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pending requests")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	return requests, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

func (s *RegistrationService) resolveCredits(ctx context.Context, courseCode string) (int, error) {
	course, err := s.catalog.FindCourse(ctx, courseCode)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, appErrors.Clone(appErrors.ErrUnknownCourse, fmt.Sprintf("course %s not found in catalog", courseCode))
		}
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve course")
	}
	return parseCredits(course.Credits)
}

func (s *RegistrationService) record(event models.AuditEvent) {
	if s.audit == nil {
		return
	}
	s.audit.Record(event)
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
