package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarveshmore2004/Institute-Automation-System-sub002/internal/models"
	"github.com/sarveshmore2004/Institute-Automation-System-sub002/internal/repository"
	appErrors "github.com/sarveshmore2004/Institute-Automation-System-sub002/pkg/errors"
)

type mockRegistrationStore struct {
	mu          sync.Mutex
	pending     map[string]models.RegistrationRequest
	enrollments map[string]models.EnrollmentRecord
}

func newMockRegistrationStore() *mockRegistrationStore {
	return &mockRegistrationStore{
		pending:     make(map[string]models.RegistrationRequest),
		enrollments: make(map[string]models.EnrollmentRecord),
	}
}

func requestKey(studentID, courseCode string) string {
	return studentID + "/" + courseCode
}

func (m *mockRegistrationStore) Create(ctx context.Context, req *models.RegistrationRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := requestKey(req.StudentID, req.CourseCode)
	if _, ok := m.pending[key]; ok {
		return &pq.Error{Code: "23505"}
	}
	m.pending[key] = *req
	return nil
}

func (m *mockRegistrationStore) ListPending(ctx context.Context, filter models.RegistrationRequestFilter) ([]models.RegistrationRequestDetail, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var details []models.RegistrationRequestDetail
	for _, req := range m.pending {
		if filter.StudentID != "" && req.StudentID != filter.StudentID {
			continue
		}
		if len(filter.CourseCodes) > 0 && !contains(filter.CourseCodes, req.CourseCode) {
			continue
		}
		details = append(details, models.RegistrationRequestDetail{RegistrationRequest: req})
	}
	return details, len(details), nil
}

func (m *mockRegistrationStore) Delete(ctx context.Context, studentID, courseCode string) (*models.RegistrationRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := requestKey(studentID, courseCode)
	req, ok := m.pending[key]
	if !ok {
		return nil, sql.ErrNoRows
	}
	delete(m.pending, key)
	return &req, nil
}

func (m *mockRegistrationStore) Approve(ctx context.Context, params repository.ApproveParams) (*models.EnrollmentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := requestKey(params.StudentID, params.CourseCode)
	req, ok := m.pending[key]
	if !ok {
		return nil, sql.ErrNoRows
	}
	delete(m.pending, key)
	record := models.EnrollmentRecord{
		ID:            "enr-" + key,
		StudentID:     req.StudentID,
		CourseCode:    req.CourseCode,
		Semester:      req.Semester,
		CourseType:    req.CourseType,
		CreditOrAudit: req.CreditOrAudit,
		Credits:       params.Credits,
		Status:        models.EnrollmentStatusApproved,
	}
	m.enrollments[key] = record
	return &record, nil
}

type mockCatalog struct {
	courses map[string]models.Course
	faculty map[string][]string
}

func (m *mockCatalog) FindCourse(ctx context.Context, courseCode string) (*models.Course, error) {
	course, ok := m.courses[courseCode]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &course, nil
}

func (m *mockCatalog) ListFacultyCourses(ctx context.Context, facultyID string) ([]string, error) {
	return m.faculty[facultyID], nil
}

type mockAuditSink struct {
	mu     sync.Mutex
	events []models.AuditEvent
}

func (m *mockAuditSink) Record(event models.AuditEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *mockAuditSink) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	actions := make([]string, 0, len(m.events))
	for _, event := range m.events {
		actions = append(actions, event.Action)
	}
	return actions
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

func newTestRegistrationService(store *mockRegistrationStore, catalog *mockCatalog, audit *mockAuditSink) *RegistrationService {
	var sink auditSink
	if audit != nil {
		sink = audit
	}
	return NewRegistrationService(store, catalog, sink, nil, nil, nil, 0)
}

func defaultCatalog() *mockCatalog {
	return &mockCatalog{
		courses: map[string]models.Course{
			"CS101": {Code: "CS101", Name: "Intro to Programming", Credits: "4"},
			"MA202": {Code: "MA202", Name: "Linear Algebra", Credits: "3"},
		},
		faculty: map[string][]string{
			"fac-1": {"CS101"},
		},
	}
}

func submitPayload(studentID, courseCode string) SubmitRegistrationRequest {
	return SubmitRegistrationRequest{
		StudentID:     studentID,
		CourseCode:    courseCode,
		CourseType:    models.CourseTypeCore,
		CreditOrAudit: true,
		Semester:      3,
	}
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	store := newMockRegistrationStore()
	audit := &mockAuditSink{}
	svc := newTestRegistrationService(store, defaultCatalog(), audit)

	request, err := svc.Submit(context.Background(), submitPayload("stu-1", "CS101"))
	require.NoError(t, err)
	assert.Equal(t, "stu-1", request.StudentID)
	assert.Equal(t, "CS101", request.CourseCode)
	assert.Equal(t, 3, request.Semester)
	assert.Len(t, store.pending, 1)
	assert.Equal(t, []string{models.AuditActionSubmitted}, audit.actions())
}

func TestSubmitUnknownCourse(t *testing.T) {
	svc := newTestRegistrationService(newMockRegistrationStore(), defaultCatalog(), nil)

	_, err := svc.Submit(context.Background(), submitPayload("stu-1", "XX999"))
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnknownCourse))
}

func TestSubmitDuplicatePending(t *testing.T) {
	store := newMockRegistrationStore()
	svc := newTestRegistrationService(store, defaultCatalog(), nil)

	_, err := svc.Submit(context.Background(), submitPayload("stu-1", "CS101"))
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), submitPayload("stu-1", "CS101"))
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrDuplicateRequest))
	assert.Len(t, store.pending, 1)
}

func TestSubmitMalformedCatalogCredits(t *testing.T) {
	catalog := defaultCatalog()
	catalog.courses["PH303"] = models.Course{Code: "PH303", Name: "Optics", Credits: "three"}
	svc := newTestRegistrationService(newMockRegistrationStore(), catalog, nil)

	_, err := svc.Submit(context.Background(), submitPayload("stu-1", "PH303"))
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCreditValue))
}

func TestApproveMovesRequestIntoEnrollment(t *testing.T) {
	store := newMockRegistrationStore()
	audit := &mockAuditSink{}
	svc := newTestRegistrationService(store, defaultCatalog(), audit)

	_, err := svc.Submit(context.Background(), submitPayload("stu-1", "CS101"))
	require.NoError(t, err)

	record, err := svc.Approve(context.Background(), ApproveRegistrationRequest{StudentID: "stu-1", CourseCode: "CS101", ActorID: "fac-1"})
	require.NoError(t, err)
	assert.Equal(t, 3, record.Semester)
	assert.Equal(t, models.CourseTypeCore, record.CourseType)
	assert.Equal(t, 4, record.Credits)
	assert.Equal(t, models.EnrollmentStatusApproved, record.Status)

	// The move leaves no pending request behind.
	assert.Empty(t, store.pending)
	assert.Len(t, store.enrollments, 1)
	assert.Equal(t, []string{models.AuditActionSubmitted, models.AuditActionApproved}, audit.actions())
}

func TestApproveAlreadyProcessed(t *testing.T) {
	store := newMockRegistrationStore()
	svc := newTestRegistrationService(store, defaultCatalog(), nil)

	_, err := svc.Approve(context.Background(), ApproveRegistrationRequest{StudentID: "stu-1", CourseCode: "CS101"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrRequestNotFound))
	assert.Empty(t, store.enrollments)
}

func TestConcurrentApproveExactlyOneWins(t *testing.T) {
	store := newMockRegistrationStore()
	svc := newTestRegistrationService(store, defaultCatalog(), nil)

	_, err := svc.Submit(context.Background(), submitPayload("stu-1", "CS101"))
	require.NoError(t, err)

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Approve(context.Background(), ApproveRegistrationRequest{StudentID: "stu-1", CourseCode: "CS101"})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, notFound int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case appErrors.Is(err, appErrors.ErrRequestNotFound):
			notFound++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, notFound)
	assert.Len(t, store.enrollments, 1)
}

func TestRejectNeverCreatesEnrollment(t *testing.T) {
	store := newMockRegistrationStore()
	audit := &mockAuditSink{}
	svc := newTestRegistrationService(store, defaultCatalog(), audit)

	_, err := svc.Submit(context.Background(), submitPayload("stu-1", "CS101"))
	require.NoError(t, err)

	request, err := svc.Reject(context.Background(), RejectRegistrationRequest{StudentID: "stu-1", CourseCode: "CS101", Reason: "prerequisite missing", ActorID: "fac-1"})
	require.NoError(t, err)
	assert.Equal(t, "CS101", request.CourseCode)
	assert.Empty(t, store.pending)
	assert.Empty(t, store.enrollments)

	last := audit.events[len(audit.events)-1]
	assert.Equal(t, models.AuditActionRejected, last.Action)
	require.NotNil(t, last.Reason)
	assert.Equal(t, "prerequisite missing", *last.Reason)

	_, err = svc.Reject(context.Background(), RejectRegistrationRequest{StudentID: "stu-1", CourseCode: "CS101", Reason: "again"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrRequestNotFound))
}

func TestBulkApprovePartialFailure(t *testing.T) {
	store := newMockRegistrationStore()
	svc := newTestRegistrationService(store, defaultCatalog(), nil)

	_, err := svc.Submit(context.Background(), submitPayload("stu-1", "CS101"))
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), submitPayload("stu-2", "CS101"))
	require.NoError(t, err)

	result, err := svc.BulkApprove(context.Background(), BulkApproveRequest{
		CourseCode: "CS101",
		StudentIDs: []string{"stu-1", "stu-3", "stu-2"},
	})
	require.NoError(t, err)
	assert.Len(t, result.Approved, 2)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "stu-3", result.Skipped[0].StudentID)
	assert.Equal(t, "no pending request", result.Skipped[0].Reason)
}

func TestBulkApproveUnknownCourse(t *testing.T) {
	svc := newTestRegistrationService(newMockRegistrationStore(), defaultCatalog(), nil)

	_, err := svc.BulkApprove(context.Background(), BulkApproveRequest{CourseCode: "XX999", StudentIDs: []string{"stu-1"}})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnknownCourse))
}

func TestBulkApproveBatchLimit(t *testing.T) {
	svc := NewRegistrationService(newMockRegistrationStore(), defaultCatalog(), nil, nil, nil, nil, 2)

	_, err := svc.BulkApprove(context.Background(), BulkApproveRequest{
		CourseCode: "CS101",
		StudentIDs: []string{"a", "b", "c"},
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestListPendingForFaculty(t *testing.T) {
	store := newMockRegistrationStore()
	svc := newTestRegistrationService(store, defaultCatalog(), nil)

	_, err := svc.Submit(context.Background(), submitPayload("stu-1", "CS101"))
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), submitPayload("stu-1", "MA202"))
	require.NoError(t, err)

	requests, pagination, err := svc.ListPendingForFaculty(context.Background(), "fac-1", 1, 20)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "CS101", requests[0].CourseCode)
	assert.Equal(t, 1, pagination.TotalCount)

	// Faculty with no assigned courses sees nothing, without touching the store.
	requests, pagination, err = svc.ListPendingForFaculty(context.Background(), "fac-unassigned", 1, 20)
	require.NoError(t, err)
	assert.Empty(t, requests)
	assert.Equal(t, 0, pagination.TotalCount)
}
