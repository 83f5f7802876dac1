package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarveshmore2004/Institute-Automation-System-sub002/internal/models"
	appErrors "github.com/sarveshmore2004/Institute-Automation-System-sub002/pkg/errors"
)

type mockEnrollmentReader struct {
	records map[string][]models.EnrollmentRecord
	calls   int
}

func (m *mockEnrollmentReader) ListByStudent(ctx context.Context, studentID string) ([]models.EnrollmentRecord, error) {
	return m.records[studentID], nil
}

func (m *mockEnrollmentReader) ListCompletedByStudent(ctx context.Context, studentID string) ([]models.EnrollmentRecord, error) {
	m.calls++
	var completed []models.EnrollmentRecord
	for _, record := range m.records[studentID] {
		if record.Status == models.EnrollmentStatusCompleted {
			completed = append(completed, record)
		}
	}
	return completed, nil
}

func grade(g string) *string { return &g }

func TestPerformanceSummaryFromStore(t *testing.T) {
	reader := &mockEnrollmentReader{records: map[string][]models.EnrollmentRecord{
		"stu-1": {
			{StudentID: "stu-1", CourseCode: "CS101", Semester: 1, Credits: 4, Status: models.EnrollmentStatusCompleted, Grade: grade("AA")},
			{StudentID: "stu-1", CourseCode: "MA102", Semester: 1, Credits: 3, Status: models.EnrollmentStatusCompleted, Grade: grade("BB")},
			{StudentID: "stu-1", CourseCode: "PH201", Semester: 2, Credits: 4, Status: models.EnrollmentStatusCompleted, Grade: grade("CC")},
			// Approved but not graded: excluded from aggregation entirely.
			{StudentID: "stu-1", CourseCode: "EE301", Semester: 3, Credits: 4, Status: models.EnrollmentStatusApproved},
		},
	}}
	svc := NewTranscriptService(reader, nil, nil, nil)

	summaries, err := svc.PerformanceSummary(context.Background(), "stu-1")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.InDelta(t, 9.14, summaries[0].SPI, 1e-9)
	assert.InDelta(t, 8.00, summaries[1].CPI, 1e-9)
}

func TestPerformanceSummaryUngradedCompletedCourse(t *testing.T) {
	// A completed record whose grade is still missing scores zero but keeps
	// its credit weight.
	reader := &mockEnrollmentReader{records: map[string][]models.EnrollmentRecord{
		"stu-1": {
			{StudentID: "stu-1", CourseCode: "CS101", Semester: 1, Credits: 4, Status: models.EnrollmentStatusCompleted, Grade: grade("AA")},
			{StudentID: "stu-1", CourseCode: "MA102", Semester: 1, Credits: 4, Status: models.EnrollmentStatusCompleted},
		},
	}}
	svc := NewTranscriptService(reader, nil, nil, nil)

	summaries, err := svc.PerformanceSummary(context.Background(), "stu-1")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.InDelta(t, 5.00, summaries[0].SPI, 1e-9)
}

func TestPerformanceSummaryRequiresStudentID(t *testing.T) {
	svc := NewTranscriptService(&mockEnrollmentReader{}, nil, nil, nil)

	_, err := svc.PerformanceSummary(context.Background(), "")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestCompletedRecordsFiltersApproved(t *testing.T) {
	reader := &mockEnrollmentReader{records: map[string][]models.EnrollmentRecord{
		"stu-1": {
			{StudentID: "stu-1", CourseCode: "CS101", Semester: 1, Credits: 4, Status: models.EnrollmentStatusCompleted, Grade: grade("AB")},
			{StudentID: "stu-1", CourseCode: "EE301", Semester: 2, Credits: 4, Status: models.EnrollmentStatusApproved},
		},
	}}
	svc := NewTranscriptService(reader, nil, nil, nil)

	records, err := svc.CompletedRecords(context.Background(), "stu-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "CS101", records[0].CourseCode)
}

func TestComputePassesThroughAggregationErrors(t *testing.T) {
	svc := NewTranscriptService(&mockEnrollmentReader{}, nil, nil, nil)

	_, err := svc.Compute(context.Background(), []models.CompletedCourse{
		{Semester: 1, Credits: "0", Grade: "AA"},
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrDegenerateSemester))
}

type fakeCacheRepo struct {
	store map[string][]byte
	sets  int
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{store: make(map[string][]byte)}
}

func (m *fakeCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = raw
	m.sets++
	return nil
}

func (m *fakeCacheRepo) Delete(ctx context.Context, key string) error {
	delete(m.store, key)
	return nil
}

func TestPerformanceSummaryUsesCache(t *testing.T) {
	reader := &mockEnrollmentReader{records: map[string][]models.EnrollmentRecord{
		"stu-1": {
			{StudentID: "stu-1", CourseCode: "CS101", Semester: 1, Credits: 4, Status: models.EnrollmentStatusCompleted, Grade: grade("AA")},
			{StudentID: "stu-1", CourseCode: "MA102", Semester: 1, Credits: 3, Status: models.EnrollmentStatusCompleted, Grade: grade("BB")},
		},
	}}
	cacheRepo := newFakeCacheRepo()
	cacheSvc := NewCacheService(cacheRepo, nil, 0, nil, true)
	svc := NewTranscriptService(reader, cacheSvc, nil, nil)

	first, err := svc.PerformanceSummary(context.Background(), "stu-1")
	require.NoError(t, err)
	second, err := svc.PerformanceSummary(context.Background(), "stu-1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, reader.calls)
	assert.Equal(t, 1, cacheRepo.sets)
}
