package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/sarveshmore2004/Institute-Automation-System-sub002/internal/models"
	appErrors "github.com/sarveshmore2004/Institute-Automation-System-sub002/pkg/errors"
)

const summaryCacheKeyPrefix = "transcript:summary:"

// gradePlaceholder marks enrollments the grading process has not finished;
// it scores zero while its credits still count.
const gradePlaceholder = "N/A"

type enrollmentReader interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.EnrollmentRecord, error)
	ListCompletedByStudent(ctx context.Context, studentID string) ([]models.EnrollmentRecord, error)
}

// TranscriptService exposes the completed-course history and the derived
// SPI/CPI report that transcript generation consumes.
type TranscriptService struct {
	enrollments enrollmentReader
	cache       *CacheService
	gradePoints models.GradePointTable
	logger      *zap.Logger
}

// NewTranscriptService constructs TranscriptService. The grade point table
// is injected so alternative scales can be configured without touching the
// aggregation engine.
func NewTranscriptService(enrollments enrollmentReader, cache *CacheService, gradePoints models.GradePointTable, logger *zap.Logger) *TranscriptService {
	if gradePoints == nil {
		gradePoints = models.DefaultGradePoints()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptService{enrollments: enrollments, cache: cache, gradePoints: gradePoints, logger: logger}
}

// CompletedRecords returns a student's graded course history.
func (s *TranscriptService) CompletedRecords(ctx context.Context, studentID string) ([]models.EnrollmentRecord, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id required")
	}
	records, err := s.enrollments.ListCompletedByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load completed records")
	}
	return records, nil
}

// PerformanceSummary derives the per-semester SPI/CPI report for a student
// from the enrollment store. Summaries are cached with a TTL; grades are
// written by an external process so staleness is bounded, not eliminated.
func (s *TranscriptService) PerformanceSummary(ctx context.Context, studentID string) ([]models.SemesterSummary, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id required")
	}

	cacheKey := summaryCacheKeyPrefix + studentID
	var cached []models.SemesterSummary
	if s.cache.Get(ctx, cacheKey, &cached) {
		return cached, nil
	}

	records, err := s.enrollments.ListCompletedByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load completed records")
	}

	summaries, err := ComputeSemesterSummaries(toCompletedCourses(records), s.gradePoints)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, cacheKey, summaries, 0)
	return summaries, nil
}

// Compute runs the aggregation engine over an externally assembled record
// list. Pure passthrough for transcript generation working off its own data.
func (s *TranscriptService) Compute(ctx context.Context, records []models.CompletedCourse) ([]models.SemesterSummary, error) {
	return ComputeSemesterSummaries(records, s.gradePoints)
}

func toCompletedCourses(records []models.EnrollmentRecord) []models.CompletedCourse {
	courses := make([]models.CompletedCourse, 0, len(records))
	for _, record := range records {
		grade := gradePlaceholder
		if record.Grade != nil {
			grade = *record.Grade
		}
		courses = append(courses, models.CompletedCourse{
			Semester: record.Semester,
			Credits:  strconv.Itoa(record.Credits),
			Grade:    grade,
		})
	}
	return courses
}
