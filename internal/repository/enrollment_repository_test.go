package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarveshmore2004/Institute-Automation-System-sub002/internal/models"
)

var enrollmentTestColumns = []string{"id", "student_id", "course_code", "semester", "course_type", "credit_or_audit", "credits", "status", "grade", "approved_at", "completed_at"}

func TestEnrollmentRepositoryListCompletedByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	completed := time.Now()
	rows := sqlmock.NewRows(enrollmentTestColumns).
		AddRow("enr-1", "stu-1", "CS101", 1, models.CourseTypeCore, true, 4, models.EnrollmentStatusCompleted, "AA", time.Now(), completed).
		AddRow("enr-2", "stu-1", "MA102", 1, models.CourseTypeCore, true, 3, models.EnrollmentStatusCompleted, "BB", time.Now(), completed)
	mock.ExpectQuery("SELECT .* FROM enrollments WHERE student_id").
		WithArgs("stu-1", string(models.EnrollmentStatusCompleted)).
		WillReturnRows(rows)

	records, err := repo.ListCompletedByStudent(context.Background(), "stu-1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "CS101", records[0].CourseCode)
	require.NotNil(t, records[0].Grade)
	assert.Equal(t, "AA", *records[0].Grade)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryListByStudentEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery("SELECT .* FROM enrollments WHERE student_id").
		WithArgs("stu-1").
		WillReturnRows(sqlmock.NewRows(enrollmentTestColumns))

	records, err := repo.ListByStudent(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Empty(t, records)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryFindByKeyNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery("SELECT .* FROM enrollments WHERE student_id").
		WithArgs("stu-1", "CS101", 3).
		WillReturnRows(sqlmock.NewRows(enrollmentTestColumns))

	_, err := repo.FindByKey(context.Background(), "stu-1", "CS101", 3)
	assert.Equal(t, sql.ErrNoRows, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
