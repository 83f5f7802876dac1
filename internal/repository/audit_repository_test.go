package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarveshmore2004/Institute-Automation-System-sub002/internal/models"
)

func TestAuditRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	mock.ExpectExec("INSERT INTO audit_events").
		WillReturnResult(sqlmock.NewResult(0, 1))

	actor := "fac-1"
	event := &models.AuditEvent{
		Action:     models.AuditActionApproved,
		StudentID:  "stu-1",
		CourseCode: "CS101",
		Semester:   3,
		ActorID:    &actor,
	}
	require.NoError(t, repo.Create(context.Background(), event))
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	rows := sqlmock.NewRows([]string{"id", "action", "student_id", "course_code", "semester", "actor_id", "reason", "created_at"}).
		AddRow("evt-2", models.AuditActionRejected, "stu-1", "CS101", 3, "fac-1", "capacity reached", time.Now()).
		AddRow("evt-1", models.AuditActionSubmitted, "stu-1", "CS101", 3, nil, nil, time.Now().Add(-time.Minute))
	mock.ExpectQuery("SELECT .* FROM audit_events WHERE student_id").
		WithArgs("stu-1", 50).
		WillReturnRows(rows)

	events, err := repo.ListByStudent(context.Background(), "stu-1", 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.AuditActionRejected, events[0].Action)
	require.NotNil(t, events[0].Reason)
	assert.Equal(t, "capacity reached", *events[0].Reason)
	require.NoError(t, mock.ExpectationsWereMet())
}
