package repository

import (
	"context"
	"database/sql"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRepositoryFindCourse(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCatalogRepository(db)

	rows := sqlmock.NewRows([]string{"code", "name", "department", "credits"}).
		AddRow("CS101", "Intro to Programming", "CSE", "4")
	mock.ExpectQuery("SELECT code, name, department, credits FROM courses").
		WithArgs("CS101").
		WillReturnRows(rows)

	course, err := repo.FindCourse(context.Background(), "CS101")
	require.NoError(t, err)
	assert.Equal(t, "Intro to Programming", course.Name)
	assert.Equal(t, "4", course.Credits)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepositoryFindCourseUnknown(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCatalogRepository(db)

	mock.ExpectQuery("SELECT code, name, department, credits FROM courses").
		WithArgs("XX999").
		WillReturnRows(sqlmock.NewRows([]string{"code", "name", "department", "credits"}))

	_, err := repo.FindCourse(context.Background(), "XX999")
	assert.Equal(t, sql.ErrNoRows, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepositoryListFacultyCourses(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCatalogRepository(db)

	rows := sqlmock.NewRows([]string{"course_code"}).
		AddRow("CS101").
		AddRow("CS201")
	mock.ExpectQuery("SELECT course_code FROM faculty_course_assignments").
		WithArgs("fac-1").
		WillReturnRows(rows)

	codes, err := repo.ListFacultyCourses(context.Background(), "fac-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"CS101", "CS201"}, codes)
	require.NoError(t, mock.ExpectationsWereMet())
}
