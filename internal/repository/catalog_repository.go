package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sarveshmore2004/Institute-Automation-System-sub002/internal/models"
)

// CatalogRepository provides read-only access to course and faculty
// assignment reference data. The workflow consumes it and never mutates it.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository constructs the repository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// FindCourse resolves a course code against the catalog.
func (r *CatalogRepository) FindCourse(ctx context.Context, courseCode string) (*models.Course, error) {
	const query = `SELECT code, name, department, credits FROM courses WHERE code = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, courseCode); err != nil {
		return nil, err
	}
	return &course, nil
}

// ListFacultyCourses returns the course codes assigned to a faculty member.
func (r *CatalogRepository) ListFacultyCourses(ctx context.Context, facultyID string) ([]string, error) {
	const query = `SELECT course_code FROM faculty_course_assignments WHERE faculty_id = $1 ORDER BY course_code`
	var codes []string
	if err := r.db.SelectContext(ctx, &codes, query, facultyID); err != nil {
		return nil, fmt.Errorf("list faculty courses: %w", err)
	}
	return codes, nil
}
