package repositories

import (
	"context"

	"github.com/magallanes/coursecatalog/internal/app/models"
)

// CourseSink is the persistent collection the importer writes to.
type CourseSink interface {
	InsertMany(ctx context.Context, records []models.CourseRecord) error
}

// Repositories holds all the repository instances
type Repositories struct {
	Courses *CourseRepository
	// Sink is nil unless a database was configured for importing
	Sink CourseSink
}

// NewRepositories bundles the course store with an optional sink
func NewRepositories(courses *CourseRepository, sink CourseSink) *Repositories {
	return &Repositories{
		Courses: courses,
		Sink:    sink,
	}
}
