package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	appModels "github.com/magallanes/coursecatalog/internal/app/models"
	appRepos "github.com/magallanes/coursecatalog/internal/app/repositories"
	"github.com/magallanes/coursecatalog/internal/pkg/apperrors"
)

// Importer copies the loaded course catalog into a persistent collection.
// Imports are not idempotent: every run appends a full copy.
type Importer struct {
	courses *appRepos.CourseRepository
	sink    appRepos.CourseSink
	lgr     zerolog.Logger
}

// NewImporter creates a new Importer
func NewImporter(courses *appRepos.CourseRepository, sink appRepos.CourseSink, lgr zerolog.Logger) *Importer {
	return &Importer{
		courses: courses,
		sink:    sink,
		lgr:     lgr.With().Str("component", "importer").Logger(),
	}
}

// Import writes every flattened course and returns how many records were sent.
func (i *Importer) Import(ctx context.Context) (int, error) {
	if i.sink == nil {
		return 0, fmt.Errorf("%w: no persistent store configured", apperrors.ErrImport)
	}

	entries, err := i.courses.Entries()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrImport, err)
	}

	records := make([]appModels.CourseRecord, len(entries))
	for n, e := range entries {
		records[n] = appModels.NewCourseRecord(e.Year, e.Course)
	}

	if len(records) == 0 {
		i.lgr.Info().Msg("Course catalog is empty, nothing to import")
		return 0, nil
	}

	if err := i.sink.InsertMany(ctx, records); err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrImport, err)
	}

	return len(records), nil
}

// ImportAll runs Import and logs the outcome. Failures are not returned.
func (i *Importer) ImportAll(ctx context.Context) {
	i.lgr.Info().Msg("Importing course catalog...")

	count, err := i.Import(ctx)
	if err != nil {
		i.lgr.Error().Err(err).Msg("Error importing data")
		return
	}

	i.lgr.Info().Int("records", count).Msg("Data imported successfully")
}
