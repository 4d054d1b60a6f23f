package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/magallanes/coursecatalog/internal/app/models"
	"github.com/magallanes/coursecatalog/internal/pkg/apperrors"
)

// Source provides the raw course document.
type Source interface {
	Read(ctx context.Context) ([]byte, error)
}

// FileSource reads the course document from a local path.
type FileSource struct {
	Path string
}

// Read implements Source
func (s FileSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	return data, nil
}

// BytesSource serves an in-memory document.
type BytesSource []byte

// Read implements Source
func (s BytesSource) Read(context.Context) ([]byte, error) {
	return []byte(s), nil
}

// CourseEntry is a flattened course together with the year label it was listed under.
type CourseEntry struct {
	Year   string
	Course models.Course
}

// CourseRepository is the read-only, load-once course store.
type CourseRepository struct {
	source   Source
	validate *validator.Validate
	logger   zerolog.Logger

	once    sync.Once
	years   []models.Year
	loadErr error
}

// NewCourseRepository creates a store that will read its document from source on Load.
func NewCourseRepository(source Source, logger zerolog.Logger) *CourseRepository {
	return &CourseRepository{
		source:   source,
		validate: validator.New(),
		logger:   logger.With().Str("component", "course_store").Logger(),
	}
}

// NewCourseRepositoryFromYears creates an already-loaded store over years.
func NewCourseRepositoryFromYears(years []models.Year) *CourseRepository {
	r := &CourseRepository{validate: validator.New(), logger: zerolog.Nop()}
	r.once.Do(func() { r.years = years })
	return r
}

// Load reads, parses and validates the document. Only the first call does any work;
// later calls return the first result.
func (r *CourseRepository) Load(ctx context.Context) error {
	r.once.Do(func() {
		r.years, r.loadErr = r.load(ctx)
		if r.loadErr != nil {
			r.logger.Error().Err(r.loadErr).Msg("Failed to load course catalog")
			return
		}
		r.logger.Info().Int("years", len(r.years)).Msg("Course catalog loaded")
	})
	return r.loadErr
}

func (r *CourseRepository) load(ctx context.Context) ([]models.Year, error) {
	if r.source == nil {
		return nil, fmt.Errorf("%w: no document source configured", apperrors.ErrLoad)
	}

	data, err := r.source.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrLoad, err)
	}

	var years []models.Year
	if err := json.Unmarshal(data, &years); err != nil {
		return nil, fmt.Errorf("%w: parsing document: %w", apperrors.ErrLoad, err)
	}
	if years == nil {
		return nil, fmt.Errorf("%w: document must be a JSON array of years", apperrors.ErrLoad)
	}

	if err := r.validateYears(years); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrLoad, err)
	}

	return years, nil
}

// validateYears rejects courses that cannot supply name and specialization tags.
func (r *CourseRepository) validateYears(years []models.Year) error {
	var errs error
	for i, year := range years {
		for label, courses := range year {
			for j, course := range courses {
				if err := r.validate.Struct(course); err != nil {
					errs = errors.Join(errs, fmt.Errorf("year %d %q course %d (%q): %w",
						i, label, j, course.Description, err))
				}
			}
		}
	}
	return errs
}

// Loaded reports whether the store holds a usable snapshot.
func (r *CourseRepository) Loaded() bool {
	_, err := r.snapshot()
	return err == nil
}

// Years returns a copy of the loaded document.
func (r *CourseRepository) Years() ([]models.Year, error) {
	years, err := r.snapshot()
	if err != nil {
		return nil, err
	}

	out := make([]models.Year, len(years))
	for i, y := range years {
		out[i] = y.Clone()
	}
	return out, nil
}

// snapshot returns the shared document; callers must not modify it.
func (r *CourseRepository) snapshot() ([]models.Year, error) {
	if r.loadErr != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrQuery, r.loadErr)
	}
	if r.years == nil {
		return nil, fmt.Errorf("%w: catalog not loaded", apperrors.ErrQuery)
	}
	return r.years, nil
}

// Entries flattens the catalog: years in document order, then the canonical
// year labels in order, then list order. Labels outside models.YearLabels are skipped.
func (r *CourseRepository) Entries() ([]CourseEntry, error) {
	years, err := r.snapshot()
	if err != nil {
		return nil, err
	}

	entries := []CourseEntry{}
	for _, year := range years {
		for _, label := range models.YearLabels {
			for _, course := range year[label] {
				entries = append(entries, CourseEntry{Year: label, Course: course.Clone()})
			}
		}
	}
	return entries, nil
}

// Flatten returns the courses of Entries without their year labels.
func (r *CourseRepository) Flatten() ([]models.Course, error) {
	entries, err := r.Entries()
	if err != nil {
		return nil, err
	}

	courses := make([]models.Course, len(entries))
	for i, e := range entries {
		courses[i] = e.Course
	}
	return courses, nil
}
