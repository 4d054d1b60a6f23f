package services

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/magallanes/coursecatalog/internal/app/models"
	"github.com/magallanes/coursecatalog/internal/app/repositories"
	"github.com/magallanes/coursecatalog/internal/pkg/apperrors"
)

// CourseService defines the read operations over the course catalog
type CourseService interface {
	AllCourses(ctx context.Context) ([]models.Year, error)
	CoursesByTag(ctx context.Context, tag string) ([]models.Course, error)
	BackendCourses(ctx context.Context) ([]models.Course, error)
	CourseDetails(ctx context.Context) ([]models.CourseDetail, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo *repositories.CourseRepository
	locale     language.Tag
}

// NewCourseService creates a new course service. locale selects the collation
// used to order backend courses; an unparsable locale falls back to English.
func NewCourseService(courseRepo *repositories.CourseRepository, locale string) CourseService {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &courseServiceImpl{
		courseRepo: courseRepo,
		locale:     tag,
	}
}

var backendTagSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(models.BackendTags))
	for _, t := range models.BackendTags {
		set[t] = struct{}{}
	}
	return set
}()

// IsBackendCourse reports whether any of the course tags is a backend subject category.
func IsBackendCourse(course models.Course) bool {
	for _, t := range course.Tags {
		if _, ok := backendTagSet[t]; ok {
			return true
		}
	}
	return false
}

// AllCourses returns the catalog document as loaded
func (s *courseServiceImpl) AllCourses(ctx context.Context) ([]models.Year, error) {
	years, err := s.courseRepo.Years()
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return years, nil
}

// CoursesByTag returns flattened courses carrying tag
func (s *courseServiceImpl) CoursesByTag(ctx context.Context, tag string) ([]models.Course, error) {
	courses, err := s.courseRepo.Flatten()
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses by tag %q: %w", tag, err)
	}
	return filterCourses(courses, func(c models.Course) bool { return c.HasTag(tag) }), nil
}

// BackendCourses returns backend courses ordered by description. Equal
// descriptions keep catalog order.
func (s *courseServiceImpl) BackendCourses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courseRepo.Flatten()
	if err != nil {
		return nil, fmt.Errorf("error retrieving backend courses: %w", err)
	}

	backend := filterCourses(courses, IsBackendCourse)

	// collate.Collator is not safe for concurrent use
	col := collate.New(s.locale)
	sort.SliceStable(backend, func(i, j int) bool {
		return col.CompareString(backend[i].Description, backend[j].Description) < 0
	})
	return backend, nil
}

// CourseDetails projects every course onto its name and specialization tags
func (s *courseServiceImpl) CourseDetails(ctx context.Context) ([]models.CourseDetail, error) {
	courses, err := s.courseRepo.Flatten()
	if err != nil {
		return nil, fmt.Errorf("error retrieving course details: %w", err)
	}

	details := make([]models.CourseDetail, 0, len(courses))
	for i, c := range courses {
		if len(c.Tags) < 2 {
			return nil, apperrors.NewIndexError(i, c.Description)
		}
		details = append(details, models.CourseDetail{
			Name:           c.Name(),
			Specialization: c.Specialization(),
		})
	}
	return details, nil
}

func filterCourses(courses []models.Course, keep func(models.Course) bool) []models.Course {
	out := []models.Course{}
	for _, c := range courses {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
