package models

// Course is a single catalog entry as it appears in the course document.
// By convention Tags[0] is the course name and Tags[1] its specialization;
// the remaining tags carry category and degree-program markers.
type Course struct {
	Description string   `json:"description" bson:"description"`
	Tags        []string `json:"tags" bson:"tags" validate:"min=2"`
}

// Name returns the course name tag, or "" when absent.
func (c Course) Name() string {
	return c.tagAt(0)
}

// Specialization returns the specialization tag, or "" when absent.
func (c Course) Specialization() string {
	return c.tagAt(1)
}

// HasTag reports whether tag is present in the course tags.
func (c Course) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Degree returns the first degree-program marker found in the tags.
func (c Course) Degree() string {
	for _, d := range DegreePrograms {
		if c.HasTag(d) {
			return d
		}
	}
	return ""
}

// Clone returns a copy that shares no backing array with c.
func (c Course) Clone() Course {
	return Course{
		Description: c.Description,
		Tags:        append([]string(nil), c.Tags...),
	}
}

func (c Course) tagAt(i int) string {
	if i < len(c.Tags) {
		return c.Tags[i]
	}
	return ""
}

// Year groups courses by academic-year label ("1st Year" .. "4th Year").
type Year map[string][]Course

// Clone returns a deep copy of y, including every label outside YearLabels.
func (y Year) Clone() Year {
	if y == nil {
		return nil
	}
	out := make(Year, len(y))
	for label, courses := range y {
		if courses == nil {
			out[label] = nil
			continue
		}
		cp := make([]Course, len(courses))
		for i, c := range courses {
			cp[i] = c.Clone()
		}
		out[label] = cp
	}
	return out
}

// CourseDetail is the name/specialization projection of a Course.
type CourseDetail struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

// CourseRecord is the persisted form of a course written by the importer.
type CourseRecord struct {
	Name           string   `json:"name" bson:"name"`
	Specialization string   `json:"specialization" bson:"specialization"`
	Description    string   `json:"description" bson:"description"`
	Degree         string   `json:"degree" bson:"degree"`
	Year           string   `json:"year" bson:"year"`
	Tags           []string `json:"tags" bson:"tags"`
	Published      bool     `json:"published" bson:"published"`
}

// NewCourseRecord maps a course found under yearLabel to its persisted form.
func NewCourseRecord(yearLabel string, c Course) CourseRecord {
	return CourseRecord{
		Name:           c.Name(),
		Specialization: c.Specialization(),
		Description:    c.Description,
		Degree:         c.Degree(),
		Year:           yearLabel,
		Tags:           append([]string(nil), c.Tags...),
		Published:      true,
	}
}
