package models

// YearLabels lists the academic-year keys in flatten order.
var YearLabels = []string{"1st Year", "2nd Year", "3rd Year", "4th Year"}

// Degree program markers carried in course tags
const (
	DegreeBSIS = "BSIS"
	DegreeBSIT = "BSIT"
)

// DegreePrograms lists the degree markers in lookup order.
var DegreePrograms = []string{DegreeBSIS, DegreeBSIT}

// BackendTags is the subject-category vocabulary that classifies a backend course.
var BackendTags = []string{"Database", "System", "Software", "Enterprise", "Web", "Information"}
