package apperrors

import "errors"

// Catalog errors
var (
	// ErrLoad is returned when the course document is missing, malformed or fails schema checks.
	ErrLoad = errors.New("course catalog could not be loaded")
	// ErrQuery is returned by read operations when the catalog is unavailable.
	ErrQuery = errors.New("course catalog is unavailable")
	// ErrIndex is returned when a course lacks the positional tags a projection needs.
	ErrIndex = errors.New("course is missing name or specialization tag")
)

// Import errors
var (
	ErrImport = errors.New("course import failed")
)

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewIndexError reports a course at the given flattened position without name/specialization tags.
func NewIndexError(position int, description string) error {
	return NewCustomError(ErrIndex, ErrIndex.Error()).WithDetails(map[string]interface{}{
		"position":    position,
		"description": description,
	})
}
