package dto

// InternalServerErrorMessage is the only error text ever sent to clients
const InternalServerErrorMessage = "Internal server error"

// ErrorResponse represents the error body returned by every failing route
type ErrorResponse struct {
	Error string `json:"error" example:"Internal server error"`
}

// NewInternalErrorResponse creates the generic 500 body
func NewInternalErrorResponse() ErrorResponse {
	return ErrorResponse{Error: InternalServerErrorMessage}
}
