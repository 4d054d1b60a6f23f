package dto

// Health status values
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
)

// HealthResponse reports whether the course catalog is being served
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
