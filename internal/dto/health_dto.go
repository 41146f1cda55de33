package dto

type HealthResponse struct {
	Status     string            `json:"status"` // "ok" or "degraded"
	Components map[string]string `json:"components"`
}
