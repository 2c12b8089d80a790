package types

import "encoding/json"

// AdviceResponse is the backend's reply to a career-advice request.
// Advice is markdown and is never parsed client-side.
type AdviceResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Advice  string `json:"advice"`
	Error   string `json:"error,omitempty"`
}

// SampleResponse wraps a sample request body returned by the backend.
type SampleResponse struct {
	SampleRequest json.RawMessage `json:"sample_request"`
}

// HealthStatus is the backend health payload.
type HealthStatus struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    *HealthData `json:"data,omitempty"`
}

// HealthData carries the service status inside HealthStatus.
type HealthData struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
}

// Healthy reports whether the backend declared itself healthy.
func (h *HealthStatus) Healthy() bool {
	return h != nil && h.Success && h.Data != nil && h.Data.Status == "healthy"
}
