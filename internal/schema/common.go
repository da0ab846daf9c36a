package schema

// ErrorResponse represents a standard error payload.
type ErrorResponse struct {
	Error   string `json:"error" msgpack:"error"`
	Details string `json:"details,omitempty" msgpack:"details,omitempty"`
}

// MessageResponse represents the structured payload for unmatched routes
// and recovered handler panics. Stack is suppressed outside development.
type MessageResponse struct {
	Message string `json:"message" msgpack:"message"`
	Stack   string `json:"stack,omitempty" msgpack:"stack,omitempty"`
}

// HealthResponse represents the health check response payload.
type HealthResponse struct {
	Status string `json:"status" msgpack:"status"`
}
