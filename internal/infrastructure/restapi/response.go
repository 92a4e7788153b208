package restapi

// APIResponse is the envelope of every /api response.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HealthResponse is the liveness payload served at /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Error messages rendered by the router itself.
const (
	MsgInternalError   = "Internal server error"
	MsgRouteNotFound   = "Route not found"
	MsgTooManyRequests = "Too many requests from this IP, please try again later."
)

func successResponse(data any) APIResponse {
	return APIResponse{Success: true, Data: data}
}

func errorResponse(message string) APIResponse {
	return APIResponse{Success: false, Error: message}
}
