package response

// Error codes returned in the error envelope.
const (
	CodeInvalidInput       = "invalid_input"
	CodeSessionNotFound    = "session_not_found"
	CodeBackendUnavailable = "backend_unavailable"
	CodeModelUnavailable   = "model_unavailable"
	CodeTimeout            = "request_timeout"
	CodeRateLimited        = "rate_limited"
	CodeInternalError      = "internal_error"
	CodeServiceUnavailable = "service_unavailable"
)

// ErrorBody describes a single error inside the envelope.
type ErrorBody struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	RetryAfter int            `json:"retry_after,omitempty"`
}

// ErrorResp is the error envelope returned whenever a request
// cannot be fulfilled.
type ErrorResp struct {
	Error     ErrorBody `json:"error"`
	SessionID string    `json:"session_id,omitempty"`
}
