package types

import "time"

// StandardResponse is the unified response format for all API endpoints
type StandardResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *MetaInfo   `json:"meta,omitempty"`
}

// ErrorInfo contains structured error information
type ErrorInfo struct {
	Code    string                 `json:"code"`              // Machine-readable error code
	Message string                 `json:"message"`           // Human-readable error message
	Details map[string]interface{} `json:"details,omitempty"` // Additional error context
	TraceID string                 `json:"trace_id,omitempty"`
}

// MetaInfo contains metadata about the response
type MetaInfo struct {
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version,omitempty"`
}

// SuccessResponse wraps data in the standard envelope.
func SuccessResponse(data interface{}) StandardResponse {
	return StandardResponse{
		Success: true,
		Data:    data,
		Meta:    &MetaInfo{Timestamp: time.Now().UTC()},
	}
}

// ErrorResponseBody builds the standard envelope for a failed request.
func ErrorResponseBody(code, message string) StandardResponse {
	return StandardResponse{
		Success: false,
		Error:   &ErrorInfo{Code: code, Message: message},
		Meta:    &MetaInfo{Timestamp: time.Now().UTC()},
	}
}
