package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError is the structured error body every handler returns on failure.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Render implements render.Renderer for chi/render.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new APIError.
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details.
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined errors for common scenarios.
var (
	ErrInvalidRequest = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrNotFound       = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")
	ErrInternalServer = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// ErrValidation creates a validation error with field details.
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", ValidationError{
		Field:   field,
		Message: message,
	})
}

// ErrDatasetLoad wraps a dataset load failure. Load errors are fatal for
// the request: the pipeline never serves partial data.
func ErrDatasetLoad(err error) *APIError {
	return NewWithDetails(http.StatusServiceUnavailable, "DATASET_LOAD_FAILED",
		"Source tables could not be loaded", err.Error())
}

// ErrExportFailed wraps an export generation failure.
func ErrExportFailed(err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, "EXPORT_FAILED",
		"Failed to generate export", err.Error())
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   *APIError `json:"error"`
}

// Render implements render.Renderer.
func (e *ErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return e.Error.Render(w, r)
}

// NewErrorResponse wraps an APIError in the standard envelope.
func NewErrorResponse(err *APIError) *ErrorResponse {
	return &ErrorResponse{Success: false, Error: err}
}

// FromError coerces any error into an APIError, preserving structured
// errors and wrapping everything else as an internal server error.
func FromError(err error) *APIError {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	return NewWithDetails(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR",
		"Internal server error", fmt.Sprintf("%v", err))
}
