package errors

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// ErrorHandler renders errors consistently across handlers and logs them
// with the request context.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates an error handler bound to the given logger.
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{logger: logger}
}

// HandleError writes an error response, coercing unstructured errors into
// the standard envelope.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := FromError(err)

	if apiErr.StatusCode >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("error_code", apiErr.ErrorCode),
			slog.String("message", apiErr.Message),
			slog.Int("status", apiErr.StatusCode))
	} else {
		h.logger.WarnContext(r.Context(), "request rejected",
			slog.String("error_code", apiErr.ErrorCode),
			slog.Int("status", apiErr.StatusCode))
	}

	if renderErr := render.Render(w, r, NewErrorResponse(apiErr)); renderErr != nil {
		h.logger.ErrorContext(r.Context(), "failed to render error response",
			slog.String("error", renderErr.Error()))
		http.Error(w, apiErr.Message, apiErr.StatusCode)
	}
}
