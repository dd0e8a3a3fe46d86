package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/teacherlog/teacherlog/domain/contribution"
	"github.com/teacherlog/teacherlog/infrastructure/persistence"
	"github.com/teacherlog/teacherlog/infrastructure/provider"
)

// ErrorResponse is the wire shape of every error body.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Opaque client-facing messages. Internal causes are logged server-side
// and never included in responses.
const (
	detailInvalidID      = "Invalid ID format"
	detailNotFound       = "Contribution not found"
	detailUnconfigured   = "Summarization service not configured"
	detailProviderFailed = "Summarization service unavailable"
	detailInternal       = "Internal server error"
)

// WriteError translates err into an HTTP status and a safe detail
// message. Validation messages pass through; everything unrecognized
// collapses to an opaque 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status := http.StatusInternalServerError
	detail := detailInternal

	var validationErr *contribution.ValidationError
	var providerErr *provider.ProviderError

	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		detail = validationErr.Message
	case errors.Is(err, persistence.ErrInvalidID):
		status = http.StatusBadRequest
		detail = detailInvalidID
	case errors.Is(err, persistence.ErrNotFound):
		status = http.StatusNotFound
		detail = detailNotFound
	case errors.Is(err, provider.ErrNotConfigured):
		status = http.StatusServiceUnavailable
		detail = detailUnconfigured
	case errors.As(err, &providerErr):
		status = http.StatusServiceUnavailable
		detail = detailProviderFailed
	}

	if logger == nil {
		logger = slog.Default()
	}
	logger.Error("request error",
		"request_id", chimiddleware.GetReqID(r.Context()),
		"status", status,
		"error", err.Error(),
		"method", r.Method,
		"path", r.URL.Path,
	)

	WriteJSON(w, status, ErrorResponse{Detail: detail})
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
