package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
	"github.com/wadjakorntonsri/go-catalog/pkg/logger"
)

type errorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

// statusFor maps domain failures onto HTTP status codes
func statusFor(err error) int {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRepository):
		return http.StatusServiceUnavailable
	default:
		// includes ErrInconsistentState
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: err.Error()}

	var verr *ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context(), nil).Error("request failed",
			zap.Int("status", status),
			zap.Error(err),
		)
		resp.Error = http.StatusText(status)
	}
	writeJSON(w, status, resp)
}
