package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Anton1921980/order-management/internal/apperr"
)

// envelope mirrors the API's response shape: status is "success", "fail"
// (4xx) or "error" (5xx).
type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type successBody struct {
	Status  string `json:"status"`
	Results *int   `json:"results,omitempty"`
	Data    any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successBody{Status: "success", Data: data})
}

func writeList(w http.ResponseWriter, results int, data any) {
	writeJSON(w, http.StatusOK, successBody{Status: "success", Results: &results, Data: data})
}

// writeError maps the error taxonomy onto status codes. Business-rule
// messages pass through verbatim; transient and unknown failures get a
// generic message.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidArgument),
		errors.Is(err, apperr.ErrInsufficientStock),
		errors.Is(err, apperr.ErrInsufficientBalance):
		writeJSON(w, http.StatusBadRequest, errorBody{Status: "fail", Message: err.Error()})

	case apperr.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorBody{Status: "fail", Message: err.Error()})

	case errors.Is(err, apperr.ErrTransient):
		slog.Warn("transient failure", "err", err)
		writeJSON(w, http.StatusServiceUnavailable, errorBody{
			Status:  "error",
			Message: "Service temporarily unavailable, please retry",
		})

	default:
		slog.Error("internal error", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Status:  "error",
			Message: "Internal server error",
		})
	}
}
