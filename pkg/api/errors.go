package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"price-radar/pkg/logger"
	"price-radar/pkg/models"
)

// follows RFC 7807: Problem Details for HTTP APIs
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance,omitempty"`
}

func (pd *ProblemDetails) Error() string {
	return fmt.Sprintf("%d %s: %s", pd.Status, pd.Title, pd.Detail)
}

func WriteError(w http.ResponseWriter, status int, title, detail, instance string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)

	pd := &ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: instance,
	}

	json.NewEncoder(w).Encode(pd)
}

func WriteInternalServerError(w http.ResponseWriter, err error, instance string) {
	logger.Logger.Error().Err(err).Str("path", instance).Msg("internal server error")
	WriteError(w, http.StatusInternalServerError, "Internal Server Error", "an unexpected error occurred", instance)
}

func WriteBadRequest(w http.ResponseWriter, detail, instance string) {
	WriteError(w, http.StatusBadRequest, "Bad Request", detail, instance)
}

func WriteNotFound(w http.ResponseWriter, detail, instance string) {
	WriteError(w, http.StatusNotFound, "Not Found", detail, instance)
}

// WriteDomainError maps service errors onto problem responses.
func WriteDomainError(w http.ResponseWriter, err error, instance string) {
	switch {
	case errors.Is(err, models.ErrProductNotFound), errors.Is(err, models.ErrAlertNotFound):
		WriteNotFound(w, err.Error(), instance)
	case errors.Is(err, models.ErrInvalidTargetPrice), errors.Is(err, models.ErrMissingUser):
		WriteBadRequest(w, err.Error(), instance)
	default:
		WriteInternalServerError(w, err, instance)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Logger.Error().Err(err).Msg("failed to encode response")
	}
}
