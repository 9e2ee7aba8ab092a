package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/username/subveris/backend/src/logger"
	"github.com/username/subveris/backend/src/security/validation"
	"github.com/username/subveris/backend/src/storage"
)

func sendJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

func sendJSONError(w http.ResponseWriter, message string, statusCode int) {
	logger.L.Warn("Sending JSON error to client", "message", message, "statusCode", statusCode)
	sendJSON(w, statusCode, map[string]string{"error": message})
}

// sendValidationError returns the field-level violations as the details
// array of a 400 response.
func sendValidationError(w http.ResponseWriter, message string, details []validation.FieldError) {
	logger.L.Warn("Sending validation error to client", "message", message, "violations", len(details))
	sendJSON(w, http.StatusBadRequest, map[string]any{
		"error":   message,
		"details": details,
	})
}

// sendStoreError maps a storage failure to the API error contract:
// not-found becomes a 404, anything else an opaque 500. Backend errors
// are never converted into empty analytics results.
func sendStoreError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg, failureMsg string) {
	if errors.Is(err, storage.ErrNotFound) {
		sendJSONError(w, notFoundMsg, http.StatusNotFound)
		return
	}
	logger.FromContext(r.Context()).Error(failureMsg, "error", err)
	sendJSONError(w, failureMsg, http.StatusInternalServerError)
}
