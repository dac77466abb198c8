package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/wardwatch/statuspanel/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps the service error taxonomy onto HTTP statuses
func respondWithAppError(w http.ResponseWriter, err error) {
	message := "internal server error"
	status := http.StatusInternalServerError

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			status = http.StatusNotFound
			message = appErr.Message
		case apperrors.ErrorTypeValidation:
			status = http.StatusBadRequest
			message = appErr.Message
		case apperrors.ErrorTypeConflict:
			status = http.StatusConflict
			message = appErr.Message
		case apperrors.ErrorTypeUnauthorized:
			status = http.StatusUnauthorized
			message = appErr.Message
		}
	}

	respondWithError(w, status, message)
}
