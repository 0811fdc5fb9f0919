package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ground-experiment/groundlink/internal/apperrors"
	"ground-experiment/groundlink/internal/models/dtos"
)

func respondWithSuccess[T any](w http.ResponseWriter, statusCode int, data *T) {
	resp := dtos.APIResponse[T]{
		Status:    "success",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondWithError(w http.ResponseWriter, statusCode int, code, message string) {
	resp := dtos.APIResponse[any]{
		Status:    "error",
		Timestamp: time.Now().UTC(),
		Error:     message,
		Code:      code,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(resp)
}

// respondWithAppError maps the failure taxonomy onto HTTP status codes
func respondWithAppError(w http.ResponseWriter, err error) {
	code := apperrors.CodeOf(err)

	status := http.StatusInternalServerError
	switch code {
	case apperrors.CodeValidation:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeClaimConflict, apperrors.CodeInactiveRequest:
		status = http.StatusConflict
	case apperrors.CodeInvalidTransit:
		status = http.StatusUnprocessableEntity
	case apperrors.CodeForbidden:
		status = http.StatusForbidden
	case apperrors.CodeStoreDown:
		status = http.StatusServiceUnavailable
	}

	message := err.Error()
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	respondWithError(w, status, code, message)
}
