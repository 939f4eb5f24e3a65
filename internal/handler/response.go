package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/josh-kwaku/splitledger/internal/domain"
	"github.com/josh-kwaku/splitledger/internal/logging"
)

type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data"`
	Error   *APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func RespondSuccess(w http.ResponseWriter, status int, data any) {
	RespondJSON(w, status, APIResponse{
		Success: true,
		Data:    data,
	})
}

func RespondAppError(w http.ResponseWriter, appErr *AppError, details any) {
	RespondJSON(w, appErr.Status, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: details,
		},
	})
}

func RespondValidationError(w http.ResponseWriter, fields []FieldError) {
	RespondAppError(w, ErrValidationFailed, fields)
}

// RespondDomainError maps a service error to its HTTP form. Split errors and
// unrecognized errors carry the error text as details.
func RespondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logging.FromContext(r.Context())

	var appErr *AppError
	switch {
	case errors.Is(err, domain.ErrInvalidSplitType):
		appErr = ErrInvalidSplitType
	case errors.Is(err, domain.ErrInvalidSplit):
		appErr = ErrInvalidSplit
	case errors.Is(err, domain.ErrInvalidAmount):
		appErr = ErrInvalidAmount
	case errors.Is(err, domain.ErrInvalidRequest):
		appErr = ErrInvalidRequest
	case errors.Is(err, domain.ErrGroupNotFound):
		appErr = ErrGroupNotFound
	case errors.Is(err, domain.ErrUserNotFound):
		appErr = ErrUserNotFound
	case errors.Is(err, domain.ErrExpenseNotFound):
		appErr = ErrExpenseNotFound
	case errors.Is(err, domain.ErrNotFound):
		appErr = ErrResourceNotFound
	case errors.Is(err, domain.ErrEmailExists):
		appErr = ErrEmailExists
	case errors.Is(err, domain.ErrInvalidCredentials):
		appErr = ErrInvalidCredentials
	default:
		log.Error("unhandled domain error", "error", err)
		RespondAppError(w, ErrInternalError, err.Error())
		return
	}

	log.Warn("request failed", "code", appErr.Code, "error", err)

	var details any
	if appErr == ErrInvalidSplit || appErr == ErrInvalidSplitType {
		details = err.Error()
	}
	RespondAppError(w, appErr, details)
}
