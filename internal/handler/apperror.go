package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrMissingToken       = &AppError{http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required"}
	ErrInvalidToken       = &AppError{http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired"}
	ErrInvalidCredentials = &AppError{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"}
	ErrInvalidRequest     = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed   = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound   = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError      = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrInvalidSplitType = &AppError{http.StatusBadRequest, "INVALID_SPLIT_TYPE", "Split type must be one of percentage, exact, equally"}
	ErrInvalidSplit     = &AppError{http.StatusBadRequest, "INVALID_SPLIT", "Split details do not add up to the expense"}
	ErrInvalidAmount    = &AppError{http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be greater than zero"}
	ErrGroupNotFound    = &AppError{http.StatusNotFound, "GROUP_NOT_FOUND", "Group not found"}
	ErrUserNotFound     = &AppError{http.StatusNotFound, "USER_NOT_FOUND", "User not found"}
	ErrExpenseNotFound  = &AppError{http.StatusNotFound, "EXPENSE_NOT_FOUND", "Expense not found"}
	ErrEmailExists      = &AppError{http.StatusConflict, "EMAIL_ALREADY_REGISTERED", "Email is already registered"}

	ErrInvalidIdempotencyKey = &AppError{http.StatusBadRequest, "INVALID_IDEMPOTENCY_KEY", "Idempotency-Key header is too long"}
	ErrIdempotencyConflict   = &AppError{http.StatusConflict, "IDEMPOTENCY_CONFLICT", "Idempotency key already used with a different request"}
)
