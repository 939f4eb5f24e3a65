package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrInvalidSplitType   = errors.New("invalid split type")
	ErrInvalidSplit       = errors.New("invalid split details")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
