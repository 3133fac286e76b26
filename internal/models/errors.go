package models

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrAlreadyExists         = errors.New("already exists")
	ErrUserBlocked           = errors.New("user is blocked")
	ErrClassifierUnavailable = errors.New("classifier is not configured")
	ErrInvalidClassification = errors.New("invalid classification response")
)
