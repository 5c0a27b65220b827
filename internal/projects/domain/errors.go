package domain

import "errors"

var (
	ErrNotFound      = errors.New("project not found")
	ErrValidation    = errors.New("project validation failed")
	ErrStoreWrite    = errors.New("project store write failed")
	ErrInvalidStatus = errors.New("invalid project status")
)
