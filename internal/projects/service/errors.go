package service

import "errors"

var (
	ErrNoSession         = errors.New("no active session")
	ErrSearchSuperseded  = errors.New("search superseded by a newer search")
	ErrNoSearch          = errors.New("no repository search to import from")
	ErrNothingSelected   = errors.New("no repositories selected")
	ErrImportUnavailable = errors.New("repository import is not configured")
	ErrDuplicateID       = errors.New("project id already exists")
)
