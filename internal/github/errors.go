package github

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("github user not found")
	ErrUpstream         = errors.New("github upstream error")
	ErrUnreachable      = errors.New("github service unreachable")
	ErrUsernameRequired = errors.New("github username required")
)

// UpstreamError is a non-success response other than 404.
type UpstreamError struct {
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("github upstream error (%d)", e.StatusCode)
	}
	return fmt.Sprintf("github upstream error (%d): %s", e.StatusCode, e.Detail)
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
