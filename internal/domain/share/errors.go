package share

import "errors"

var (
	// ErrIssueFailed indicates the grant could not be persisted.
	ErrIssueFailed = errors.New("could not issue share link")
	// ErrInvalidInput indicates issue was called without a project.
	ErrInvalidInput = errors.New("invalid share input")
)
