package dashboard

import "errors"

var (
	// ErrClientMode indicates an editing operation was attempted in the
	// read-mostly client view.
	ErrClientMode = errors.New("operation not available in client view")
	// ErrInternalMode indicates a client-gate operation was attempted in the
	// internal view.
	ErrInternalMode = errors.New("operation only available in client view")
	// ErrUnknownProject indicates the selected name is not in the catalog.
	ErrUnknownProject = errors.New("unknown project")
	// ErrNoProject indicates no project identity is resolved yet.
	ErrNoProject = errors.New("no project selected")
	// ErrProjectLookup indicates a valid token granted access to a project
	// the catalog can't resolve. Surfaced instead of silently stalling.
	ErrProjectLookup = errors.New("could not resolve the granted project")
)
