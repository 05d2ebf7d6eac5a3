package note

import "errors"

var (
	// ErrValidation indicates the draft fails local rules; nothing was written.
	ErrValidation = errors.New("invalid session note")
	// ErrLoadFailed indicates the session list could not be read.
	ErrLoadFailed = errors.New("could not load sessions")
	// ErrSaveFailed indicates the note write was rejected or errored.
	ErrSaveFailed = errors.New("could not save session note")
	// ErrSaveInFlight indicates a create is already running.
	ErrSaveInFlight = errors.New("session save already in flight")
	// ErrNoProject indicates no project is loaded.
	ErrNoProject = errors.New("no project loaded")
	// ErrNotInSet indicates the requested note is not in the loaded set.
	ErrNotInSet = errors.New("session not in loaded set")
)
