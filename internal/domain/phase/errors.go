package phase

import "errors"

var (
	// ErrInvalidPhase indicates a phase ID outside the 1..4 roadmap.
	ErrInvalidPhase = errors.New("invalid phase")
	// ErrNoPendingPhase indicates save was called with no pending selection.
	ErrNoPendingPhase = errors.New("no pending phase selected")
	// ErrNoProject indicates save was called before a project was loaded.
	ErrNoProject = errors.New("no project loaded")
	// ErrSaveInFlight indicates a save is already running.
	ErrSaveInFlight = errors.New("phase save already in flight")
	// ErrSaveFailed indicates the phase write was rejected or errored.
	ErrSaveFailed = errors.New("could not save phase")
)
