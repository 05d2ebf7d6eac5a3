package phase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sellerconsulting/bitacora/internal/repository"
)

// Tracker holds the authoritative phase of one project plus an unsaved manual
// selection. Committed and pending stay independent until Save collapses them.
type Tracker struct {
	repo   Repository
	logger *slog.Logger

	mu          sync.Mutex
	epoch       uint64
	projectName string
	committed   *int
	pending     *int
	loading     bool
	saving      bool
	saveErr     error
}

// NewTracker creates a tracker with no project loaded.
func NewTracker(repo Repository, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{repo: repo, logger: logger}
}

// Load fetches the stored phase for a project and resets both committed and
// pending to it, discarding any unsaved selection. A missing record defaults
// to phase 1; a failed read is masked the same way and only logged, leaving
// the tracker usable. Results of a Load superseded by a newer one are
// discarded. Equivalent to Begin followed by Finish.
func (t *Tracker) Load(ctx context.Context, projectName string) {
	t.Finish(ctx, projectName, t.Begin(projectName))
}

// Begin registers a load for a project and returns its generation. Which load
// wins is decided by Begin order, not by fetch completion order, so callers
// that fan loads out to goroutines take the generation synchronously at the
// moment of selection and hand it to Finish.
func (t *Tracker) Begin(projectName string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.epoch++
	t.projectName = projectName
	t.loading = true
	t.committed = nil
	t.pending = nil
	t.saveErr = nil
	return t.epoch
}

// Finish fetches the stored phase for a load registered with Begin and
// applies the result, unless a newer load has begun since.
func (t *Tracker) Finish(ctx context.Context, projectName string, gen uint64) {
	current, err := t.repo.Get(ctx, projectName)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			t.logger.Warn("phase lookup failed, defaulting",
				"project", projectName, "error", err)
		}
		current = DefaultPhase
	}
	if current < MinPhase || current > MaxPhase {
		t.logger.Warn("stored phase out of range, defaulting",
			"project", projectName, "phase", current)
		current = DefaultPhase
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.epoch {
		return
	}
	t.loading = false
	committed := current
	pending := current
	t.committed = &committed
	t.pending = &pending
}

// StatusOf derives the roadmap status of a phase relative to the committed
// phase. All phases are pending until a phase has been loaded.
func (t *Tracker) StatusOf(phaseID int) Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.committed == nil {
		return StatusPending
	}
	switch {
	case phaseID < *t.committed:
		return StatusDone
	case phaseID == *t.committed:
		return StatusCurrent
	default:
		return StatusUpcoming
	}
}

// SelectPending records a manual phase selection without persisting it.
func (t *Tracker) SelectPending(phaseID int) error {
	if phaseID < MinPhase || phaseID > MaxPhase {
		return ErrInvalidPhase
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	p := phaseID
	t.pending = &p
	return nil
}

// Save persists the pending selection and, on success, makes it the committed
// phase. The write upserts by project name so a project that never had a
// phase record gets one. At most one save runs at a time; on failure the
// pending selection is preserved for retry.
func (t *Tracker) Save(ctx context.Context) error {
	t.mu.Lock()
	if t.saving {
		t.mu.Unlock()
		return ErrSaveInFlight
	}
	if t.projectName == "" {
		t.mu.Unlock()
		return ErrNoProject
	}
	if t.pending == nil {
		t.mu.Unlock()
		return ErrNoPendingPhase
	}
	target := *t.pending
	name := t.projectName
	t.saving = true
	t.saveErr = nil
	t.mu.Unlock()

	err := t.repo.Upsert(ctx, name, target)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.saving = false
	if err != nil {
		t.saveErr = fmt.Errorf("%w: %v", ErrSaveFailed, err)
		return t.saveErr
	}
	committed := target
	t.committed = &committed
	return nil
}

// ProjectName returns the name of the currently loaded project.
func (t *Tracker) ProjectName() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.projectName
}

// Committed returns the authoritative phase, or nil before the first load.
func (t *Tracker) Committed() *int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return copyInt(t.committed)
}

// Pending returns the unsaved manual selection, or nil before the first load.
func (t *Tracker) Pending() *int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return copyInt(t.pending)
}

// Loading reports whether a phase load is in flight.
func (t *Tracker) Loading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading
}

// Saving reports whether a save is in flight.
func (t *Tracker) Saving() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.saving
}

// SaveError returns the error of the last failed save, cleared by the next
// load or successful save.
func (t *Tracker) SaveError() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.saveErr
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
