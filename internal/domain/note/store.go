package note

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds the session notes of one project and the active selection.
// The set is replaced wholesale on load and grows only through Create;
// notes are never edited or deleted.
type Store struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time

	mu        sync.Mutex
	epoch     uint64
	projectID int64
	notes     []Note
	activeID  string
	loading   bool
	loadErr   error
	creating  bool
	createErr error
}

// NewStore creates a store with no project loaded.
func NewStore(repo Repository, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{repo: repo, logger: logger, now: time.Now}
}

// Load replaces the note set with the sessions of the given project and
// resets the active selection to the most recent note. A load superseded by
// a newer one is discarded without touching state. Equivalent to Begin
// followed by Finish.
func (s *Store) Load(ctx context.Context, projectID int64) {
	s.Finish(ctx, projectID, s.Begin(projectID))
}

// Begin registers a load for a project and returns its generation. Which load
// wins is decided by Begin order, not by fetch completion order, so callers
// that fan loads out to goroutines take the generation synchronously at the
// moment of selection and hand it to Finish.
func (s *Store) Begin(projectID int64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.projectID = projectID
	s.loading = true
	s.loadErr = nil
	s.createErr = nil
	return s.epoch
}

// Finish fetches the sessions for a load registered with Begin and applies
// the result, unless a newer load has begun since.
func (s *Store) Finish(ctx context.Context, projectID int64, gen uint64) {
	rows, err := s.repo.ListByProject(ctx, projectID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.epoch {
		return
	}
	s.loading = false
	if err != nil {
		s.logger.Warn("session load failed", "project_id", projectID, "error", err)
		s.loadErr = fmt.Errorf("%w: %v", ErrLoadFailed, err)
		return
	}
	s.notes = rows
	ordered := latestFirst(rows)
	if len(ordered) > 0 {
		s.activeID = ordered[0].ID
	} else {
		s.activeID = ""
	}
}

// Create validates a draft, persists it and applies the created row to the
// in-memory set, making it the active selection. On a store failure the set
// is untouched so the caller can keep the draft and retry. A second create
// while one is running is rejected.
func (s *Store) Create(ctx context.Context, draft Draft) (*Note, error) {
	s.mu.Lock()
	if s.creating {
		s.mu.Unlock()
		return nil, ErrSaveInFlight
	}
	if s.projectID == 0 {
		s.mu.Unlock()
		return nil, ErrNoProject
	}
	projectID := s.projectID
	epoch := s.epoch
	s.creating = true
	s.createErr = nil
	s.mu.Unlock()

	finish := func(err error) {
		s.mu.Lock()
		s.creating = false
		s.createErr = err
		s.mu.Unlock()
	}

	if err := ValidateDraft(draft); err != nil {
		finish(err)
		return nil, err
	}

	status := draft.ClientStatus
	if status == "" {
		status = StatusDeferred
	}
	tag := strings.TrimSpace(draft.Tag)
	if tag == "" {
		tag = DefaultTag
	}
	n := &Note{
		ID:           uuid.NewString(),
		ProjectID:    projectID,
		Title:        strings.TrimSpace(draft.Title),
		Date:         draft.Date,
		Tag:          tag,
		Summary:      strings.TrimSpace(draft.Summary),
		ClientStatus: status,
		CreatedAt:    s.now(),
	}
	if resp := strings.TrimSpace(draft.ClientResponsible); resp != "" {
		n.ClientResponsible = &resp
	}

	created, err := s.repo.Insert(ctx, n)
	if err != nil {
		wrapped := fmt.Errorf("%w: %v", ErrSaveFailed, err)
		finish(wrapped)
		return nil, wrapped
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.creating = false
	s.createErr = nil
	if epoch == s.epoch {
		s.notes = append([]Note{*created}, s.notes...)
		s.activeID = created.ID
	}
	return created, nil
}

// SetActive points the active selection at a note in the current set.
func (s *Store) SetActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notes {
		if n.ID == id {
			s.activeID = id
			return nil
		}
	}
	return ErrNotInSet
}

// Active returns a copy of the active note, or nil when nothing is selected.
func (s *Store) Active() *Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notes {
		if n.ID == s.activeID {
			c := n
			return &c
		}
	}
	return nil
}

// LatestFirst returns the note set ordered by date descending, independent of
// source ordering. Notes with equal dates keep their arrival order.
func (s *Store) LatestFirst() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return latestFirst(s.notes)
}

// Timeline returns the latest-first set with session numbers counted from the
// oldest entry.
func (s *Store) Timeline() []TimelineEntry {
	ordered := s.LatestFirst()
	entries := make([]TimelineEntry, 0, len(ordered))
	for i, n := range ordered {
		entries = append(entries, TimelineEntry{Seq: len(ordered) - i, Note: n})
	}
	return entries
}

// Count returns the number of loaded notes.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}

// ProjectID returns the project whose notes are loaded.
func (s *Store) ProjectID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectID
}

// Loading reports whether a load is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LoadError returns the error of the last failed load, cleared by the next
// load.
func (s *Store) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// CreateError returns the error of the last failed create, cleared by the
// next attempt or load.
func (s *Store) CreateError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createErr
}

func latestFirst(notes []Note) []Note {
	ordered := make([]Note, len(notes))
	copy(ordered, notes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date > ordered[j].Date
	})
	return ordered
}
