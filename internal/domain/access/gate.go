package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sellerconsulting/bitacora/internal/repository"
)

// Gate validates client tokens against stored grants. It is read-only and
// advisory: it decides what the client view shows, nothing more.
type Gate struct {
	tokens Repository
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	state    State
	identity *Identity
	err      error
}

// NewGate creates a gate in the idle state.
func NewGate(tokens Repository, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{tokens: tokens, logger: logger, now: time.Now, state: StateIdle}
}

// Resolve validates a token and returns the project identity it grants.
// An unknown or deactivated token and an empty result both yield ErrInvalid;
// a backing read error yields ErrLookupFailed; a known active token past its
// expiry yields ErrExpired.
func (g *Gate) Resolve(ctx context.Context, token string) (*Identity, error) {
	g.mu.Lock()
	g.state = StateValidating
	g.identity = nil
	g.err = nil
	g.mu.Unlock()

	if token == "" {
		return nil, g.fail(StateInvalid, ErrInvalid)
	}

	grant, err := g.tokens.GetActive(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, g.fail(StateInvalid, ErrInvalid)
		}
		g.logger.Warn("token lookup failed", "error", err)
		return nil, g.fail(StateLookupFailed, fmt.Errorf("%w: %v", ErrLookupFailed, err))
	}

	if grant.Expired(g.now()) {
		return nil, g.fail(StateExpired, ErrExpired)
	}

	identity := &Identity{
		ProjectName: grant.ProjectName,
		ClientName:  grant.ClientName,
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = StateResolved
	g.identity = identity
	return identity, nil
}

// State returns the gate's position in the validation flow.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Identity returns the resolved identity, or nil before a successful Resolve.
func (g *Gate) Identity() *Identity {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.identity == nil {
		return nil
	}
	c := *g.identity
	return &c
}

// Err returns the error of the last failed Resolve.
func (g *Gate) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

func (g *Gate) fail(state State, err error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = state
	g.err = err
	return err
}
