package access

import "context"

// Repository reads issued grants.
type Repository interface {
	// GetActive returns the grant for a token where active is set.
	// repository.ErrNotFound when no such grant exists.
	GetActive(ctx context.Context, token string) (*Grant, error)
}
