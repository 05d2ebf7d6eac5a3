package phase

import "context"

// Repository manages project phase persistence, keyed by project name.
type Repository interface {
	// Get returns the stored current phase. repository.ErrNotFound when the
	// project has no phase record yet.
	Get(ctx context.Context, projectName string) (int, error)
	// Upsert writes the current phase for a project, creating the record if
	// it doesn't exist.
	Upsert(ctx context.Context, projectName string, current int) error
}
