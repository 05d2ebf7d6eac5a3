package note

import "context"

// Repository manages session note persistence.
type Repository interface {
	// ListByProject returns all notes for a project, ordered by date
	// descending at the source.
	ListByProject(ctx context.Context, projectID int64) ([]Note, error)
	// Insert persists a new note and returns the created row.
	Insert(ctx context.Context, n *Note) (*Note, error)
}
