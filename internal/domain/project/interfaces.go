package project

import "context"

// Repository provides read access to the externally managed project catalog.
type Repository interface {
	List(ctx context.Context) ([]Project, error)
	Get(ctx context.Context, id int64) (*Project, error)
	GetByName(ctx context.Context, name string) (*Project, error)
}
