// Package repository holds the sentinel errors shared by all storage
// implementations. Each domain package declares its own narrow interface for
// the persistence it needs; this package stays a leaf so storage and domain
// code can both depend on it.
package repository

import "errors"

var (
	// ErrNotFound is returned when a requested row doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrDuplicate is returned when a unique constraint fails
	ErrDuplicate = errors.New("duplicate row")
)
