package repository

import "github.com/icarus-portal/icarus-api/internal/repoerr"

// The sentinel values live in the leaf package repoerr so domain packages can
// match on them without importing this package; these aliases keep the
// repository.ErrX names (and error identities) unchanged for all callers.
var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = repoerr.ErrNotFound

	// ErrConflict is returned when a compare-and-swap precondition fails
	ErrConflict = repoerr.ErrConflict

	// ErrDuplicate is returned when a uniqueness constraint fails
	ErrDuplicate = repoerr.ErrDuplicate

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = repoerr.ErrForeignKeyViolation
)
