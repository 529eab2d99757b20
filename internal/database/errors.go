package database

import "errors"

// Store error taxonomy. Repositories wrap these with context via
// fmt.Errorf("...: %w", ...); callers classify with errors.Is. Any other
// error returned from a repository wraps an underlying storage failure.
var (
	// ErrNotFound means an operation referenced an album, asset or
	// settings row that does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidReference means a cross-entity reference violates an
	// invariant: a cover asset not owned by the album, a reorder id set
	// that does not match the album's assets, or a reparent that would
	// create a cycle.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrCollision means generated identifiers kept colliding with
	// existing rows until the retry budget ran out. Collisions are
	// retried internally, so seeing this error is unexpected.
	ErrCollision = errors.New("identifier collision")
)
