package comic

import "errors"

var (
	ErrComicNotFound = errors.New("comic not found")

	// ErrForbidden: the record exists but the principal is neither its
	// creator nor an admin. Existence is always checked first, so a
	// non-owner probing an existing record learns it exists but nothing
	// more.
	ErrForbidden = errors.New("not allowed to modify this comic")

	ErrNoCover = errors.New("no cover image set for this comic")
)
