package rem

import "errors"

// Sentinel errors for conditions callers branch on. Everything else is
// reported as a wrapped error with a human-readable message.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrOwnerHasProperties indicates an owner cannot be deleted because
	// properties still reference it.
	ErrOwnerHasProperties = errors.New("owner has associated properties")

	// ErrDuplicateName indicates an owner name is already in use
	// (names are unique case-insensitively).
	ErrDuplicateName = errors.New("owner name already in use")

	// ErrCodeSpaceExhausted indicates code generation could not find a free
	// code within the attempt budget.
	ErrCodeSpaceExhausted = errors.New("code space exhausted")
)
