// Package sentinel holds shared sentinel errors used by storage
// implementations so callers can branch with errors.Is regardless of backend.
package sentinel

import (
	dErrors "yojana/pkg/domain-errors"
)

// ErrNotFound keeps storage-specific 404s consistent across in-memory and
// PostgreSQL implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "record not found")
