// errors.go defines the failure categories of the catalog.
//
// Only ErrStoreUnavailable is fatal. Write failures are returned to the
// caller, read failures are logged and absorbed, and malformed import
// entries are skipped. Not-found is never an error anywhere in the catalog.

package catalog

import "errors"

var (
	// ErrStoreUnavailable means the catalog database could not be opened or
	// initialised. Nothing else can proceed.
	ErrStoreUnavailable = errors.New("catalog store unavailable")

	// ErrWriteFailed wraps a storage error during a mutating operation. The
	// operation's transaction has been rolled back.
	ErrWriteFailed = errors.New("catalog write failed")

	// ErrReadFailed wraps a storage error during a query. It only appears in
	// logs; callers receive an empty result.
	ErrReadFailed = errors.New("catalog read failed")

	// ErrMalformedImportEntry marks an import entry that is not a path
	// mapped to a list of tags.
	ErrMalformedImportEntry = errors.New("malformed import entry")
)
