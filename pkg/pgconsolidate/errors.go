package pgconsolidate

import (
	"errors"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := consolidator.Run(opts)
//	if errors.Is(err, pgconsolidate.ErrInputNotFound) {
//	    // Handle a missing schema dump
//	}
var (
	// ErrUsage indicates the command line was malformed (argument count, flag values).
	ErrUsage = errors.New("usage error")

	// ErrInputNotFound indicates the schema dump does not exist.
	ErrInputNotFound = errors.New("schema dump not found")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStaleOutput indicates the consolidated artifact on disk differs from
	// what the current dump produces.
	ErrStaleOutput = errors.New("consolidated migration is out of date")

	// ErrInvalidOutput indicates the emitted SQL failed to parse.
	ErrInvalidOutput = errors.New("consolidated migration does not parse")

	// ErrMigrationOrder indicates the migrations directory failed validation.
	ErrMigrationOrder = errors.New("migration order validation failed")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrVerifyFailed indicates the consolidated script failed to apply.
	ErrVerifyFailed = errors.New("verification failed")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors and ExitGeneralError (1) otherwise;
// the sentinels exist for callers and tests, not for distinct exit statuses.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitGeneralError
}
