package pgconsolidate

import "time"

// Exit codes for semantic error classification.
// Usage errors and missing input share code 1 with every other failure so
// wrapper scripts only need to test for a non-zero status.
const (
	ExitSuccess      = 0 // Consolidation, check or verification completed successfully
	ExitGeneralError = 1 // Any failure, including usage errors and missing input
	ExitPanic        = 3 // Internal panic (unexpected crash)
)

const (
	// DefaultOutputPath is the well-known location of the consolidated
	// initial-schema migration artifact, relative to the working directory.
	DefaultOutputPath = "backend/migrations/2025-02-01-000001_consolidated_initial_schema/up.sql"

	// DefaultMigrationsDir is the directory scanned by check-order.
	DefaultMigrationsDir = "backend/migrations"

	// DefaultBookkeepingTable is the migration-history table that is never
	// carried into the consolidated output.
	DefaultBookkeepingTable = "__diesel_schema_migrations"

	// DefaultVerifyTimeout bounds a whole verify run, connection included.
	DefaultVerifyTimeout = 2 * time.Minute

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 10 * time.Second

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3

	// MaxErrorPreviewLength is the maximum number of characters shown
	// when previewing the SQL around a failed statement.
	MaxErrorPreviewLength = 200
)
