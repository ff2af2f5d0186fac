// Package filesystem provides the file access abstraction used by the
// consolidation driver and the migration-order validator.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
