package relq

import "context"

// Executor is the execution collaborator boundary: it receives compiled SQL
// text and an ordered parameter list, runs it, and materializes results.
// Row order must be preserved as returned by the engine; errors are
// propagated unmodified, the compiler never retries or swallows them.
type Executor interface {
	// Query runs sql and scans all rows into dest, a pointer to a slice.
	Query(ctx context.Context, dest interface{}, sql string, args ...interface{}) error
	// QueryScalar runs sql and scans the single value of the first row
	// into dest.
	QueryScalar(ctx context.Context, dest interface{}, sql string, args ...interface{}) error
	// QueryRows runs sql and returns a streaming, single-pass cursor.
	QueryRows(ctx context.Context, sql string, args ...interface{}) (Rows, error)
}

// Rows is a single-pass row cursor, not restartable once consumed.
type Rows interface {
	Next() bool
	// ScanInto materializes the current row into dest, a pointer to an
	// entity struct or scalar.
	ScanInto(dest interface{}) error
	Err() error
	Close() error
}
