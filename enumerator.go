package relq

// Enumerator is a lazy, single-pass sequence over query results. Usage:
//
//	e, err := relq.Q[Order](session).Rows(ctx)
//	defer e.Close()
//	for e.Next() {
//		order := e.Value()
//		...
//	}
//	err = e.Err()
type Enumerator[T any] struct {
	rows    Rows
	current T
	err     error
}

// Next advances to the next row, materializing it; it returns false once
// the sequence is exhausted or a row failed to scan.
func (e *Enumerator[T]) Next() bool {
	if e.err != nil || !e.rows.Next() {
		return false
	}
	var value T
	if err := e.rows.ScanInto(&value); err != nil {
		e.err = err
		return false
	}
	e.current = value
	return true
}

// Value returns the row materialized by the last successful Next.
func (e *Enumerator[T]) Value() T {
	return e.current
}

// Err reports the first scan or cursor error.
func (e *Enumerator[T]) Err() error {
	if e.err != nil {
		return e.err
	}
	return e.rows.Err()
}

// Close releases the underlying cursor.
func (e *Enumerator[T]) Close() error {
	return e.rows.Close()
}
