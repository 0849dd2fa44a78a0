package relq

import (
	"reflect"

	"github.com/relq/relq/clause"
)

// Query is a single-use query compiler over entity type T. It accumulates
// filter, ordering, pagination and navigation state and compiles it into
// parameterized SQL when a terminal operation runs. A Query is built,
// configured and executed by one logical caller; independent queries may
// run concurrently.
type Query[T any] struct {
	stmt *Statement
}

// Q starts a query over entity type T on a session.
func Q[T any](session *Session) *Query[T] {
	var model T
	return &Query[T]{stmt: session.newStatement(reflect.TypeOf(model))}
}

// Statement exposes the underlying SQL builder, mainly for tests and
// extensions.
func (q *Query[T]) Statement() *Statement {
	return q.stmt
}

// Where adds filter expressions, combined with AND; use clause.Or and
// clause.Not for other shapes. Member references are resolved immediately,
// so configuration mistakes surface here, before any SQL is generated.
func (q *Query[T]) Where(exprs ...clause.Expression) *Query[T] {
	if len(exprs) > 0 {
		q.stmt.prepare(exprs...)
		q.stmt.AddClause(clause.Where{Exprs: exprs})
	}
	return q
}

// OrderBy appends an ascending ordering on a member path.
func (q *Query[T]) OrderBy(member string) *Query[T] {
	return q.order(member, false)
}

// OrderByDesc appends a descending ordering on a member path.
func (q *Query[T]) OrderByDesc(member string) *Query[T] {
	return q.order(member, true)
}

// ThenBy composes a secondary ascending ordering.
func (q *Query[T]) ThenBy(member string) *Query[T] {
	return q.order(member, false)
}

// ThenByDesc composes a secondary descending ordering.
func (q *Query[T]) ThenByDesc(member string) *Query[T] {
	return q.order(member, true)
}

func (q *Query[T]) order(member string, desc bool) *Query[T] {
	q.stmt.prepareColumn(member)
	q.stmt.AddClause(clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: member}, Desc: desc},
	}})
	return q
}

// Limit caps the number of rows.
func (q *Query[T]) Limit(rows int) *Query[T] {
	q.stmt.AddClause(clause.Limit{Limit: &rows})
	return q
}

// Offset skips rows before the limit window.
func (q *Query[T]) Offset(skip int) *Query[T] {
	q.stmt.AddClause(clause.Limit{Offset: skip})
	return q
}

// Include eagerly joins a reference member's target entity, given a dotted
// navigation path starting at the root entity. Requesting the same path
// twice never duplicates a join.
func (q *Query[T]) Include(path string) *Query[T] {
	if _, err := q.stmt.Include(path); err != nil {
		q.stmt.AddError(err)
	}
	return q
}

// Distinct makes the select emit DISTINCT over the mapped columns.
func (q *Query[T]) Distinct() *Query[T] {
	q.stmt.Distinct = true
	return q
}

// Error reports configuration failures accumulated so far.
func (q *Query[T]) Error() error {
	return q.stmt.Error
}

// ToSQL compiles the current state into the data query without executing
// it. Compilation is idempotent given unchanged state.
func (q *Query[T]) ToSQL() (string, []interface{}, error) {
	return q.stmt.buildSelect(nil, true)
}
