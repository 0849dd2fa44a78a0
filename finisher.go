package relq

import (
	"context"
	"time"

	"github.com/relq/relq/clause"
	"github.com/relq/relq/logger"
)

// Find executes the compiled select and returns all matching rows.
func (q *Query[T]) Find(ctx context.Context, conds ...clause.Expression) ([]T, error) {
	q.Where(conds...)

	sql, vars, err := q.stmt.buildSelect(nil, true)
	if err != nil {
		return nil, err
	}

	var out []T
	begin := time.Now()
	err = q.stmt.Session.executor.Query(ctx, &out, sql, vars...)
	q.trace(ctx, begin, sql, vars, int64(len(out)), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// First returns the first matching row, ErrRecordNotFound on an empty
// result.
func (q *Query[T]) First(ctx context.Context, conds ...clause.Expression) (T, error) {
	rows, err := q.Where(conds...).Limit(1).Find(ctx)
	var zero T
	if err != nil {
		return zero, err
	}
	if len(rows) == 0 {
		return zero, ErrRecordNotFound
	}
	return rows[0], nil
}

// FirstOrDefault returns the first matching row or the zero value, never a
// not-found error.
func (q *Query[T]) FirstOrDefault(ctx context.Context, conds ...clause.Expression) (T, error) {
	rows, err := q.Where(conds...).Limit(1).Find(ctx)
	var zero T
	if err != nil {
		return zero, err
	}
	if len(rows) == 0 {
		return zero, nil
	}
	return rows[0], nil
}

// Single returns the only matching row; ErrRecordNotFound on an empty
// result and ErrMultipleRecords when more than one row matches.
func (q *Query[T]) Single(ctx context.Context, conds ...clause.Expression) (T, error) {
	rows, err := q.Where(conds...).Limit(2).Find(ctx)
	var zero T
	if err != nil {
		return zero, err
	}
	switch len(rows) {
	case 0:
		return zero, ErrRecordNotFound
	case 1:
		return rows[0], nil
	default:
		return zero, ErrMultipleRecords
	}
}

// SingleOrDefault returns the only matching row, the zero value on an
// empty result, and ErrMultipleRecords when more than one row matches.
func (q *Query[T]) SingleOrDefault(ctx context.Context, conds ...clause.Expression) (T, error) {
	rows, err := q.Where(conds...).Limit(2).Find(ctx)
	var zero T
	if err != nil {
		return zero, err
	}
	switch len(rows) {
	case 0:
		return zero, nil
	case 1:
		return rows[0], nil
	default:
		return zero, ErrMultipleRecords
	}
}

// Count issues the SELECT COUNT variant over the current filter and join
// state, ignoring ordering and pagination.
func (q *Query[T]) Count(ctx context.Context, conds ...clause.Expression) (int64, error) {
	q.Where(conds...)

	sql, vars, err := q.stmt.buildCount()
	if err != nil {
		return 0, err
	}

	var total int64
	begin := time.Now()
	err = q.stmt.Session.executor.QueryScalar(ctx, &total, sql, vars...)
	q.trace(ctx, begin, sql, vars, 1, err)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Any reports whether any row matches.
func (q *Query[T]) Any(ctx context.Context, conds ...clause.Expression) (bool, error) {
	total, err := q.Count(ctx, conds...)
	if err != nil {
		return false, err
	}
	return total > 0, nil
}

// Rows executes the select and returns a lazy, single-pass enumerator over
// the result; it is not restartable once consumed.
func (q *Query[T]) Rows(ctx context.Context) (*Enumerator[T], error) {
	sql, vars, err := q.stmt.buildSelect(nil, true)
	if err != nil {
		return nil, err
	}

	begin := time.Now()
	rows, err := q.stmt.Session.executor.QueryRows(ctx, sql, vars...)
	q.trace(ctx, begin, sql, vars, -1, err)
	if err != nil {
		return nil, err
	}
	return &Enumerator[T]{rows: rows}, nil
}

// Page runs the two paginated queries: a count over the current filter
// state, then the data select limited to the page window. Both share
// filter and join state; any Limit or Offset set earlier on the query is
// superseded by the page window. page is 1-based.
func (q *Query[T]) Page(ctx context.Context, page, pageSize int) (Page[T], error) {
	result := Page[T]{CurrentPage: page, PageSize: pageSize}
	if page < 1 || pageSize < 1 {
		return result, ErrInvalidPage
	}

	total, err := q.Count(ctx)
	if err != nil {
		return result, err
	}
	result.TotalItems = total
	result.TotalPages = (total + int64(pageSize) - 1) / int64(pageSize)

	rows := pageSize
	q.stmt.SetClause("LIMIT", clause.Limit{Limit: &rows, Offset: (page - 1) * pageSize})

	result.Items, err = q.Find(ctx)
	return result, err
}

func (q *Query[T]) trace(ctx context.Context, begin time.Time, sql string, vars []interface{}, rows int64, err error) {
	session := q.stmt.Session
	session.logger.Trace(ctx, begin, func() (string, int64) {
		params := vars
		if filter, ok := session.logger.(logger.ParamsFilter); ok {
			sql, params = filter.ParamsFilter(ctx, sql, vars...)
		}
		return session.dialector.Explain(sql, params...), rows
	}, err)
}
