package relq

import (
	"context"
	"time"

	"github.com/relq/relq/clause"
)

// Project compiles a select over only the referenced member paths and
// scans the rows as R. The column selection is always pushed into SQL;
// structural reshaping into R happens client side during materialization.
func Project[R, T any](ctx context.Context, q *Query[T], members ...string) ([]R, error) {
	return project[R](ctx, q, members, q.stmt.Distinct)
}

// DistinctOf is Project with a DISTINCT modifier.
func DistinctOf[R, T any](ctx context.Context, q *Query[T], members ...string) ([]R, error) {
	return project[R](ctx, q, members, true)
}

func project[R, T any](ctx context.Context, q *Query[T], members []string, distinct bool) ([]R, error) {
	stmt := q.stmt

	columns := make([]clause.Column, 0, len(members))
	for _, member := range members {
		column, err := stmt.resolveColumn(member, true)
		if err != nil {
			return nil, err
		}
		columns = append(columns, column)
	}

	wasDistinct := stmt.Distinct
	stmt.Distinct = distinct
	sql, vars, err := stmt.buildSelect(columns, true)
	stmt.Distinct = wasDistinct
	if err != nil {
		return nil, err
	}

	var out []R
	begin := time.Now()
	err = stmt.Session.executor.Query(ctx, &out, sql, vars...)
	q.trace(ctx, begin, sql, vars, int64(len(out)), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}
