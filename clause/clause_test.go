package clause_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/relq/relq"
	"github.com/relq/relq/clause"
	"github.com/relq/relq/dialects"
	"github.com/relq/relq/logger"
)

// Product is the fixture entity the clause tests build against.
type Product struct {
	ID    uint
	Code  string
	Price float64
}

type noopExecutor struct{}

func (noopExecutor) Query(ctx context.Context, dest interface{}, sql string, args ...interface{}) error {
	return nil
}

func (noopExecutor) QueryScalar(ctx context.Context, dest interface{}, sql string, args ...interface{}) error {
	return nil
}

func (noopExecutor) QueryRows(ctx context.Context, sql string, args ...interface{}) (relq.Rows, error) {
	return nil, nil
}

var db *relq.Session

func init() {
	var err error
	db, err = relq.Open(relq.Config{
		Executor:  noopExecutor{},
		Dialector: dialects.MySQL{},
		Logger:    logger.Discard,
	})
	if err != nil {
		panic(err)
	}
}

func checkBuildClauses(t *testing.T, clauses []clause.Interface, result string, vars []interface{}) {
	t.Helper()

	var (
		buildNames    []string
		buildNamesMap = map[string]bool{}
		stmt          = relq.Q[Product](db).Statement()
	)
	for _, c := range clauses {
		if !buildNamesMap[c.Name()] {
			buildNames = append(buildNames, c.Name())
			buildNamesMap[c.Name()] = true
		}
		stmt.AddClause(c)
	}
	stmt.Build(buildNames...)

	if stmt.Error != nil {
		t.Fatalf("unexpected error building %q: %v", result, stmt.Error)
	}
	if got := stmt.SQL.String(); got != result {
		t.Errorf("SQL expected %q got %q", result, got)
	}
	if !reflect.DeepEqual(stmt.Vars, vars) {
		t.Errorf("vars expected %+v got %+v", vars, stmt.Vars)
	}
}
