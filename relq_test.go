package relq_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relq/relq"
	"github.com/relq/relq/dialects"
	"github.com/relq/relq/logger"
	"github.com/relq/relq/mapping"
)

type Country struct {
	ID   uint
	Code string
}

type Customer struct {
	ID      uint
	Name    string
	City    string
	Country Country `relq:"reference"`
}

type Order struct {
	ID       uint
	Number   string
	Total    float64
	Customer Customer `relq:"reference"`
	PlacedAt time.Time
}

type Employee struct {
	ID      uint
	Name    string
	Manager *Employee `relq:"reference"`
}

func init() {
	countryDesc, err := mapping.DescribeStruct(reflect.TypeOf(Country{}))
	if err != nil {
		panic(err)
	}
	customerDesc, err := mapping.DescribeStruct(reflect.TypeOf(Customer{}))
	if err != nil {
		panic(err)
	}
	employeeDesc, err := mapping.DescribeStruct(reflect.TypeOf(Employee{}))
	if err != nil {
		panic(err)
	}
	mapping.Register(countryDesc, customerDesc, employeeDesc)
}

// fakeExecutor records compiled SQL and plays back canned results.
type fakeExecutor struct {
	queries []string
	vars    [][]interface{}

	onQuery func(dest interface{})
	scalar  int64
	rows    relq.Rows
	err     error
}

var _ relq.Executor = (*fakeExecutor)(nil)

func (f *fakeExecutor) record(sql string, args []interface{}) {
	f.queries = append(f.queries, sql)
	f.vars = append(f.vars, args)
}

func (f *fakeExecutor) Query(ctx context.Context, dest interface{}, sql string, args ...interface{}) error {
	f.record(sql, args)
	if f.err != nil {
		return f.err
	}
	if f.onQuery != nil {
		f.onQuery(dest)
	}
	return nil
}

func (f *fakeExecutor) QueryScalar(ctx context.Context, dest interface{}, sql string, args ...interface{}) error {
	f.record(sql, args)
	if f.err != nil {
		return f.err
	}
	*dest.(*int64) = f.scalar
	return nil
}

func (f *fakeExecutor) QueryRows(ctx context.Context, sql string, args ...interface{}) (relq.Rows, error) {
	f.record(sql, args)
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func newTestSession(t *testing.T, exec relq.Executor, dialector relq.Dialector) *relq.Session {
	t.Helper()
	session, err := relq.Open(relq.Config{
		Executor:  exec,
		Dialector: dialector,
		Logger:    logger.Discard,
	})
	require.NoError(t, err)
	return session
}

func mysqlSession(t *testing.T, exec relq.Executor) *relq.Session {
	return newTestSession(t, exec, dialects.MySQL{})
}

func TestOpenValidation(t *testing.T) {
	_, err := relq.Open(relq.Config{Dialector: dialects.MySQL{}})
	assert.ErrorIs(t, err, relq.ErrMissingExecutor)

	_, err = relq.Open(relq.Config{Executor: &fakeExecutor{}})
	assert.ErrorIs(t, err, relq.ErrMissingDialector)

	session, err := relq.Open(relq.Config{Executor: &fakeExecutor{}, Dialector: dialects.MySQL{}})
	require.NoError(t, err)
	assert.NotNil(t, session.Factory())
	assert.NotNil(t, session.Logger(), "a default logger is wired when none is configured")
}

func TestSessionSharedFactory(t *testing.T) {
	factory := mapping.NewFactory(mapping.Conventions{}, nil, nil)
	session, err := relq.Open(relq.Config{
		Executor:  &fakeExecutor{},
		Dialector: dialects.MySQL{},
		Factory:   factory,
		Logger:    logger.Discard,
	})
	require.NoError(t, err)
	assert.Same(t, factory, session.Factory())
}
