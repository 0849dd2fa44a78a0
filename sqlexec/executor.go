// Package sqlexec is the database/sql backed execution collaborator: it
// runs compiled SQL and materializes rows into entity structs using the
// shared mapping metadata.
package sqlexec

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"github.com/relq/relq"
	"github.com/relq/relq/mapping"
)

// Executor runs queries against a *sql.DB. It preserves row order as
// returned by the engine and propagates driver errors unmodified.
type Executor struct {
	DB      *sql.DB
	Factory *mapping.Factory
}

var _ relq.Executor = (*Executor)(nil)

// New creates an Executor sharing the session's metadata factory.
func New(db *sql.DB, factory *mapping.Factory) *Executor {
	return &Executor{DB: db, Factory: factory}
}

// Query runs sql and scans all rows into dest, a pointer to a slice of
// entity structs or scalars.
func (e *Executor) Query(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr || destValue.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("sqlexec: dest must be a pointer to a slice, got %T", dest)
	}

	rows, err := e.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	sliceValue := destValue.Elem()
	elemType := sliceValue.Type().Elem()

	scanner, err := e.scannerFor(elemType, rows)
	if err != nil {
		return err
	}

	for rows.Next() {
		elem := reflect.New(elemType).Elem()
		if err := scanner.scan(rows, elem); err != nil {
			return err
		}
		sliceValue.Set(reflect.Append(sliceValue, elem))
	}
	return rows.Err()
}

// QueryScalar runs sql and scans the single value of the first row.
func (e *Executor) QueryScalar(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	var raw interface{}
	if err := e.DB.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		return err
	}
	return assign(reflect.ValueOf(dest).Elem(), raw, false)
}

// QueryRows runs sql and returns a streaming single-pass cursor.
func (e *Executor) QueryRows(ctx context.Context, query string, args ...interface{}) (relq.Rows, error) {
	rows, err := e.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &RowCursor{executor: e, rows: rows}, nil
}

// RowCursor adapts *sql.Rows to the streaming cursor contract.
type RowCursor struct {
	executor *Executor
	rows     *sql.Rows
	scanner  *rowScanner
}

func (c *RowCursor) Next() bool {
	return c.rows.Next()
}

// ScanInto materializes the current row into dest, a pointer to an entity
// struct or scalar; the column routing is built once on first use.
func (c *RowCursor) ScanInto(dest interface{}) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr {
		return fmt.Errorf("sqlexec: dest must be a pointer, got %T", dest)
	}
	elem := destValue.Elem()

	if c.scanner == nil {
		scanner, err := c.executor.scannerFor(elem.Type(), c.rows)
		if err != nil {
			return err
		}
		c.scanner = scanner
	}
	return c.scanner.scan(c.rows, elem)
}

func (c *RowCursor) Err() error {
	return c.rows.Err()
}

func (c *RowCursor) Close() error {
	return c.rows.Close()
}

type columnRoute struct {
	chain    []string
	forceUTC bool
}

// rowScanner routes result columns to struct member chains using the root
// entity's metadata: plain columns by their database name, joined columns
// by the navigation-path alias the compiler selected them under.
type rowScanner struct {
	columns []string
	routes  []*columnRoute // nil entry = column is dropped
	scalar  bool
}

func (e *Executor) scannerFor(elemType reflect.Type, rows *sql.Rows) (*rowScanner, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	baseType := elemType
	for baseType.Kind() == reflect.Ptr {
		baseType = baseType.Elem()
	}
	if baseType.Kind() != reflect.Struct || baseType == timeType {
		if len(columns) != 1 {
			return nil, fmt.Errorf("sqlexec: scanning %d columns into scalar %s", len(columns), elemType)
		}
		return &rowScanner{columns: columns, scalar: true}, nil
	}

	def, err := e.Factory.ResolveType(baseType)
	if err != nil {
		return nil, err
	}

	routesByName := routeTable(def)
	scanner := &rowScanner{columns: columns, routes: make([]*columnRoute, len(columns))}
	for idx, name := range columns {
		if route, ok := routesByName[name]; ok {
			scanner.routes[idx] = route
		} else if _, ok := baseType.FieldByName(name); ok && !def.ExplicitColumns {
			scanner.routes[idx] = &columnRoute{chain: []string{name}}
		}
	}
	return scanner, nil
}

// routeTable indexes every scalar column under the name it appears as in a
// result set.
func routeTable(def *mapping.TypeDefinition) map[string]*columnRoute {
	routes := map[string]*columnRoute{}
	for _, key := range def.ColumnOrder {
		col := def.Columns[key]
		if col.Ignored || col.Complex || col.Reference {
			continue
		}

		route := &columnRoute{chain: col.Chain, forceUTC: col.ForceUTC}
		refEnd := referencePrefix(def, col.Chain)
		if refEnd == 0 {
			routes[col.DBName] = route
			if col.Alias != "" {
				routes[col.Alias] = route
			}
		} else {
			alias := strings.Join(col.Chain[:refEnd], mapping.PathSeparator) + mapping.PathSeparator + col.DBName
			routes[alias] = route
		}
	}
	return routes
}

func referencePrefix(def *mapping.TypeDefinition, chain []string) int {
	refEnd := 0
	for i := 1; i < len(chain); i++ {
		prefix := strings.Join(chain[:i], mapping.PathSeparator)
		if pc := def.Column(prefix); pc != nil && pc.Reference {
			refEnd = i
		}
	}
	return refEnd
}

func (s *rowScanner) scan(rows *sql.Rows, elem reflect.Value) error {
	holders := make([]interface{}, len(s.columns))
	values := make([]interface{}, len(s.columns))
	for i := range holders {
		values[i] = &holders[i]
	}
	if err := rows.Scan(values...); err != nil {
		return err
	}

	if s.scalar {
		return assign(indirect(elem), holders[0], false)
	}

	root := indirect(elem)
	for idx, route := range s.routes {
		if route == nil {
			continue
		}
		field, err := fieldByChain(root, route.chain)
		if err != nil {
			return err
		}
		if err := assign(field, holders[idx], route.forceUTC); err != nil {
			return fmt.Errorf("sqlexec: column %s: %w", s.columns[idx], err)
		}
	}
	return nil
}

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		v = v.Elem()
	}
	return v
}

func fieldByChain(root reflect.Value, chain []string) (reflect.Value, error) {
	v := root
	for _, name := range chain {
		v = indirect(v)
		v = v.FieldByName(name)
		if !v.IsValid() {
			return v, fmt.Errorf("no field %s for chain %v", name, chain)
		}
	}
	return v, nil
}

var timeType = reflect.TypeOf(time.Time{})

// assign converts one driver value into a struct field, parsing time
// strings the way drivers without parseTime deliver them and normalizing
// force-UTC columns.
func assign(field reflect.Value, raw interface{}, forceUTC bool) error {
	field = indirect(field)
	if raw == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}

	if field.Type() == timeType {
		switch v := raw.(type) {
		case time.Time:
			if forceUTC {
				v = v.UTC()
			}
			field.Set(reflect.ValueOf(v))
			return nil
		case []byte:
			raw = string(v)
		}
		if str, ok := raw.(string); ok {
			t, err := now.Parse(str)
			if err != nil {
				return fmt.Errorf("cannot parse %q as time: %w", str, err)
			}
			if forceUTC {
				t = t.UTC()
			}
			field.Set(reflect.ValueOf(t))
			return nil
		}
		return fmt.Errorf("cannot assign %T to time.Time", raw)
	}

	value := reflect.ValueOf(raw)
	if value.Type().AssignableTo(field.Type()) {
		field.Set(value)
		return nil
	}
	if value.Type().ConvertibleTo(field.Type()) {
		field.Set(value.Convert(field.Type()))
		return nil
	}
	if b, ok := raw.([]byte); ok {
		str := reflect.ValueOf(string(b))
		if str.Type().ConvertibleTo(field.Type()) {
			field.Set(str.Convert(field.Type()))
			return nil
		}
	}
	return fmt.Errorf("cannot assign %T to %s", raw, field.Type())
}
