package relq

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/relq/relq/clause"
	"github.com/relq/relq/mapping"
)

// Statement is the SQL builder behind one Query: it owns the accumulated
// clauses, the join graph and the parameter list, and resolves dotted
// member paths against the root entity's metadata while writing.
type Statement struct {
	Session    *Session
	Entity     string
	Table      string
	TableAlias string
	Def        *mapping.TypeDefinition

	Clauses  map[string]clause.Clause
	Joins    []*JoinData
	Distinct bool

	SQL  strings.Builder
	Vars []interface{}

	Error error

	joinByPredicate map[string]*JoinData
	joinByAlias     map[string]*JoinData
}

func (s *Session) newStatement(modelType reflect.Type) *Statement {
	stmt := &Statement{
		Session:         s,
		Clauses:         map[string]clause.Clause{},
		joinByPredicate: map[string]*JoinData{},
		joinByAlias:     map[string]*JoinData{},
	}

	def, err := s.factory.ResolveType(modelType)
	if err != nil {
		stmt.AddError(err)
		return stmt
	}
	stmt.Def = def
	stmt.Entity = def.Name
	stmt.Table = def.Table
	stmt.TableAlias = def.Table
	return stmt
}

// AddError keeps the first error; later ones are chained onto it.
func (stmt *Statement) AddError(err error) {
	if err == nil {
		return
	}
	if stmt.Error == nil {
		stmt.Error = err
	} else {
		stmt.Error = fmt.Errorf("%v; %w", stmt.Error, err)
	}
}

func (stmt *Statement) WriteByte(c byte) error {
	return stmt.SQL.WriteByte(c)
}

func (stmt *Statement) WriteString(str string) (int, error) {
	return stmt.SQL.WriteString(str)
}

// WriteQuoted writes a quoted table or column reference, resolving member
// paths through the mapping metadata first.
func (stmt *Statement) WriteQuoted(field interface{}) {
	switch v := field.(type) {
	case clause.Table:
		if v.Raw {
			stmt.WriteString(v.Name)
		} else {
			stmt.Session.dialector.QuoteTo(&stmt.SQL, v.Name)
		}
		if v.Alias != "" {
			stmt.WriteString(" AS ")
			stmt.Session.dialector.QuoteAliasTo(&stmt.SQL, v.Alias)
		}
	case clause.Column:
		if v.Raw {
			if v.Table != "" {
				stmt.WriteString(v.Table)
				stmt.WriteByte('.')
			}
			stmt.WriteString(v.Name)
		} else {
			col := v
			if col.Table == "" {
				resolved, err := stmt.resolveColumn(col.Name, false)
				if err != nil {
					stmt.AddError(err)
					return
				}
				resolved.Alias = col.Alias
				col = resolved
			}
			stmt.Session.dialector.QuoteTo(&stmt.SQL, col.Table)
			stmt.WriteByte('.')
			stmt.Session.dialector.QuoteTo(&stmt.SQL, col.Name)
			if col.Alias != "" {
				stmt.WriteString(" AS ")
				stmt.Session.dialector.QuoteAliasTo(&stmt.SQL, col.Alias)
			}
		}
	case string:
		stmt.WriteQuoted(clause.Column{Name: v})
	default:
		stmt.Session.dialector.QuoteTo(&stmt.SQL, fmt.Sprint(field))
	}
}

// AddVar appends parameters and writes their placeholders.
func (stmt *Statement) AddVar(writer clause.Writer, vars ...interface{}) {
	for idx, v := range vars {
		if idx > 0 {
			writer.WriteByte(',')
		}
		switch v := v.(type) {
		case clause.Column, clause.Table:
			stmt.WriteQuoted(v)
		default:
			stmt.Vars = append(stmt.Vars, v)
			stmt.Session.dialector.BindVarTo(writer, len(stmt.Vars))
		}
	}
}

// AddClause merges a clause into its named slot.
func (stmt *Statement) AddClause(v clause.Interface) {
	c, ok := stmt.Clauses[v.Name()]
	if !ok {
		c.Name = v.Name()
	}
	v.MergeClause(&c)
	stmt.Clauses[v.Name()] = c
}

// SetClause replaces a slot outright, bypassing the merge rules.
func (stmt *Statement) SetClause(name string, expression clause.Expression) {
	c := stmt.Clauses[name]
	c.Name = name
	c.Expression = expression
	if name == "LIMIT" {
		c.Name = "" // LIMIT and OFFSET carry their own keywords
	}
	stmt.Clauses[name] = c
}

// Build writes the named clauses in order into the statement's SQL buffer.
func (stmt *Statement) Build(names ...string) {
	var firstClauseWritten bool
	for _, name := range names {
		if c, ok := stmt.Clauses[name]; ok && c.Expression != nil {
			if firstClauseWritten {
				stmt.WriteByte(' ')
			}
			firstClauseWritten = true
			c.Build(stmt)
		}
	}
}

func (stmt *Statement) reset() {
	stmt.SQL.Reset()
	stmt.Vars = nil
}

// resolveColumn maps a dotted member path to a fully resolved (alias,
// column) pair. Paths crossing a reference member resolve to the join's
// alias; with ensure set the join is added on demand, otherwise the
// navigation must already be part of the join graph.
func (stmt *Statement) resolveColumn(path string, ensure bool) (clause.Column, error) {
	if stmt.Def == nil {
		if stmt.Error != nil {
			return clause.Column{}, stmt.Error
		}
		return clause.Column{}, &mapping.Error{Entity: stmt.Entity, Member: path, Reason: "statement has no metadata"}
	}

	key := strings.ReplaceAll(path, ".", mapping.PathSeparator)
	col := stmt.Def.Column(key)
	if col == nil {
		return clause.Column{}, &mapping.Error{Entity: stmt.Entity, Member: path, Reason: "unknown member"}
	}
	if col.Complex {
		return clause.Column{}, &mapping.Error{Entity: stmt.Entity, Member: path, Reason: "embedded member is not a column"}
	}

	// Longest reference prefix decides which table the column lives on.
	chain := col.Chain
	refEnd := 0
	for i := 1; i < len(chain); i++ {
		prefix := strings.Join(chain[:i], mapping.PathSeparator)
		if pc := stmt.Def.Column(prefix); pc != nil && pc.Reference {
			refEnd = i
		}
	}
	if refEnd == 0 {
		return clause.Column{Table: stmt.TableAlias, Name: col.DBName}, nil
	}

	alias := strings.Join(chain[:refEnd], mapping.PathSeparator)
	join, ok := stmt.joinByAlias[alias]
	if !ok {
		if !ensure {
			return clause.Column{}, &mapping.Error{Entity: stmt.Entity, Member: path, Reason: "navigation not included"}
		}
		var err error
		join, err = stmt.Include(strings.Join(chain[:refEnd], "."))
		if err != nil {
			return clause.Column{}, err
		}
	}

	name := col.DBName
	targetKey := strings.Join(chain[refEnd:], mapping.PathSeparator)
	if tcol := join.Target.Column(targetKey); tcol != nil {
		name = tcol.DBName
	}
	return clause.Column{Table: join.Alias, Name: name}, nil
}

// prepare eagerly resolves the member references of known expression types,
// surfacing unknown members immediately and registering any joins the
// references need before the FROM clause is rendered.
func (stmt *Statement) prepare(exprs ...clause.Expression) {
	for _, expr := range exprs {
		switch e := expr.(type) {
		case clause.Eq:
			stmt.prepareColumn(e.Column)
		case clause.Neq:
			stmt.prepareColumn(e.Column)
		case clause.Gt:
			stmt.prepareColumn(e.Column)
		case clause.Gte:
			stmt.prepareColumn(e.Column)
		case clause.Lt:
			stmt.prepareColumn(e.Column)
		case clause.Lte:
			stmt.prepareColumn(e.Column)
		case clause.Like:
			stmt.prepareColumn(e.Column)
		case clause.IN:
			stmt.prepareColumn(e.Column)
		case clause.AndConditions:
			stmt.prepare(e.Exprs...)
		case clause.OrConditions:
			stmt.prepare(e.Exprs...)
		case clause.NotConditions:
			stmt.prepare(e.Exprs...)
		case clause.Where:
			stmt.prepare(e.Exprs...)
		}
	}
}

func (stmt *Statement) prepareColumn(column interface{}) {
	switch v := column.(type) {
	case string:
		if _, err := stmt.resolveColumn(v, true); err != nil {
			stmt.AddError(err)
		}
	case clause.Column:
		if v.Table == "" && !v.Raw {
			if _, err := stmt.resolveColumn(v.Name, true); err != nil {
				stmt.AddError(err)
			}
		}
	}
}

// selectColumns is the full projection of a joined select: the root
// entity's own scalar columns followed by each join target's, aliased with
// the navigation path so materialization can route them.
func (stmt *Statement) selectColumns() []clause.Column {
	var cols []clause.Column
	for _, c := range stmt.Def.ScalarColumns() {
		cols = append(cols, clause.Column{Table: stmt.TableAlias, Name: c.DBName, Alias: c.Alias})
	}
	for _, join := range stmt.Joins {
		for _, c := range join.Columns {
			cols = append(cols, clause.Column{
				Table: join.Alias,
				Name:  c.DBName,
				Alias: join.Alias + mapping.PathSeparator + c.DBName,
			})
		}
	}
	return cols
}

func (stmt *Statement) fromClause() clause.From {
	from := clause.From{Table: clause.Table{Name: stmt.Table}}
	for _, join := range stmt.Joins {
		from.Joins = append(from.Joins, clause.Join{
			Type:  clause.LeftJoin,
			Table: clause.Table{Name: join.Target.Table, Alias: join.Alias},
			ON:    clause.Expr{SQL: join.Predicate},
		})
	}
	return from
}

var selectBuildOrder = []string{"SELECT", "FROM", "WHERE", "ORDER BY", "LIMIT"}
var countBuildOrder = []string{"SELECT", "FROM", "WHERE"}

// buildSelect compiles the data query. projection, when non-nil, replaces
// the default column list; withOrderLimit is dropped for count-style
// queries.
func (stmt *Statement) buildSelect(projection []clause.Column, withOrderLimit bool) (string, []interface{}, error) {
	if stmt.Error != nil {
		return "", nil, stmt.Error
	}
	stmt.reset()

	columns := projection
	if columns == nil {
		columns = stmt.selectColumns()
	}
	stmt.SetClause("SELECT", clause.Select{Distinct: stmt.Distinct, Columns: columns})
	stmt.SetClause("FROM", stmt.fromClause())

	if withOrderLimit {
		stmt.Build(selectBuildOrder...)
	} else {
		stmt.Build(countBuildOrder...)
	}
	if stmt.Error != nil {
		return "", nil, stmt.Error
	}
	return strings.TrimSpace(stmt.SQL.String()), stmt.Vars, nil
}

// buildCount compiles the count query: same filter and join state, no
// ordering or pagination.
func (stmt *Statement) buildCount() (string, []interface{}, error) {
	if stmt.Error != nil {
		return "", nil, stmt.Error
	}
	stmt.reset()

	stmt.SetClause("SELECT", clause.Select{Expression: clause.Expr{SQL: "COUNT(*)"}})
	stmt.SetClause("FROM", stmt.fromClause())
	stmt.Build(countBuildOrder...)
	if stmt.Error != nil {
		return "", nil, stmt.Error
	}
	return strings.TrimSpace(stmt.SQL.String()), stmt.Vars, nil
}
