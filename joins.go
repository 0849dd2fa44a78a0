package relq

import (
	"strings"

	"github.com/relq/relq/clause"
	"github.com/relq/relq/mapping"
)

// JoinData is one entry of a query's join graph: the literal join
// predicate the graph is deduplicated by, the resolved metadata of the
// join target, the alias it is selected under and the target's own scalar
// columns.
type JoinData struct {
	Predicate string
	Alias     string
	Target    *mapping.TypeDefinition
	Columns   []*mapping.ColumnDefinition
}

// Include resolves a navigation chain starting at the root entity into
// join clauses, one per hop, reusing any join whose predicate text is
// already part of the graph. It returns the JoinData of the final hop.
func (stmt *Statement) Include(path string) (*JoinData, error) {
	if stmt.Def == nil {
		if stmt.Error != nil {
			return nil, stmt.Error
		}
		return nil, &mapping.Error{Entity: stmt.Entity, Member: path, Reason: "statement has no metadata"}
	}

	var (
		current  = stmt.Def
		alias    = stmt.TableAlias
		walked   []string
		lastJoin *JoinData
	)

	for _, member := range strings.Split(path, ".") {
		walked = append(walked, member)

		column := current.Column(member)
		if column == nil || !column.Reference {
			return nil, &mapping.Error{Entity: current.Name, Member: member, Reason: "not a reference member"}
		}

		target, err := stmt.Session.factory.Resolve(column.ReferenceEntity)
		if err != nil {
			return nil, err
		}

		rightColumn := target.PrimaryColumn()
		if column.ReferenceMember != "" {
			targetColumn := target.Column(column.ReferenceMember)
			if targetColumn == nil {
				return nil, &mapping.Error{Entity: target.Name, Member: column.ReferenceMember, Reason: "join member is not mapped"}
			}
			rightColumn = targetColumn.DBName
		}

		joinAlias := strings.Join(walked, mapping.PathSeparator)
		predicate := stmt.joinPredicate(alias, column.DBName, joinAlias, rightColumn)

		join, ok := stmt.joinByPredicate[predicate]
		if !ok {
			join = &JoinData{
				Predicate: predicate,
				Alias:     joinAlias,
				Target:    target,
				Columns:   target.ScalarColumns(),
			}
			stmt.joinByPredicate[predicate] = join
			stmt.joinByAlias[joinAlias] = join
			stmt.Joins = append(stmt.Joins, join)
		}

		current = target
		alias = join.Alias
		lastJoin = join
	}
	return lastJoin, nil
}

// joinPredicate renders `left.leftColumn = right.rightColumn` with dialect
// quoting; the text doubles as the dedup key of the join graph.
func (stmt *Statement) joinPredicate(leftAlias, leftColumn, rightAlias, rightColumn string) string {
	var b strings.Builder
	stmt.quoteColumnTo(&b, leftAlias, leftColumn)
	b.WriteString(" = ")
	stmt.quoteColumnTo(&b, rightAlias, rightColumn)
	return b.String()
}

func (stmt *Statement) quoteColumnTo(writer clause.Writer, table, column string) {
	stmt.Session.dialector.QuoteTo(writer, table)
	writer.WriteByte('.')
	stmt.Session.dialector.QuoteTo(writer, column)
}
