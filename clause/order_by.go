package clause

type OrderByColumn struct {
	Column Column
	Desc   bool
}

// OrderBy orders results; columns accumulate in call order, so a later
// ThenBy composes after an earlier OrderBy.
type OrderBy struct {
	Columns []OrderByColumn
}

func (orderBy OrderBy) Name() string {
	return "ORDER BY"
}

func (orderBy OrderBy) Build(builder Builder) {
	for idx, column := range orderBy.Columns {
		if idx > 0 {
			builder.WriteByte(',')
		}
		builder.WriteQuoted(column.Column)
		if column.Desc {
			builder.WriteString(" DESC")
		}
	}
}

func (orderBy OrderBy) MergeClause(clause *Clause) {
	if v, ok := clause.Expression.(OrderBy); ok {
		copiedColumns := make([]OrderByColumn, len(v.Columns))
		copy(copiedColumns, v.Columns)
		orderBy.Columns = append(copiedColumns, orderBy.Columns...)
	}
	clause.Expression = orderBy
}
