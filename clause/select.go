package clause

// Select lists the projected columns; an empty list selects *.
type Select struct {
	Distinct   bool
	Columns    []Column
	Expression Expression
}

func (s Select) Name() string {
	return "SELECT"
}

func (s Select) Build(builder Builder) {
	if s.Expression != nil {
		s.Expression.Build(builder)
		return
	}

	if s.Distinct {
		builder.WriteString("DISTINCT ")
	}

	if len(s.Columns) > 0 {
		for idx, column := range s.Columns {
			if idx > 0 {
				builder.WriteByte(',')
			}
			builder.WriteQuoted(column)
		}
	} else {
		builder.WriteByte('*')
	}
}

// MergeClause replaces the projection; the last Select wins.
func (s Select) MergeClause(clause *Clause) {
	clause.Expression = s
}
