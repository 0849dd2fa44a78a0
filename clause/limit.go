package clause

// Limit represents a limit clause; a nil Limit with a positive Offset emits
// only the OFFSET part.
type Limit struct {
	Limit  *int
	Offset int
}

func (limit Limit) Name() string {
	return "LIMIT"
}

// Build constructs the LIMIT clause; the clause name is suppressed by
// MergeClause because LIMIT and OFFSET carry their own keywords.
func (limit Limit) Build(builder Builder) {
	if limit.Limit != nil && *limit.Limit >= 0 {
		builder.WriteString("LIMIT ")
		builder.AddVar(builder, *limit.Limit)
	}
	if limit.Offset > 0 {
		if limit.Limit != nil && *limit.Limit >= 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString("OFFSET ")
		builder.AddVar(builder, limit.Offset)
	}
}

// MergeClause merges two limit clauses, newly set parts win.
func (limit Limit) MergeClause(clause *Clause) {
	clause.Name = ""

	if v, ok := clause.Expression.(Limit); ok {
		if limit.Limit == nil && v.Limit != nil {
			limit.Limit = v.Limit
		}
		if limit.Offset == 0 && v.Offset > 0 {
			limit.Offset = v.Offset
		} else if limit.Offset < 0 {
			limit.Offset = 0
		}
	}
	clause.Expression = limit
}
