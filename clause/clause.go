package clause

// Clause is a named slot in a statement (WHERE, ORDER BY, ...) holding the
// merged expression for that slot.
type Clause struct {
	Name       string
	Expression Expression
}

// Interface is implemented by the predefined clauses below; MergeClause
// folds a newly added clause into the one already occupying its slot.
type Interface interface {
	Name() string
	Build(Builder)
	MergeClause(*Clause)
}

// Build writes the clause, prefixed by its name.
func (c Clause) Build(builder Builder) {
	if c.Name != "" {
		builder.WriteString(c.Name)
		builder.WriteByte(' ')
	}
	if c.Expression != nil {
		c.Expression.Build(builder)
	}
}
