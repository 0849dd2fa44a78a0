package clause

type JoinType string

const (
	InnerJoin JoinType = "INNER"
	LeftJoin  JoinType = "LEFT"
	RightJoin JoinType = "RIGHT"
	CrossJoin JoinType = "CROSS"
)

// Join is one join clause; ON holds the literal, already-quoted join
// predicate the join set was deduplicated by.
type Join struct {
	Type  JoinType
	Table Table
	ON    Expression
}

func (join Join) Build(builder Builder) {
	if join.Type != "" {
		builder.WriteString(string(join.Type))
		builder.WriteByte(' ')
	}
	builder.WriteString("JOIN ")
	builder.WriteQuoted(join.Table)
	if join.ON != nil {
		builder.WriteString(" ON ")
		join.ON.Build(builder)
	}
}

// From names the root table and carries the accumulated join graph.
type From struct {
	Table Table
	Joins []Join
}

func (from From) Name() string {
	return "FROM"
}

func (from From) Build(builder Builder) {
	builder.WriteQuoted(from.Table)
	for _, join := range from.Joins {
		builder.WriteByte(' ')
		join.Build(builder)
	}
}

// MergeClause appends joins onto the existing from clause.
func (from From) MergeClause(clause *Clause) {
	if v, ok := clause.Expression.(From); ok {
		if from.Table.Name == "" {
			from.Table = v.Table
		}
		from.Joins = append(append([]Join(nil), v.Joins...), from.Joins...)
	}
	clause.Expression = from
}
