package clause

// Expression is anything that can write itself into a Builder.
type Expression interface {
	Build(builder Builder)
}

// NegationExpressionBuilder lets an expression emit its own negated form.
type NegationExpressionBuilder interface {
	NegationBuild(builder Builder)
}

// Writer is the SQL text sink.
type Writer interface {
	WriteByte(byte) error
	WriteString(string) (int, error)
}

// Builder builds SQL text and collects parameters. WriteQuoted resolves
// member paths against the current query's metadata and quotes through the
// dialect; AddVar appends parameters and writes their placeholders.
type Builder interface {
	Writer
	WriteQuoted(field interface{})
	AddVar(writer Writer, vars ...interface{})
	AddError(err error)
}

// Column names a column either by a dotted member path (Name only, resolved
// against metadata at build time) or fully resolved (Table alias + database
// name). Raw skips quoting entirely.
type Column struct {
	Table string
	Name  string
	Alias string
	Raw   bool
}

// Table names a table with an optional alias.
type Table struct {
	Name  string
	Alias string
	Raw   bool
}

// Expr is a raw SQL fragment; each ? is replaced by the next value's
// placeholder.
type Expr struct {
	SQL  string
	Vars []interface{}
}

func (expr Expr) Build(builder Builder) {
	var idx int
	for _, char := range []byte(expr.SQL) {
		if char == '?' && idx < len(expr.Vars) {
			builder.AddVar(builder, expr.Vars[idx])
			idx++
		} else {
			builder.WriteByte(char)
		}
	}
}
