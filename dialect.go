package relq

import "github.com/relq/relq/clause"

// Dialector is the dialect formatter collaborator: identifier and alias
// quoting plus placeholder style. It is consulted uniformly whenever the
// compiler emits a column or table reference.
type Dialector interface {
	Name() string
	// QuoteTo writes identifier quoted for the dialect.
	QuoteTo(writer clause.Writer, identifier string)
	// QuoteAliasTo writes a table or column alias quoted for the dialect.
	QuoteAliasTo(writer clause.Writer, alias string)
	// BindVarTo writes the placeholder for the pos-th parameter, 1-based.
	BindVarTo(writer clause.Writer, pos int)
	// Explain inlines vars into sql for log output.
	Explain(sql string, vars ...interface{}) string
}
