// Package dialects provides the built-in SQL dialect formatters.
package dialects

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/relq/relq/clause"
	"github.com/relq/relq/logger"
)

// MySQL quotes identifiers with backticks and uses ? placeholders.
type MySQL struct{}

func (MySQL) Name() string {
	return "mysql"
}

func (MySQL) QuoteTo(writer clause.Writer, identifier string) {
	writer.WriteByte('`')
	writer.WriteString(strings.ReplaceAll(identifier, "`", "``"))
	writer.WriteByte('`')
}

func (d MySQL) QuoteAliasTo(writer clause.Writer, alias string) {
	d.QuoteTo(writer, alias)
}

func (MySQL) BindVarTo(writer clause.Writer, pos int) {
	writer.WriteByte('?')
}

func (MySQL) Explain(sql string, vars ...interface{}) string {
	return logger.ExplainSQL(sql, nil, `'`, vars...)
}

// Postgres quotes identifiers with double quotes and numbers its
// placeholders.
type Postgres struct{}

func (Postgres) Name() string {
	return "postgres"
}

func (Postgres) QuoteTo(writer clause.Writer, identifier string) {
	writer.WriteByte('"')
	writer.WriteString(strings.ReplaceAll(identifier, `"`, `""`))
	writer.WriteByte('"')
}

func (d Postgres) QuoteAliasTo(writer clause.Writer, alias string) {
	d.QuoteTo(writer, alias)
}

func (Postgres) BindVarTo(writer clause.Writer, pos int) {
	writer.WriteByte('$')
	writer.WriteString(strconv.Itoa(pos))
}

var numericPlaceholder = regexp.MustCompile(`\$(\d+)`)

func (Postgres) Explain(sql string, vars ...interface{}) string {
	return logger.ExplainSQL(sql, numericPlaceholder, `'`, vars...)
}
