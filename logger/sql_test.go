package logger

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExplainSQL(t *testing.T) {
	placed := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	numbered := regexp.MustCompile(`\$(\d+)`)

	cases := []struct {
		SQL                string
		NumericPlaceholder *regexp.Regexp
		Vars               []interface{}
		Result             string
	}{
		{
			SQL:    "SELECT * FROM users WHERE name = ? AND age = ?",
			Vars:   []interface{}{"Alice", 25},
			Result: "SELECT * FROM users WHERE name = 'Alice' AND age = 25",
		},
		{
			SQL:                "SELECT * FROM users WHERE name = $1 AND age = $2",
			NumericPlaceholder: numbered,
			Vars:               []interface{}{"Alice", 25},
			Result:             "SELECT * FROM users WHERE name = 'Alice' AND age = 25",
		},
		{
			SQL:                "SELECT * FROM users WHERE age = $2 AND name = $1",
			NumericPlaceholder: numbered,
			Vars:               []interface{}{"Alice", 25},
			Result:             "SELECT * FROM users WHERE age = 25 AND name = 'Alice'",
		},
		{
			SQL:    "UPDATE users SET note = ? WHERE id = ?",
			Vars:   []interface{}{"it's", uint(7)},
			Result: `UPDATE users SET note = 'it\'s' WHERE id = 7`,
		},
		{
			SQL:    "SELECT * FROM orders WHERE placed_at > ? AND total > ? AND open = ? AND ref = ?",
			Vars:   []interface{}{placed, 1.5, true, nil},
			Result: "SELECT * FROM orders WHERE placed_at > '2024-03-01 10:30:00' AND total > 1.500000 AND open = true AND ref = NULL",
		},
		{
			SQL:    "SELECT * FROM files WHERE name = ? AND blob = ?",
			Vars:   []interface{}{[]byte("report"), []byte{0x01, 0x02}},
			Result: "SELECT * FROM files WHERE name = 'report' AND blob = '<binary>'",
		},
	}

	for _, c := range cases {
		assert.Equal(t, c.Result, ExplainSQL(c.SQL, c.NumericPlaceholder, `'`, c.Vars...))
	}
}

func TestExplainSQLKeepsVars(t *testing.T) {
	vars := []interface{}{"Alice", 25}
	_ = ExplainSQL("name = ? AND age = ?", nil, `'`, vars...)
	assert.Equal(t, []interface{}{"Alice", 25}, vars)
}
