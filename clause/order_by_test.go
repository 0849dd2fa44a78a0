package clause_test

import (
	"fmt"
	"testing"

	"github.com/relq/relq/clause"
)

func TestOrderBy(t *testing.T) {
	results := []struct {
		Clauses []clause.Interface
		Result  string
		Vars    []interface{}
	}{
		{
			[]clause.Interface{clause.OrderBy{Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "Price"}},
			}}},
			"ORDER BY `Product`.`Price`",
			nil,
		},
		{
			[]clause.Interface{clause.OrderBy{Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "Price"}, Desc: true},
			}}},
			"ORDER BY `Product`.`Price` DESC",
			nil,
		},
		{
			// merged orderings compose in call order
			[]clause.Interface{
				clause.OrderBy{Columns: []clause.OrderByColumn{
					{Column: clause.Column{Name: "Price"}, Desc: true},
				}},
				clause.OrderBy{Columns: []clause.OrderByColumn{
					{Column: clause.Column{Name: "Code"}},
				}},
			},
			"ORDER BY `Product`.`Price` DESC,`Product`.`Code`",
			nil,
		},
	}

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			checkBuildClauses(t, result.Clauses, result.Result, result.Vars)
		})
	}
}
