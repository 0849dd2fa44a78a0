package clause_test

import (
	"fmt"
	"testing"

	"github.com/relq/relq/clause"
)

func TestSelect(t *testing.T) {
	results := []struct {
		Clauses []clause.Interface
		Result  string
		Vars    []interface{}
	}{
		{
			[]clause.Interface{clause.Select{}},
			"SELECT *",
			nil,
		},
		{
			[]clause.Interface{clause.Select{Columns: []clause.Column{{Name: "Code"}, {Name: "Price"}}}},
			"SELECT `Product`.`Code`,`Product`.`Price`",
			nil,
		},
		{
			[]clause.Interface{clause.Select{Distinct: true, Columns: []clause.Column{{Name: "Code"}}}},
			"SELECT DISTINCT `Product`.`Code`",
			nil,
		},
		{
			[]clause.Interface{clause.Select{Columns: []clause.Column{
				{Table: "Product", Name: "Code", Alias: "product_code"},
			}}},
			"SELECT `Product`.`Code` AS `product_code`",
			nil,
		},
		{
			[]clause.Interface{clause.Select{Expression: clause.Expr{SQL: "COUNT(*)"}}},
			"SELECT COUNT(*)",
			nil,
		},
		{
			// the last Select wins
			[]clause.Interface{
				clause.Select{Columns: []clause.Column{{Name: "Code"}}},
				clause.Select{Columns: []clause.Column{{Name: "Price"}}},
			},
			"SELECT `Product`.`Price`",
			nil,
		},
	}

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			checkBuildClauses(t, result.Clauses, result.Result, result.Vars)
		})
	}
}
