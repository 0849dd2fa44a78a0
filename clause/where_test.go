package clause_test

import (
	"fmt"
	"testing"

	"github.com/relq/relq/clause"
)

func TestWhere(t *testing.T) {
	results := []struct {
		Clauses []clause.Interface
		Result  string
		Vars    []interface{}
	}{
		{
			[]clause.Interface{clause.Where{Exprs: []clause.Expression{
				clause.Eq{Column: "Code", Value: "F42"},
			}}},
			"WHERE `Product`.`Code` = ?",
			[]interface{}{"F42"},
		},
		{
			[]clause.Interface{clause.Where{Exprs: []clause.Expression{
				clause.Eq{Column: "Code", Value: "F42"},
				clause.Gt{Column: "Price", Value: 100},
			}}},
			"WHERE `Product`.`Code` = ? AND `Product`.`Price` > ?",
			[]interface{}{"F42", 100},
		},
		{
			// two Where clauses merge into one AND-joined filter
			[]clause.Interface{
				clause.Where{Exprs: []clause.Expression{clause.Eq{Column: "Code", Value: "F42"}}},
				clause.Where{Exprs: []clause.Expression{clause.Lte{Column: "Price", Value: 50}}},
			},
			"WHERE `Product`.`Code` = ? AND `Product`.`Price` <= ?",
			[]interface{}{"F42", 50},
		},
		{
			[]clause.Interface{clause.Where{Exprs: []clause.Expression{
				clause.Eq{Column: "Code", Value: "F42"},
				clause.Or(
					clause.Gt{Column: "Price", Value: 100},
					clause.Lt{Column: "Price", Value: 10},
				),
			}}},
			"WHERE `Product`.`Code` = ? AND (`Product`.`Price` > ? OR `Product`.`Price` < ?)",
			[]interface{}{"F42", 100, 10},
		},
		{
			[]clause.Interface{clause.Where{Exprs: []clause.Expression{
				clause.And(
					clause.Eq{Column: "Code", Value: "F42"},
					clause.Neq{Column: "Price", Value: 0},
				),
			}}},
			"WHERE (`Product`.`Code` = ? AND `Product`.`Price` <> ?)",
			[]interface{}{"F42", 0},
		},
		{
			[]clause.Interface{clause.Where{Exprs: []clause.Expression{
				clause.Not(clause.Eq{Column: "Code", Value: "F42"}),
			}}},
			"WHERE `Product`.`Code` <> ?",
			[]interface{}{"F42"},
		},
		{
			// expressions lacking their own negated form get a NOT prefix
			[]clause.Interface{clause.Where{Exprs: []clause.Expression{
				clause.Not(clause.Expr{SQL: "discontinued"}),
			}}},
			"WHERE NOT discontinued",
			nil,
		},
		{
			[]clause.Interface{clause.Where{Exprs: []clause.Expression{
				clause.Not(
					clause.Gt{Column: "Price", Value: 100},
					clause.Like{Column: "Code", Value: "F%"},
				),
			}}},
			"WHERE (`Product`.`Price` <= ? AND `Product`.`Code` NOT LIKE ?)",
			[]interface{}{100, "F%"},
		},
		{
			[]clause.Interface{clause.Where{Exprs: []clause.Expression{
				clause.Expr{SQL: "`Product`.`Price` * ? > ?", Vars: []interface{}{2, 100}},
			}}},
			"WHERE `Product`.`Price` * ? > ?",
			[]interface{}{2, 100},
		},
	}

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			checkBuildClauses(t, result.Clauses, result.Result, result.Vars)
		})
	}
}
