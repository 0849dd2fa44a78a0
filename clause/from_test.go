package clause_test

import (
	"fmt"
	"testing"

	"github.com/relq/relq/clause"
)

func TestFrom(t *testing.T) {
	results := []struct {
		Clauses []clause.Interface
		Result  string
		Vars    []interface{}
	}{
		{
			[]clause.Interface{clause.From{Table: clause.Table{Name: "Product"}}},
			"FROM `Product`",
			nil,
		},
		{
			[]clause.Interface{clause.From{
				Table: clause.Table{Name: "Product"},
				Joins: []clause.Join{{
					Type:  clause.LeftJoin,
					Table: clause.Table{Name: "Category", Alias: "Category"},
					ON:    clause.Expr{SQL: "`Product`.`CategoryID` = `Category`.`ID`"},
				}},
			}},
			"FROM `Product` LEFT JOIN `Category` AS `Category` ON `Product`.`CategoryID` = `Category`.`ID`",
			nil,
		},
		{
			[]clause.Interface{clause.From{
				Table: clause.Table{Name: "Product"},
				Joins: []clause.Join{{
					Type:  clause.InnerJoin,
					Table: clause.Table{Name: "Stock"},
					ON:    clause.Expr{SQL: "`Product`.`ID` = `Stock`.`ProductID`"},
				}},
			}},
			"FROM `Product` INNER JOIN `Stock` ON `Product`.`ID` = `Stock`.`ProductID`",
			nil,
		},
		{
			// merging accumulates joins onto the existing from clause
			[]clause.Interface{
				clause.From{
					Table: clause.Table{Name: "Product"},
					Joins: []clause.Join{{
						Type:  clause.LeftJoin,
						Table: clause.Table{Name: "Category"},
						ON:    clause.Expr{SQL: "a = b"},
					}},
				},
				clause.From{
					Joins: []clause.Join{{
						Type:  clause.LeftJoin,
						Table: clause.Table{Name: "Stock"},
						ON:    clause.Expr{SQL: "c = d"},
					}},
				},
			},
			"FROM `Product` LEFT JOIN `Category` ON a = b LEFT JOIN `Stock` ON c = d",
			nil,
		},
	}

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			checkBuildClauses(t, result.Clauses, result.Result, result.Vars)
		})
	}
}
