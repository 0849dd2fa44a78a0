package clause_test

import (
	"fmt"
	"testing"

	"github.com/relq/relq/clause"
)

func TestLimit(t *testing.T) {
	limit10 := 10
	limit50 := 50

	results := []struct {
		Clauses []clause.Interface
		Result  string
		Vars    []interface{}
	}{
		{
			[]clause.Interface{clause.Limit{Limit: &limit10}},
			"LIMIT ?",
			[]interface{}{10},
		},
		{
			[]clause.Interface{clause.Limit{Offset: 20}},
			"OFFSET ?",
			[]interface{}{20},
		},
		{
			[]clause.Interface{clause.Limit{Limit: &limit10, Offset: 20}},
			"LIMIT ? OFFSET ?",
			[]interface{}{10, 20},
		},
		{
			// merging fills in the parts the earlier clause left unset
			[]clause.Interface{
				clause.Limit{Limit: &limit10},
				clause.Limit{Offset: 20},
			},
			"LIMIT ? OFFSET ?",
			[]interface{}{10, 20},
		},
		{
			// a later limit wins over the earlier one
			[]clause.Interface{
				clause.Limit{Limit: &limit10},
				clause.Limit{Limit: &limit50},
			},
			"LIMIT ?",
			[]interface{}{50},
		},
	}

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			checkBuildClauses(t, result.Clauses, result.Result, result.Vars)
		})
	}
}
