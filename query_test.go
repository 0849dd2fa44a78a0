package relq_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relq/relq"
	"github.com/relq/relq/clause"
	"github.com/relq/relq/dialects"
	"github.com/relq/relq/mapping"
)

func TestToSQLPlainSelect(t *testing.T) {
	session := mysqlSession(t, &fakeExecutor{})

	sql, vars, err := relq.Q[Customer](session).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT `Customer`.`ID`,`Customer`.`Name`,`Customer`.`City` FROM `Customer`", sql)
	assert.Empty(t, vars)
}

func TestToSQLFilterOrderLimit(t *testing.T) {
	session := mysqlSession(t, &fakeExecutor{})

	sql, vars, err := relq.Q[Customer](session).
		Where(clause.Eq{Column: "Name", Value: "Alice"}).
		OrderByDesc("ID").
		Limit(10).
		Offset(5).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT `Customer`.`ID`,`Customer`.`Name`,`Customer`.`City` FROM `Customer`"+
			" WHERE `Customer`.`Name` = ? ORDER BY `Customer`.`ID` DESC LIMIT ? OFFSET ?",
		sql)
	assert.Equal(t, []interface{}{"Alice", 10, 5}, vars)
}

func TestToSQLNavigationAddsJoin(t *testing.T) {
	session := mysqlSession(t, &fakeExecutor{})

	// filtering on a member reached through a reference joins its table
	sql, vars, err := relq.Q[Order](session).
		Where(clause.Eq{Column: "Customer.City", Value: "Berlin"}).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT `Order`.`ID`,`Order`.`Number`,`Order`.`Total`,`Order`.`PlacedAt`,"+
			"`Customer`.`ID` AS `Customer__ID`,`Customer`.`Name` AS `Customer__Name`,`Customer`.`City` AS `Customer__City`"+
			" FROM `Order` LEFT JOIN `Customer` AS `Customer` ON `Order`.`CustomerID` = `Customer`.`ID`"+
			" WHERE `Customer`.`City` = ?",
		sql)
	assert.Equal(t, []interface{}{"Berlin"}, vars)
}

func TestToSQLIncludeDeduplicatesJoins(t *testing.T) {
	session := mysqlSession(t, &fakeExecutor{})

	q := relq.Q[Order](session).
		Include("Customer").
		Include("Customer").
		Where(clause.Eq{Column: "Customer.Name", Value: "Alice"})
	require.NoError(t, q.Error())
	assert.Len(t, q.Statement().Joins, 1)

	sql, _, err := q.ToSQL()
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(sql, "LEFT JOIN"))
}

func TestIncludeChain(t *testing.T) {
	session := mysqlSession(t, &fakeExecutor{})

	q := relq.Q[Order](session).Include("Customer.Country")
	require.NoError(t, q.Error())

	joins := q.Statement().Joins
	require.Len(t, joins, 2, "one join per navigation hop")
	assert.Equal(t, "Customer", joins[0].Alias)
	assert.Equal(t, "Customer__Country", joins[1].Alias)
	assert.Equal(t, "`Order`.`CustomerID` = `Customer`.`ID`", joins[0].Predicate)
	assert.Equal(t, "`Customer`.`CountryID` = `Customer__Country`.`ID`", joins[1].Predicate)

	// a chained include reuses the hop an earlier include already added
	q.Include("Customer")
	assert.Len(t, q.Statement().Joins, 2)
}

func TestToSQLSelfReferenceJoin(t *testing.T) {
	session := mysqlSession(t, &fakeExecutor{})

	// a self-referencing member navigates through an aliased join on the
	// same table
	sql, vars, err := relq.Q[Employee](session).
		Where(clause.Eq{Column: "Manager.Name", Value: "Root"}).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT `Employee`.`ID`,`Employee`.`Name`,"+
			"`Manager`.`ID` AS `Manager__ID`,`Manager`.`Name` AS `Manager__Name`"+
			" FROM `Employee` LEFT JOIN `Employee` AS `Manager` ON `Employee`.`ManagerID` = `Manager`.`ID`"+
			" WHERE `Manager`.`Name` = ?",
		sql)
	assert.Equal(t, []interface{}{"Root"}, vars)
}

func TestToSQLOrderByNavigation(t *testing.T) {
	session := mysqlSession(t, &fakeExecutor{})

	sql, _, err := relq.Q[Order](session).OrderBy("Customer.Name").ToSQL()
	require.NoError(t, err)
	assert.Contains(t, sql, "LEFT JOIN `Customer`")
	assert.True(t, strings.HasSuffix(sql, "ORDER BY `Customer`.`Name`"), sql)
}

func TestToSQLDistinct(t *testing.T) {
	session := mysqlSession(t, &fakeExecutor{})

	sql, _, err := relq.Q[Customer](session).Distinct().ToSQL()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sql, "SELECT DISTINCT "), sql)
}

func TestToSQLPostgresPlaceholders(t *testing.T) {
	session := newTestSession(t, &fakeExecutor{}, dialects.Postgres{})

	sql, vars, err := relq.Q[Customer](session).
		Where(clause.Eq{Column: "Name", Value: "Alice"}).
		Limit(3).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT "Customer"."ID","Customer"."Name","Customer"."City" FROM "Customer"`+
			` WHERE "Customer"."Name" = $1 LIMIT $2`,
		sql)
	assert.Equal(t, []interface{}{"Alice", 3}, vars)
}

func TestToSQLIdempotent(t *testing.T) {
	session := mysqlSession(t, &fakeExecutor{})

	q := relq.Q[Customer](session).Where(clause.Gt{Column: "ID", Value: 7})

	first, firstVars, err := q.ToSQL()
	require.NoError(t, err)
	second, secondVars, err := q.ToSQL()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, firstVars, secondVars)
}

func TestUnknownMemberSurfacesEarly(t *testing.T) {
	session := mysqlSession(t, &fakeExecutor{})

	q := relq.Q[Customer](session).Where(clause.Eq{Column: "Nickname", Value: "Al"})
	require.Error(t, q.Error())

	var mapErr *mapping.Error
	require.True(t, errors.As(q.Error(), &mapErr))
	assert.Equal(t, "Nickname", mapErr.Member)

	_, _, err := q.ToSQL()
	assert.Error(t, err, "a misconfigured query never compiles")
}

func TestIncludeNonReference(t *testing.T) {
	session := mysqlSession(t, &fakeExecutor{})

	q := relq.Q[Customer](session).Include("Name")
	require.Error(t, q.Error())

	var mapErr *mapping.Error
	require.True(t, errors.As(q.Error(), &mapErr))
	assert.Contains(t, mapErr.Reason, "not a reference")
}
