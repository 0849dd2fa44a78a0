package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeNamerColumnName(t *testing.T) {
	ns := SnakeNamer{}

	maps := map[string]string{
		"Name":        "name",
		"CreatedAt":   "created_at",
		"UserID":      "user_id",
		"HTTPStatus":  "http_status",
		"APIKey":      "api_key",
		"OrderItemID": "order_item_id",
		"X":           "x",
	}

	for name, want := range maps {
		assert.Equal(t, want, ns.ColumnName(name), name)
	}
}

func TestSnakeNamerTableName(t *testing.T) {
	ns := SnakeNamer{}
	assert.Equal(t, "orders", ns.TableName("Order"))
	assert.Equal(t, "people", ns.TableName("Person"))
	assert.Equal(t, "order_items", ns.TableName("OrderItem"))
}

func TestSnakeNamerSingularWithPrefix(t *testing.T) {
	ns := SnakeNamer{TablePrefix: "t_", SingularTable: true}
	assert.Equal(t, "t_order", ns.TableName("Order"))
}

func TestIdentityNamer(t *testing.T) {
	ns := IdentityNamer{}
	assert.Equal(t, "OrderItem", ns.TableName("OrderItem"))
	assert.Equal(t, "CreatedAt", ns.ColumnName("CreatedAt"))
}
