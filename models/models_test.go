package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	role, err = ParseRole("  Seller ")
	require.NoError(t, err)
	assert.Equal(t, RoleSeller, role)

	_, err = ParseRole("manager")
	assert.Error(t, err)

	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("delivered")
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, status)

	status, err = ParseOrderStatus("PENDING")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, status)

	_, err = ParseOrderStatus("LOST")
	assert.Error(t, err)
}

func TestCartTotalPrice(t *testing.T) {
	cart := Cart{
		Items: []CartItem{
			{Quantity: 2, Product: Product{Price: 10.0}},
			{Quantity: 1, Product: Product{Price: 5.5}},
		},
	}
	assert.Equal(t, 25.5, cart.TotalPrice())

	empty := Cart{}
	assert.Equal(t, 0.0, empty.TotalPrice())
}

func TestOrderItemDisplayName(t *testing.T) {
	item := OrderItem{ProductName: "Snapshot name", Product: &Product{Name: "Live name"}}
	assert.Equal(t, "Snapshot name", item.DisplayName())

	item = OrderItem{Product: &Product{Name: "Live name"}}
	assert.Equal(t, "Live name", item.DisplayName())

	item = OrderItem{}
	assert.Equal(t, "Unknown product", item.DisplayName())
}
