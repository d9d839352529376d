package routes

import (
	"net/http"
	"testing"
	"time"

	"minimart/db"
	"minimart/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderSnapshotsProduct(t *testing.T) {
	app := setupTestApp(t)
	user := createTestUser(t, "buyer", "buyer@example.com", models.RoleUser)
	product := createTestProduct(t, "Laptop", 10.0, 0)

	resp := doJSON(t, app, "POST", "/api/orders/user/1", fiber.Map{
		"total_amount": 20.0,
		"order_items": []fiber.Map{
			{"product_id": product.ID, "quantity": 2, "unit_price": 10.0},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var order models.Order
	decodeBody(t, resp, &order)

	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, 20.0, order.Total)
	assert.Equal(t, models.StatusPending, order.Status)
	require.Len(t, order.Items, 1)

	item := order.Items[0]
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 10.0, item.UnitPrice)
	assert.Equal(t, "Laptop", item.ProductName)
	assert.Equal(t, "Laptop description", item.ProductDescription)
	require.NotNil(t, item.ProductID)
	assert.Equal(t, product.ID, *item.ProductID)
}

func TestCreateOrderStoresClientOrderDate(t *testing.T) {
	app := setupTestApp(t)
	createTestUser(t, "buyer", "buyer@example.com", models.RoleUser)
	product := createTestProduct(t, "Laptop", 10.0, 0)

	declared := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	resp := doJSON(t, app, "POST", "/api/orders/user/1", fiber.Map{
		"total_amount": 10.0,
		"order_date":   declared.Format(time.RFC3339),
		"order_items": []fiber.Map{
			{"product_id": product.ID, "quantity": 1, "unit_price": 10.0},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	var stored models.Order
	require.NoError(t, db.DB.First(&stored).Error)
	assert.True(t, stored.CreatedAt.Equal(declared),
		"stored order date %v, want %v", stored.CreatedAt, declared)
}

func TestCreateOrderDefaultsDateToNow(t *testing.T) {
	app := setupTestApp(t)
	createTestUser(t, "buyer", "buyer@example.com", models.RoleUser)
	product := createTestProduct(t, "Laptop", 10.0, 0)

	resp := doJSON(t, app, "POST", "/api/orders/user/1", fiber.Map{
		"total_amount": 10.0,
		"order_items": []fiber.Map{
			{"product_id": product.ID, "quantity": 1, "unit_price": 10.0},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	var stored models.Order
	require.NoError(t, db.DB.First(&stored).Error)
	assert.WithinDuration(t, time.Now(), stored.CreatedAt, time.Minute)
}

func TestOrderSnapshotSurvivesProductEdit(t *testing.T) {
	app := setupTestApp(t)
	createTestUser(t, "buyer", "buyer@example.com", models.RoleUser)
	product := createTestProduct(t, "Old name", 5.0, 0)

	resp := doJSON(t, app, "POST", "/api/orders/user/1", fiber.Map{
		"total_amount": 5.0,
		"order_items": []fiber.Map{
			{"product_id": product.ID, "quantity": 1, "unit_price": 5.0},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, "PUT", "/api/products/1", fiber.Map{
		"name": "New name", "price": 99.0,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var item models.OrderItem
	require.NoError(t, db.DB.First(&item).Error)
	assert.Equal(t, "Old name", item.ProductName)
	assert.Equal(t, 5.0, item.UnitPrice)
}

func TestCreateOrderMissingProduct(t *testing.T) {
	app := setupTestApp(t)
	createTestUser(t, "buyer", "buyer@example.com", models.RoleUser)

	resp := doJSON(t, app, "POST", "/api/orders/user/1", fiber.Map{
		"total_amount": 10.0,
		"order_items": []fiber.Map{
			{"product_id": 42, "quantity": 1, "unit_price": 10.0},
		},
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// The aborted transaction must leave no header behind
	var count int64
	require.NoError(t, db.DB.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCreateOrderMissingUser(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, "POST", "/api/orders/user/99", fiber.Map{
		"total_amount": 10.0,
		"order_items": []fiber.Map{
			{"product_id": 1, "quantity": 1, "unit_price": 10.0},
		},
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestUpdateOrderStatus(t *testing.T) {
	app := setupTestApp(t)
	createTestUser(t, "buyer", "buyer@example.com", models.RoleUser)
	product := createTestProduct(t, "Gadget", 3.0, 0)

	resp := doJSON(t, app, "POST", "/api/orders/user/1", fiber.Map{
		"total_amount": 3.0,
		"order_items": []fiber.Map{
			{"product_id": product.ID, "quantity": 1, "unit_price": 3.0},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, "PUT", "/api/orders/1/status", fiber.Map{"status": "shipped"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var order models.Order
	decodeBody(t, resp, &order)
	assert.Equal(t, models.StatusShipped, order.Status)

	resp = doJSON(t, app, "PUT", "/api/orders/1/status", fiber.Map{"status": "TELEPORTED"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestGetOrdersByUser(t *testing.T) {
	app := setupTestApp(t)
	createTestUser(t, "buyer", "buyer@example.com", models.RoleUser)
	product := createTestProduct(t, "Book", 7.0, 0)

	for i := 0; i < 2; i++ {
		resp := doJSON(t, app, "POST", "/api/orders/user/1", fiber.Map{
			"total_amount": 7.0,
			"order_items": []fiber.Map{
				{"product_id": product.ID, "quantity": 1, "unit_price": 7.0},
			},
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, app, "GET", "/api/orders/user/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var orders []models.Order
	decodeBody(t, resp, &orders)
	assert.Len(t, orders, 2)
}

func TestGetOrdersForSeller(t *testing.T) {
	app := setupTestApp(t)
	createTestUser(t, "buyer", "buyer@example.com", models.RoleUser)
	seller := createTestUser(t, "seller", "seller@example.com", models.RoleSeller)
	mine := createTestProduct(t, "Mine", 5.0, seller.ID)
	other := createTestProduct(t, "Other", 5.0, 0)

	resp := doJSON(t, app, "POST", "/api/orders/user/1", fiber.Map{
		"total_amount": 5.0,
		"order_items": []fiber.Map{
			{"product_id": mine.ID, "quantity": 1, "unit_price": 5.0},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, "POST", "/api/orders/user/1", fiber.Map{
		"total_amount": 5.0,
		"order_items": []fiber.Map{
			{"product_id": other.ID, "quantity": 1, "unit_price": 5.0},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, "GET", "/api/orders/seller/2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var orders []models.Order
	decodeBody(t, resp, &orders)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Mine", orders[0].Items[0].ProductName)
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	app := setupTestApp(t)
	createTestUser(t, "buyer", "buyer@example.com", models.RoleUser)
	product := createTestProduct(t, "Chair", 12.0, 0)

	resp := doJSON(t, app, "POST", "/api/orders/user/1", fiber.Map{
		"total_amount": 12.0,
		"order_items": []fiber.Map{
			{"product_id": product.ID, "quantity": 1, "unit_price": 12.0},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, "DELETE", "/api/orders/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var count int64
	require.NoError(t, db.DB.Model(&models.OrderItem{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
