package routes

import (
	"errors"
	"fmt"
	"time"

	"minimart/db"
	"minimart/logger"
	"minimart/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateOrderRequest struct {
	Total     float64   `json:"total_amount" validate:"gte=0"`
	OrderDate time.Time `json:"order_date"`
	Items     []struct {
		ProductID uint    `json:"product_id" validate:"required"`
		Quantity  int     `json:"quantity" validate:"required,gte=1"`
		UnitPrice float64 `json:"unit_price" validate:"gte=0"`
	} `json:"order_items" validate:"required,min=1,dive"`
}

// createOrder records a checkout. The order header is created first so
// line items can reference it; each line copies the client-declared
// quantity and unit price verbatim and snapshots the product's current
// name, description and image. The whole flow runs in one transaction;
// a missing product aborts it. The stored total and order date are the
// client's values; an omitted date falls back to server time.
func createOrder(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}

	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body: " + err.Error(),
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err.Error(),
		})
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find user: " + err.Error(),
		})
	}

	order := models.Order{
		UserID:    user.ID,
		Total:     req.Total,
		Status:    models.StatusPending,
		CreatedAt: req.OrderDate,
	}

	tx := db.DB.Begin()
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create order: " + err.Error(),
		})
	}

	var orderItems []models.OrderItem
	for _, item := range req.Items {
		var product models.Product
		if err := tx.First(&product, item.ProductID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": fmt.Sprintf("Product %d not found", item.ProductID),
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to find product: " + err.Error(),
			})
		}

		productID := product.ID
		orderItems = append(orderItems, models.OrderItem{
			OrderID:            order.ID,
			ProductID:          &productID,
			ProductName:        product.Name,
			ProductDescription: product.Description,
			ProductImage:       product.Image,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
		})
	}

	if err := tx.Create(&orderItems).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create order items: " + err.Error(),
		})
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to commit transaction",
		})
	}

	var fullOrder models.Order
	if err := db.DB.Preload("Items.Product").First(&fullOrder, order.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Order created but failed to load full details",
		})
	}

	logger.L().Info("order created",
		zap.Uint("order_id", fullOrder.ID),
		zap.Uint("user_id", user.ID),
		zap.Int("items", len(fullOrder.Items)),
		zap.Float64("total", fullOrder.Total))
	broadcastOrder(&fullOrder)

	return c.Status(fiber.StatusCreated).JSON(fullOrder)
}

func getOrdersByUser(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var orders []models.Order
	if err := db.DB.Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get orders",
		})
	}

	return c.JSON(orders)
}

// getOrdersForSeller returns orders containing at least one line whose
// live product belongs to the seller. Lines whose product was deleted
// no longer surface here; that history belongs to the buyer.
func getOrdersForSeller(c *fiber.Ctx) error {
	sellerID := c.Params("sellerId")

	var orders []models.Order
	if err := db.DB.Preload("Items.Product").
		Where("id IN (?)", db.DB.Model(&models.OrderItem{}).
			Select("order_items.order_id").
			Joins("JOIN products ON products.id = order_items.product_id").
			Where("products.seller_id = ?", sellerID)).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get seller orders",
		})
	}

	return c.JSON(orders)
}

func getOrder(c *fiber.Ctx) error {
	id := c.Params("id")

	var order models.Order
	if err := db.DB.Preload("Items.Product").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find order: " + err.Error(),
		})
	}

	return c.JSON(order)
}

func updateOrderStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	type StatusRequest struct {
		Status string `json:"status" validate:"required"`
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body: " + err.Error(),
		})
	}

	status, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid order status: " + req.Status,
		})
	}

	var order models.Order
	if err := db.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find order: " + err.Error(),
		})
	}

	order.Status = status
	if err := db.DB.Save(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update order status: " + err.Error(),
		})
	}

	logger.L().Info("order status updated",
		zap.Uint("order_id", order.ID), zap.String("status", string(status)))
	return c.JSON(order)
}

func deleteOrder(c *fiber.Ctx) error {
	id := c.Params("id")

	var order models.Order
	if err := db.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find order: " + err.Error(),
		})
	}

	tx := db.DB.Begin()
	if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete order items: " + err.Error(),
		})
	}
	if err := tx.Delete(&order).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete order: " + err.Error(),
		})
	}
	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to commit transaction",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order deleted successfully",
	})
}
