package routes

import (
	"errors"
	"strconv"

	"minimart/db"
	"minimart/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CartResponse carries the cart with its derived total.
type CartResponse struct {
	ID         uint              `json:"id"`
	UserID     uint              `json:"user_id"`
	Items      []models.CartItem `json:"items"`
	TotalPrice float64           `json:"total_price"`
}

func cartResponse(cart *models.Cart) CartResponse {
	items := cart.Items
	if items == nil {
		items = []models.CartItem{}
	}
	return CartResponse{
		ID:         cart.ID,
		UserID:     cart.UserID,
		Items:      items,
		TotalPrice: cart.TotalPrice(),
	}
}

// getOrCreateCart loads a user's cart with items and products,
// creating an empty cart on first use.
func getOrCreateCart(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.DB.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var user models.User
		if err := db.DB.First(&user, userID).Error; err != nil {
			return nil, err
		}
		cart = models.Cart{UserID: user.ID}
		if err := db.DB.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func parseUserID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.Atoi(c.Params("userId"))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid user id")
	}
	return uint(id), nil
}

func getCart(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}

	cart, err := getOrCreateCart(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get cart: " + err.Error(),
		})
	}

	return c.JSON(cartResponse(cart))
}

// addToCart merges into an existing line when the product is already
// in the cart, otherwise appends a new line.
func addToCart(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}

	productID, err := strconv.Atoi(c.Query("productId"))
	if err != nil || productID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing or invalid productId",
		})
	}
	quantity, err := strconv.Atoi(c.Query("quantity", "1"))
	if err != nil || quantity < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Quantity must be at least 1",
		})
	}

	cart, err := getOrCreateCart(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get cart: " + err.Error(),
		})
	}

	var product models.Product
	if err := db.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find product: " + err.Error(),
		})
	}

	var existing *models.CartItem
	for i := range cart.Items {
		if cart.Items[i].ProductID == product.ID {
			existing = &cart.Items[i]
			break
		}
	}

	if existing != nil {
		existing.Quantity += quantity
		if err := db.DB.Save(existing).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update cart item: " + err.Error(),
			})
		}
	} else {
		item := models.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  quantity,
		}
		if err := db.DB.Create(&item).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to add cart item: " + err.Error(),
			})
		}
	}

	return reloadCart(c, cart.ID)
}

// updateCartQuantity sets the quantity of a line; zero or below
// removes the line.
func updateCartQuantity(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}

	type UpdateQuantityRequest struct {
		ProductID uint `json:"product_id" validate:"required"`
		Quantity  int  `json:"quantity"`
	}

	var req UpdateQuantityRequest
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

	cart, err := getOrCreateCart(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get cart: " + err.Error(),
		})
	}

	var existing *models.CartItem
	for i := range cart.Items {
		if cart.Items[i].ProductID == req.ProductID {
			existing = &cart.Items[i]
			break
		}
	}
	if existing == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not in cart",
		})
	}

	if req.Quantity <= 0 {
		if err := db.DB.Delete(existing).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to remove cart item: " + err.Error(),
			})
		}
	} else {
		existing.Quantity = req.Quantity
		if err := db.DB.Save(existing).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update cart item: " + err.Error(),
			})
		}
	}

	return reloadCart(c, cart.ID)
}

func removeCartItem(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}
	itemID := c.Params("itemId")

	cart, err := getOrCreateCart(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get cart: " + err.Error(),
		})
	}

	if err := db.DB.Where("cart_id = ? AND id = ?", cart.ID, itemID).Delete(&models.CartItem{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove cart item: " + err.Error(),
		})
	}

	return reloadCart(c, cart.ID)
}

func removeCartProduct(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}
	productID := c.Params("productId")

	cart, err := getOrCreateCart(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get cart: " + err.Error(),
		})
	}

	if err := db.DB.Where("cart_id = ? AND product_id = ?", cart.ID, productID).Delete(&models.CartItem{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove cart item: " + err.Error(),
		})
	}

	return reloadCart(c, cart.ID)
}

func clearCart(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}

	var cart models.Cart
	if err := db.DB.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Nothing to clear
			return c.JSON(fiber.Map{"success": true})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get cart: " + err.Error(),
		})
	}

	if err := db.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to clear cart: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// reloadCart re-reads the cart with products and replies with the
// current state and total.
func reloadCart(c *fiber.Ctx, cartID uint) error {
	var cart models.Cart
	if err := db.DB.Preload("Items.Product").First(&cart, cartID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reload cart: " + err.Error(),
		})
	}
	return c.JSON(cartResponse(&cart))
}
