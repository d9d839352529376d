package routes

import (
	"errors"

	"minimart/db"
	"minimart/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AddFavoriteRequest mirrors the frontend payload: a product object
// carrying the id.
type AddFavoriteRequest struct {
	Product struct {
		ID uint `json:"id" validate:"required"`
	} `json:"product" validate:"required"`
}

func getFavoritesByUser(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var favorites []models.Favorite
	if err := db.DB.Preload("Product").
		Where("user_id = ?", userID).
		Find(&favorites).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get favorites",
		})
	}

	return c.JSON(favorites)
}

func addFavorite(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}

	var req AddFavoriteRequest
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

	var product models.Product
	if err := db.DB.First(&product, req.Product.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find product: " + err.Error(),
		})
	}

	// One favorite per (user, product)
	var existing models.Favorite
	if err := db.DB.Where("user_id = ? AND product_id = ?", user.ID, product.ID).
		First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Product is already in favorites",
		})
	}

	favorite := models.Favorite{
		UserID:    user.ID,
		ProductID: product.ID,
	}

	if err := db.DB.Create(&favorite).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add favorite: " + err.Error(),
		})
	}

	if err := db.DB.Preload("Product").First(&favorite, favorite.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Favorite created but failed to load details",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(favorite)
}

func deleteFavorite(c *fiber.Ctx) error {
	id := c.Params("id")

	var favorite models.Favorite
	if err := db.DB.First(&favorite, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Favorite not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find favorite: " + err.Error(),
		})
	}

	if err := db.DB.Delete(&favorite).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete favorite: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Favorite removed successfully",
	})
}

func clearFavorites(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}

	if err := db.DB.Where("user_id = ?", userID).Delete(&models.Favorite{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to clear favorites: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
