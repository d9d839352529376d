package routes

import (
	"errors"

	"minimart/db"
	"minimart/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateReviewRequest struct {
	ProductID uint   `json:"product_id" validate:"required"`
	UserID    uint   `json:"user_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// ReviewSummary reports the aggregate rating of a product. Average is
// zero when no reviews exist.
type ReviewSummary struct {
	ProductID     uint    `json:"product_id"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

func createReview(c *fiber.Ctx) error {
	var req CreateReviewRequest
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

	var product models.Product
	if err := db.DB.First(&product, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find product: " + err.Error(),
		})
	}

	var user models.User
	if err := db.DB.First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find user: " + err.Error(),
		})
	}

	// One review per (product, user)
	var existing models.Review
	if err := db.DB.Where("product_id = ? AND user_id = ?", req.ProductID, req.UserID).
		First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "You have already reviewed this product",
		})
	}

	review := models.Review{
		ProductID: req.ProductID,
		UserID:    req.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := db.DB.Create(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create review: " + err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

func getReviewsByProduct(c *fiber.Ctx) error {
	productID := c.Params("productId")

	var reviews []models.Review
	if err := db.DB.Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get reviews",
		})
	}

	return c.JSON(reviews)
}

func getReviewsByUser(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var reviews []models.Review
	if err := db.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get reviews",
		})
	}

	return c.JSON(reviews)
}

func getReviewSummary(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("productId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product id",
		})
	}

	var count int64
	if err := db.DB.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count reviews",
		})
	}

	// COALESCE turns the NULL average of zero rows into 0
	var average float64
	if err := db.DB.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&average).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute average rating",
		})
	}

	return c.JSON(ReviewSummary{
		ProductID:     uint(productID),
		AverageRating: average,
		ReviewCount:   count,
	})
}

func updateReview(c *fiber.Ctx) error {
	id := c.Params("id")

	var review models.Review
	if err := db.DB.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Review not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find review: " + err.Error(),
		})
	}

	type UpdateReviewRequest struct {
		Rating  int    `json:"rating" validate:"required,min=1,max=5"`
		Comment string `json:"comment"`
	}

	var req UpdateReviewRequest
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

	review.Rating = req.Rating
	review.Comment = req.Comment

	if err := db.DB.Save(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update review: " + err.Error(),
		})
	}

	return c.JSON(review)
}

func deleteReview(c *fiber.Ctx) error {
	id := c.Params("id")

	var review models.Review
	if err := db.DB.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Review not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find review: " + err.Error(),
		})
	}

	if err := db.DB.Delete(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete review: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Review deleted successfully",
	})
}
