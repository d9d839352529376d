package routes

import (
	"errors"

	"minimart/db"
	"minimart/logger"
	"minimart/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func adminGetAllOrders(c *fiber.Ctx) error {
	var orders []models.Order
	if err := db.DB.Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get orders",
		})
	}

	return c.JSON(orders)
}

func adminDeleteOrder(c *fiber.Ctx) error {
	return deleteOrder(c)
}

func adminGetAllUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := db.DB.Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get users",
		})
	}

	return c.JSON(users)
}

func adminDeleteUser(c *fiber.Ctx) error {
	return deleteUser(c)
}

func adminUpdateUserRole(c *fiber.Ctx) error {
	id := c.Params("id")

	type RoleRequest struct {
		Role string `json:"role" validate:"required"`
	}

	var req RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body: " + err.Error(),
		})
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid role: " + req.Role,
		})
	}

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find user: " + err.Error(),
		})
	}

	user.Role = role
	if err := db.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update user role: " + err.Error(),
		})
	}

	logger.L().Info("user role updated",
		zap.Uint("user_id", user.ID), zap.String("role", string(role)))
	return c.JSON(user)
}
