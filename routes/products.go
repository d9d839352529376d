package routes

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"minimart/db"
	"minimart/logger"
	"minimart/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProductListResponse struct {
	Products []models.Product `json:"products"`
	Total    int              `json:"total"`
	Skip     int              `json:"skip"`
	Limit    int              `json:"limit"`
}

// BulkUploadResponse reports per-row results of a CSV import.
type BulkUploadResponse struct {
	Created int      `json:"created"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

func createProduct(c *fiber.Ctx) error {
	product := new(models.Product)

	if err := c.BodyParser(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body: " + err.Error(),
		})
	}

	if err := validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err.Error(),
		})
	}

	if err := db.DB.Create(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create product: " + err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

func getAllProducts(c *fiber.Ctx) error {
	skip, _ := strconv.Atoi(c.Query("skip", "0"))
	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	var total int64
	if err := db.DB.Model(&models.Product{}).Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count products",
		})
	}

	dbQuery := db.DB.Preload("Category")
	if skip > 0 {
		dbQuery = dbQuery.Offset(skip)
	}
	if limit > 0 {
		dbQuery = dbQuery.Limit(limit)
	}

	var products []models.Product
	if err := dbQuery.Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get products",
		})
	}

	return c.JSON(ProductListResponse{
		Products: products,
		Total:    int(total),
		Skip:     skip,
		Limit:    limit,
	})
}

func getProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var product models.Product
	if err := db.DB.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find product: " + err.Error(),
		})
	}

	return c.JSON(product)
}

// searchProducts filters by name substring (case-insensitive),
// category, both, or neither.
func searchProducts(c *fiber.Ctx) error {
	query := c.Query("query")
	categoryID := c.Query("categoryId")

	dbQuery := db.DB.Preload("Category")
	if query != "" {
		dbQuery = dbQuery.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	if categoryID != "" {
		dbQuery = dbQuery.Where("category_id = ?", categoryID)
	}

	var products []models.Product
	if err := dbQuery.Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search products",
		})
	}

	return c.JSON(fiber.Map{"products": products})
}

func getProductsForSeller(c *fiber.Ctx) error {
	sellerID := c.Params("sellerId")

	var products []models.Product
	if err := db.DB.Preload("Category").Where("seller_id = ?", sellerID).Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get seller products",
		})
	}

	return c.JSON(fiber.Map{"products": products})
}

func updateProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var product models.Product
	if err := db.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find product: " + err.Error(),
		})
	}

	type UpdateProductRequest struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Image       string   `json:"image"`
		Price       *float64 `json:"price"`
		CategoryID  *uint    `json:"category_id"`
	}

	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body: " + err.Error(),
		})
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Image != "" {
		product.Image = req.Image
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}

	if err := db.DB.Save(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update product: " + err.Error(),
		})
	}

	return c.JSON(product)
}

// deleteProduct removes a product and everything hanging off it in a
// single transaction: cart items and favorites are hard-deleted, order
// items keep their snapshots and get their product reference nulled.
func deleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var product models.Product
	if err := db.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find product: " + err.Error(),
		})
	}

	tx := db.DB.Begin()

	if err := tx.Where("product_id = ?", product.ID).Delete(&models.CartItem{}).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove cart items: " + err.Error(),
		})
	}

	if err := tx.Where("product_id = ?", product.ID).Delete(&models.Favorite{}).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove favorites: " + err.Error(),
		})
	}

	if err := tx.Model(&models.OrderItem{}).
		Where("product_id = ?", product.ID).
		Update("product_id", nil).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to detach order items: " + err.Error(),
		})
	}

	if err := tx.Delete(&product).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete product: " + err.Error(),
		})
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to commit transaction",
		})
	}

	logger.L().Info("product deleted", zap.Uint("product_id", product.ID))
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
	})
}

// bulkUploadProducts imports products from a CSV file with columns
// name,description,price,imageUrl,categoryName. The header row is
// skipped. Rows fail independently; the import never aborts as a whole.
func bulkUploadProducts(c *fiber.Ctx) error {
	sellerID, err := strconv.Atoi(c.FormValue("seller_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing or invalid seller_id",
		})
	}

	var seller models.User
	if err := db.DB.First(&seller, sellerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Seller not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find seller: " + err.Error(),
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to get uploaded file",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to open uploaded file",
		})
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	resp := BulkUploadResponse{}
	rowNum := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		if rowNum == 1 {
			// Header row
			continue
		}
		if len(record) < 5 {
			resp.Failed++
			resp.Errors = append(resp.Errors, fmt.Sprintf("row %d: expected 5 columns, got %d", rowNum, len(record)))
			continue
		}

		name := strings.TrimSpace(record[0])
		if name == "" {
			resp.Failed++
			resp.Errors = append(resp.Errors, fmt.Sprintf("row %d: name is required", rowNum))
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil || price < 0 {
			resp.Failed++
			resp.Errors = append(resp.Errors, fmt.Sprintf("row %d: invalid price %q", rowNum, record[2]))
			continue
		}

		categoryName := strings.TrimSpace(record[4])
		var category models.Category
		if categoryName != "" {
			err := db.DB.Where("name = ?", categoryName).First(&category).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				category = models.Category{Name: categoryName}
				if err := db.DB.Create(&category).Error; err != nil {
					resp.Failed++
					resp.Errors = append(resp.Errors, fmt.Sprintf("row %d: failed to create category %q", rowNum, categoryName))
					continue
				}
			} else if err != nil {
				resp.Failed++
				resp.Errors = append(resp.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
				continue
			}
		}

		product := models.Product{
			Name:        name,
			Description: strings.TrimSpace(record[1]),
			Price:       price,
			Image:       strings.TrimSpace(record[3]),
			SellerID:    seller.ID,
			CategoryID:  category.ID,
		}
		if err := db.DB.Create(&product).Error; err != nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		resp.Created++
	}

	logger.L().Info("bulk upload finished",
		zap.Int("created", resp.Created), zap.Int("failed", resp.Failed))
	return c.JSON(resp)
}
