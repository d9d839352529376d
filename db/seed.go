package db

import (
	"minimart/logger"
	"minimart/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed inserts demo users, categories and products. It is idempotent:
// each group is only inserted when its table is empty, so it is safe
// to run against an existing database. Invoked via the -seed flag,
// never on ordinary process start.
func Seed(gdb *gorm.DB) error {
	var userCount int64
	if err := gdb.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		users := []models.User{
			{Username: "testuser", Email: "test@example.com", Password: "123456", Role: models.RoleUser, Phone: "05551234567", City: "Istanbul"},
			{Username: "admin", Email: "admin@example.com", Password: "admin123", Role: models.RoleAdmin, Phone: "05559876543", City: "Ankara"},
			{Username: "seller", Email: "seller@example.com", Password: "seller123", Role: models.RoleSeller, Phone: "05557654321", City: "Izmir"},
		}
		for i := range users {
			hash, err := bcrypt.GenerateFromPassword([]byte(users[i].Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			users[i].Password = string(hash)
			if err := gdb.Create(&users[i]).Error; err != nil {
				return err
			}
		}
		logger.L().Info("seeded demo users", zap.Int("count", len(users)))
	}

	var categoryCount int64
	if err := gdb.Model(&models.Category{}).Count(&categoryCount).Error; err != nil {
		return err
	}
	if categoryCount == 0 {
		names := []string{"Electronics", "Clothing", "Sports", "Books", "Home & Living"}
		for _, name := range names {
			if err := gdb.Create(&models.Category{Name: name}).Error; err != nil {
				return err
			}
		}
		logger.L().Info("seeded categories", zap.Int("count", len(names)))
	}

	var productCount int64
	if err := gdb.Model(&models.Product{}).Count(&productCount).Error; err != nil {
		return err
	}
	if productCount == 0 {
		var seller models.User
		if err := gdb.Where("email = ?", "seller@example.com").First(&seller).Error; err != nil {
			return err
		}
		var electronics, clothing models.Category
		if err := gdb.Where("name = ?", "Electronics").First(&electronics).Error; err != nil {
			return err
		}
		if err := gdb.Where("name = ?", "Clothing").First(&clothing).Error; err != nil {
			return err
		}

		products := []models.Product{
			{Name: "iPhone 15 Pro", Description: "Apple iPhone 15 Pro 256GB, A17 Pro chip", Image: "https://images.unsplash.com/photo-1695048133142?w=400", Price: 54999.00, SellerID: seller.ID, CategoryID: electronics.ID},
			{Name: "MacBook Air M2", Description: "Apple MacBook Air 13\" M2, 8GB RAM, 256GB SSD", Image: "https://images.unsplash.com/photo-1541807084?w=400", Price: 32999.00, SellerID: seller.ID, CategoryID: electronics.ID},
			{Name: "Wireless Headphones", Description: "Over-ear noise cancelling headphones", Image: "https://images.unsplash.com/photo-1505740420928?w=400", Price: 2499.00, SellerID: seller.ID, CategoryID: electronics.ID},
			{Name: "Cotton T-Shirt", Description: "Plain white cotton t-shirt", Image: "https://images.unsplash.com/photo-1521572163474?w=400", Price: 249.00, SellerID: seller.ID, CategoryID: clothing.ID},
			{Name: "Denim Jacket", Description: "Classic blue denim jacket", Image: "https://images.unsplash.com/photo-1543076447?w=400", Price: 899.00, SellerID: seller.ID, CategoryID: clothing.ID},
		}
		if err := gdb.Create(&products).Error; err != nil {
			return err
		}
		logger.L().Info("seeded products", zap.Int("count", len(products)))
	}

	return nil
}
