package db

import (
	"os"
	"path/filepath"

	"minimart/config"
	"minimart/logger"
	"minimart/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDatabase opens the configured database and migrates the schema.
// A postgres DATABASE_URL takes precedence; otherwise a local sqlite
// file is used, created if missing.
func InitDatabase(cfg *config.Config) {
	var err error

	if cfg.DatabaseURL != "" {
		DB, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			logger.L().Fatal("failed to connect to postgres", zap.Error(err))
		}
		logger.L().Info("database connected", zap.String("driver", "postgres"))
	} else {
		dbPath := cfg.SQLitePath

		dir := filepath.Dir(dbPath)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				logger.L().Fatal("failed to create database directory", zap.Error(err))
			}
		}

		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			file, err := os.Create(dbPath)
			if err != nil {
				logger.L().Fatal("failed to create database file", zap.Error(err))
			}
			file.Close()
		}

		DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
		if err != nil {
			logger.L().Fatal("failed to connect to database", zap.Error(err))
		}
		logger.L().Info("database connected", zap.String("driver", "sqlite"), zap.String("path", dbPath))
	}

	Migrate(DB)
}

// Migrate runs the schema migration for all entities.
func Migrate(gdb *gorm.DB) {
	gdb.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
		&models.Favorite{}, &models.Review{},
	)
}
