package main

import (
	"flag"
	"os"

	"minimart/config"
	"minimart/db"
	"minimart/logger"
	"minimart/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	seed := flag.Bool("seed", false, "insert demo data and exit")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	db.InitDatabase(cfg)

	if *seed {
		if err := db.Seed(db.DB); err != nil {
			logger.L().Fatal("seeding failed", zap.Error(err))
		}
		logger.L().Info("seeding complete")
		return
	}

	// Create uploads directory if it doesn't exist
	if _, err := os.Stat("uploads"); os.IsNotExist(err) {
		os.Mkdir("uploads", 0755)
	}

	app := fiber.New()

	app.Use(fiberlogger.New())
	app.Use(cors.New())

	// Serve uploaded images
	app.Static("/uploads", "./uploads")

	routes.SetupRoutes(app, cfg)

	logger.L().Info("server starting", zap.String("port", cfg.AppPort))
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
