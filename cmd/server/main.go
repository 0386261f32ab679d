package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/growthflow/growthflow-api/internal/config"
	"github.com/growthflow/growthflow-api/internal/database"
	"github.com/growthflow/growthflow-api/internal/routes"
	"github.com/growthflow/growthflow-api/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	if err := services.InitAI(cfg.GeminiAPIKey, cfg.GeminiModel); err != nil {
		log.Fatalf("AI init failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "GrowthFlow API",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Setup(app)

	log.Printf("listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
