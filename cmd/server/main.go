package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/solestore/internal/config"
	"github.com/example/solestore/internal/database"
	"github.com/example/solestore/internal/routes"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	if err := database.EnsureAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Printf("admin bootstrap failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "Sole Store Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	app.Static("/media", cfg.MediaDir)

	routes.Register(app, db, cfg)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
