package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/solestore/internal/config"
	"github.com/example/solestore/internal/handlers"
	"github.com/example/solestore/internal/middleware"
	"github.com/example/solestore/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	telegramService := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat)

	authHandler := handlers.NewAuthHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db)
	productHandler := handlers.NewProductHandler(db)
	reviewHandler := handlers.NewReviewHandler(db)
	orderHandler := handlers.NewOrderHandler(db, telegramService)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)

	admin := middleware.AuthMiddleware(cfg)

	categories := api.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Get("/:id", catalogHandler.GetCategory)
	categories.Post("/", admin, catalogHandler.CreateCategory)
	categories.Put("/:id", admin, catalogHandler.UpdateCategory)
	categories.Delete("/:id", admin, catalogHandler.DeleteCategory)

	brands := api.Group("/brands")
	brands.Get("/", catalogHandler.ListBrands)
	brands.Get("/:id", catalogHandler.GetBrand)
	brands.Post("/", admin, catalogHandler.CreateBrand)
	brands.Put("/:id", admin, catalogHandler.UpdateBrand)
	brands.Delete("/:id", admin, catalogHandler.DeleteBrand)

	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Get("/:id", productHandler.GetProduct)
	products.Post("/", admin, productHandler.CreateProduct)
	products.Put("/:id", admin, productHandler.UpdateProduct)
	products.Delete("/:id", admin, productHandler.DeleteProduct)

	reviews := api.Group("/reviews")
	reviews.Get("/", reviewHandler.ListReviews)
	reviews.Get("/:id", reviewHandler.GetReview)
	reviews.Post("/", reviewHandler.CreateReview)
	reviews.Put("/:id", reviewHandler.UpdateReview)
	reviews.Delete("/:id", reviewHandler.DeleteReview)

	orders := api.Group("/orders")
	orders.Post("/", orderHandler.CreateOrder)
	orders.Get("/", admin, orderHandler.ListOrders)
	orders.Get("/:id", admin, orderHandler.GetOrder)
}
