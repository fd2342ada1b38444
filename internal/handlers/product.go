package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/example/solestore/internal/models"
	"github.com/example/solestore/internal/utils"
)

// ProductHandler manages the product read surface and admin CRUD.
type ProductHandler struct {
	db *gorm.DB
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// orderingColumns maps accepted ordering query values to SQL columns.
var orderingColumns = map[string]string{
	"price":   "price",
	"created": "created_at",
}

// productListResponse is the listing projection: relations expanded, reviews
// collapsed into average_rating and review_count.
type productListResponse struct {
	ID            uuid.UUID             `json:"id"`
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	Price         float64               `json:"price"`
	Category      *models.Category      `json:"category"`
	Brand         *models.Brand         `json:"brand"`
	Stock         int                   `json:"stock"`
	Available     bool                  `json:"available"`
	Images        []models.ProductImage `json:"images"`
	AverageRating float64               `json:"average_rating"`
	ReviewCount   int                   `json:"review_count"`
	Sizes         pq.Int64Array         `json:"sizes"`
	Colors        pq.StringArray        `json:"colors"`
}

// productDetailResponse adds the stored timestamps and the full review list.
type productDetailResponse struct {
	productListResponse
	Reviews   []models.Review `json:"reviews"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// averageRating returns the arithmetic mean of review ratings, or exactly 0
// when there are none.
func averageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

func toListResponse(p models.Product) productListResponse {
	images := p.Images
	if images == nil {
		images = []models.ProductImage{}
	}
	return productListResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Category:      p.Category,
		Brand:         p.Brand,
		Stock:         p.Stock,
		Available:     p.Available,
		Images:        images,
		AverageRating: averageRating(p.Reviews),
		ReviewCount:   len(p.Reviews),
		Sizes:         p.Sizes,
		Colors:        p.Colors,
	}
}

func toDetailResponse(p models.Product) productDetailResponse {
	reviews := p.Reviews
	if reviews == nil {
		reviews = []models.Review{}
	}
	return productDetailResponse{
		productListResponse: toListResponse(p),
		Reviews:             reviews,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// ListProducts returns paginated products with optional filters, search and
// ordering.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Product{})

	if v := c.Query("category"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid category filter")
		}
		query = query.Where("category_id = ?", id)
	}

	if v := c.Query("brand"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid brand filter")
		}
		query = query.Where("brand_id = ?", id)
	}

	if v := c.Query("available"); v != "" {
		available, err := strconv.ParseBool(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid available filter")
		}
		query = query.Where("available = ?", available)
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		// ILIKE is Postgres-only; the test database is SQLite.
		q := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", q, q)
	}

	order := "created_at desc"
	if v := c.Query("ordering"); v != "" {
		field := strings.TrimPrefix(v, "-")
		column, ok := orderingColumns[field]
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "invalid ordering field")
		}
		order = column + " asc"
		if strings.HasPrefix(v, "-") {
			order = column + " desc"
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var products []models.Product
	if err := query.Preload("Category").Preload("Brand").
		Preload("Images").Preload("Reviews").
		Limit(pg.Limit).Offset(pg.Offset).
		Order(order).
		Find(&products).Error; err != nil {
		return err
	}

	data := make([]productListResponse, 0, len(products))
	for _, p := range products {
		data = append(data, toListResponse(p))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetProduct loads a product with relations and its full review list.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.Preload("Category").
		Preload("Brand").
		Preload("Images").
		Preload("Reviews").
		First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": toDetailResponse(product)})
}

type productImageRequest struct {
	Image     string `json:"image"`
	IsPrimary bool   `json:"is_primary"`
}

type productRequest struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Price       *float64              `json:"price"`
	Stock       *int                  `json:"stock"`
	Available   *bool                 `json:"available"`
	Sizes       []int64               `json:"sizes"`
	Colors      []string              `json:"colors"`
	CategoryID  string                `json:"category_id"`
	BrandID     string                `json:"brand_id"`
	Images      []productImageRequest `json:"images"`
}

func (h *ProductHandler) buildProductFromRequest(req productRequest) (models.Product, error) {
	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Sizes:       pq.Int64Array(req.Sizes),
		Colors:      pq.StringArray(req.Colors),
		Available:   true,
	}

	if req.Price != nil {
		if *req.Price < 0 {
			return product, fiber.NewError(fiber.StatusBadRequest, "price must not be negative")
		}
		product.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return product, fiber.NewError(fiber.StatusBadRequest, "stock must not be negative")
		}
		product.Stock = *req.Stock
	}
	if req.Available != nil {
		product.Available = *req.Available
	}

	if req.CategoryID != "" {
		id, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return product, fiber.NewError(fiber.StatusBadRequest, "invalid category_id")
		}
		product.CategoryID = &id
	}
	if req.BrandID != "" {
		id, err := uuid.Parse(req.BrandID)
		if err != nil {
			return product, fiber.NewError(fiber.StatusBadRequest, "invalid brand_id")
		}
		product.BrandID = &id
	}

	for _, img := range req.Images {
		product.Images = append(product.Images, models.ProductImage{
			Image:     img.Image,
			IsPrimary: img.IsPrimary,
		})
	}

	return product, nil
}

// CreateProduct handles product creation with nested images.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}

	product, err := h.buildProductFromRequest(req)
	if err != nil {
		return err
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&product).Error
	}); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": product})
}

// UpdateProduct updates an existing product and replaces its images.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var existing models.Product
	if err := h.db.Preload("Images").First(&existing, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	product, err := h.buildProductFromRequest(req)
	if err != nil {
		return err
	}
	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&existing).
			Select("Name", "Description", "Price", "Stock", "Available",
				"Sizes", "Colors", "CategoryID", "BrandID").
			Updates(product).Error; err != nil {
			return err
		}

		for i := range product.Images {
			product.Images[i].ProductID = product.ID
		}
		if len(product.Images) > 0 {
			if err := tx.Create(&product.Images).Error; err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

// DeleteProduct removes a product together with its images and reviews.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", id).Error
	}); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
