package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/solestore/internal/models"
	"github.com/example/solestore/internal/utils"
)

// ReviewHandler manages review CRUD.
type ReviewHandler struct {
	db *gorm.DB
}

// NewReviewHandler constructs ReviewHandler.
func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

type reviewRequest struct {
	Product  string `json:"product" validate:"required,uuid"`
	UserName string `json:"user_name" validate:"required"`
	Rating   *int   `json:"rating" validate:"required"`
	Comment  string `json:"comment"`
}

func (h *ReviewHandler) productExists(productID uuid.UUID) (bool, error) {
	var count int64
	err := h.db.Model(&models.Product{}).
		Where("id = ?", productID).Count(&count).Error
	return count > 0, err
}

// productMissing responds like any other field validation failure.
func productMissing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"errors":  fiber.Map{"product": "product does not exist"},
	})
}

// ListReviews returns paginated reviews, optionally filtered by product.
func (h *ReviewHandler) ListReviews(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Review{})

	if v := c.Query("product"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid product filter")
		}
		query = query.Where("product_id = ?", id)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var reviews []models.Review
	if err := query.Limit(pg.Limit).Offset(pg.Offset).
		Order("created_at desc").Find(&reviews).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": reviews, "pagination": fiber.Map{
		"current_page":   pg.Page,
		"items_per_page": pg.Limit,
		"total_items":    total,
	}})
}

// GetReview returns a single review by ID.
func (h *ReviewHandler) GetReview(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var review models.Review
	if err := h.db.First(&review, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "review not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": review})
}

// CreateReview persists a new review. The rating is stored as submitted; no
// range is enforced.
func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "errors": errs})
	}

	productID, _ := uuid.Parse(req.Product)
	exists, err := h.productExists(productID)
	if err != nil {
		return err
	}
	if !exists {
		return productMissing(c)
	}

	review := models.Review{
		ProductID: productID,
		UserName:  req.UserName,
		Rating:    *req.Rating,
		Comment:   req.Comment,
	}

	if err := h.db.Create(&review).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": review})
}

// UpdateReview updates an existing review.
func (h *ReviewHandler) UpdateReview(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var review models.Review
	if err := h.db.First(&review, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "review not found")
		}
		return err
	}

	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "errors": errs})
	}

	productID, _ := uuid.Parse(req.Product)
	exists, err := h.productExists(productID)
	if err != nil {
		return err
	}
	if !exists {
		return productMissing(c)
	}

	review.ProductID = productID
	review.UserName = req.UserName
	review.Rating = *req.Rating
	review.Comment = req.Comment

	if err := h.db.Save(&review).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": review})
}

// DeleteReview removes a review by ID.
func (h *ReviewHandler) DeleteReview(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	if err := h.db.Delete(&models.Review{}, "id = ?", id).Error; err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
