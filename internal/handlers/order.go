package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/solestore/internal/models"
	"github.com/example/solestore/internal/services"
	"github.com/example/solestore/internal/utils"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	db       *gorm.DB
	telegram *services.TelegramService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, telegram *services.TelegramService) *OrderHandler {
	return &OrderHandler{db: db, telegram: telegram}
}

type orderItemRequest struct {
	Product  string   `json:"product" validate:"required,uuid"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
	Quantity int      `json:"quantity" validate:"required,min=1"`
	Size     int      `json:"size"`
	Color    string   `json:"color"`
}

type createOrderRequest struct {
	FirstName  string             `json:"first_name" validate:"required"`
	LastName   string             `json:"last_name" validate:"required"`
	Email      string             `json:"email" validate:"required,email"`
	Address    string             `json:"address" validate:"required"`
	PostalCode string             `json:"postal_code" validate:"required"`
	City       string             `json:"city" validate:"required"`
	Items      []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateOrder persists an order and its line items as one transaction.
//
// The item price is the client's snapshot: it is stored as submitted and not
// checked against the product's current price, and stock is not decremented.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "errors": errs})
	}

	order := models.Order{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Address:    req.Address,
		PostalCode: req.PostalCode,
		City:       req.City,
		Status:     "pending",
	}

	for _, item := range req.Items {
		orderItem := models.OrderItem{
			Price:    *item.Price,
			Quantity: item.Quantity,
			Size:     item.Size,
			Color:    item.Color,
		}
		if id, err := uuid.Parse(item.Product); err == nil {
			orderItem.ProductID = &id
		}
		order.Items = append(order.Items, orderItem)
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	}); err != nil {
		return err
	}

	if h.telegram != nil {
		go h.notifyNewOrder(order)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": order})
}

func (h *OrderHandler) notifyNewOrder(order models.Order) {
	items := make([]services.OrderItemNotification, 0, len(order.Items))
	var total float64
	for _, item := range order.Items {
		product := ""
		if item.ProductID != nil {
			product = item.ProductID.String()
		}
		items = append(items, services.OrderItemNotification{
			Product:  product,
			Quantity: item.Quantity,
			Price:    item.Price,
			Size:     item.Size,
			Color:    item.Color,
		})
		total += item.Price * float64(item.Quantity)
	}

	_ = h.telegram.NotifyNewOrder(services.OrderNotification{
		OrderID:  order.ID.String(),
		Customer: order.FirstName + " " + order.LastName,
		Email:    order.Email,
		City:     order.City,
		Items:    items,
		Total:    total,
	})
}

// ListOrders returns paginated orders for the admin.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetOrder returns a single order with its items.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}
