package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/coffee-shop-service/internal/api/dto"
	"github.com/spec-kit/coffee-shop-service/internal/service"
	apperrors "github.com/spec-kit/coffee-shop-service/pkg/util/errorutil"
)

// OrdersHandler exposes order creation and history.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// Create handles POST /order.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateOrderRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	userID, totalPrice, ok := req.Normalized()
	if !ok {
		return apperrors.NewValidationError(msgMissingFields)
	}

	order, err := h.orders.CreateOrder(c.UserContext(), service.OrderCreateInput{
		UserID:     userID,
		OrderType:  req.OrderType,
		TotalPrice: totalPrice,
		Status:     req.Status,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateOrderResponse{
		Message: "Order created",
		OrderID: order.ID,
	})
}

// ListByUser handles GET /orders/:userId.
func (h *OrdersHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(strings.TrimSpace(pathParam(c, paramUserID)), 10, 64)
	if err != nil {
		return apperrors.NewValidationError(msgInvalidUserID)
	}

	orders, err := h.orders.ListUserOrders(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewOrderSummaries(orders))
}
