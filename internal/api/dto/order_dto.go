package dto

import (
	"time"

	"github.com/spec-kit/coffee-shop-service/internal/domain"
)

// CreateOrderRequest payload. user_id and total_price may arrive as numbers or
// numeric strings.
type CreateOrderRequest struct {
	UserID     Number `json:"user_id"`
	OrderType  string `json:"order_type"`
	TotalPrice Number `json:"total_price"`
	Status     string `json:"status"`
}

// Normalized returns the user id and total price when every required field is
// present and non-zero.
func (r CreateOrderRequest) Normalized() (userID int64, totalPrice float64, ok bool) {
	userID, ok = r.UserID.Int()
	if !ok || userID <= 0 {
		return 0, 0, false
	}
	totalPrice, ok = r.TotalPrice.Float()
	if !ok || totalPrice == 0 {
		return 0, 0, false
	}
	if r.OrderType == "" {
		return 0, 0, false
	}
	return userID, totalPrice, true
}

// CreateOrderResponse is returned after an order is stored.
type CreateOrderResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"order_id"`
}

// OrderSummary is one entry of a user's order history.
type OrderSummary struct {
	OrderID    int64     `json:"order_id"`
	OrderType  string    `json:"order_type"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewOrderSummaries converts orders, never returning nil.
func NewOrderSummaries(orders []domain.Order) []OrderSummary {
	out := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderSummary{
			OrderID:    o.ID,
			OrderType:  o.OrderType,
			TotalPrice: o.TotalPrice,
			Status:     o.Status,
			CreatedAt:  o.CreatedAt,
		})
	}
	return out
}
