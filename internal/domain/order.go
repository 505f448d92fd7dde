package domain

import "time"

// OrderStatusPending is assigned when the client does not send a status.
const OrderStatusPending = "pending"

// Order is a customer order header. Status is free text.
type Order struct {
	ID         int64
	UserID     int64
	OrderType  string
	TotalPrice float64
	Status     string
	CreatedAt  time.Time
}
