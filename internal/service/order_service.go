package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/coffee-shop-service/internal/domain"
	"github.com/spec-kit/coffee-shop-service/internal/events"
	"github.com/spec-kit/coffee-shop-service/internal/repository"
	apperrors "github.com/spec-kit/coffee-shop-service/pkg/util/errorutil"
)

// OrderService creates and lists customer orders.
type OrderService struct {
	orders     repository.OrderRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// OrderDependencies bundles collaborators for the order service.
type OrderDependencies struct {
	OrderRepo  repository.OrderRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// OrderCreateInput describes an order creation request. Fields are validated
// by the caller.
type OrderCreateInput struct {
	UserID     int64
	OrderType  string
	TotalPrice float64
	Status     string
}

// NewOrderService constructs the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{orders: deps.OrderRepo, dispatcher: deps.Dispatcher, logger: logger}
}

// CreateOrder stores a new order, defaulting the status to pending.
func (s *OrderService) CreateOrder(ctx context.Context, input OrderCreateInput) (*domain.Order, error) {
	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = domain.OrderStatusPending
	}

	order := &domain.Order{
		UserID:     input.UserID,
		OrderType:  input.OrderType,
		TotalPrice: input.TotalPrice,
		Status:     status,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperrors.NewStoreError("Order creation failed", err)
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventOrderCreated, events.OrderCreatedPayload{
		OrderID:    order.ID,
		UserID:     order.UserID,
		OrderType:  order.OrderType,
		TotalPrice: order.TotalPrice,
		Status:     order.Status,
	}))
	return order, nil
}

// ListUserOrders returns a user's orders, newest first.
func (s *OrderService) ListUserOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewStoreError(msgDatabaseError, err)
	}
	return orders, nil
}
