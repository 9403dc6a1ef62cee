package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/shop_checkout/pkg/events"
	"github.com/Skotchmaster/shop_checkout/pkg/logging"
	"github.com/Skotchmaster/shop_checkout/pkg/models"
	"github.com/Skotchmaster/shop_checkout/pkg/util"
	"github.com/Skotchmaster/shop_checkout/services/order/internal/repo"
	"github.com/Skotchmaster/shop_checkout/services/order/internal/transport"
)

var (
	ErrValidation   = errors.New("validation")    // 400
	ErrNotFound     = errors.New("not found")     // 404
	ErrInvalidState = errors.New("invalid state") // 400
)

type OrderService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, req transport.CreateOrderRequest) (*models.Order, error) {
	if req.ShippingAddressID == uuid.Nil {
		return nil, fmt.Errorf("%w: shipping_address_id required", ErrValidation)
	}
	method := models.PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		return nil, fmt.Errorf("%w: unsupported payment_method %q", ErrValidation, req.PaymentMethod)
	}

	order, err := s.Repo.CreateFromCart(ctx, repo.CreateFromCartParams{
		UserID:            userID,
		ShippingAddressID: req.ShippingAddressID,
		PaymentMethod:     method,
	})
	switch {
	case errors.Is(err, repo.ErrCartNotFound), errors.Is(err, repo.ErrAddressNotFound):
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, repo.ErrCartEmpty):
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	case err != nil:
		return nil, err
	}

	s.publishCreated(ctx, order)
	return order, nil
}

func (s *OrderService) publishCreated(ctx context.Context, order *models.Order) {
	if s.Events == nil {
		return
	}
	ev := events.OrderCreated{
		Type:          events.TypeOrderCreated,
		OrderID:       order.ID,
		UserID:        order.UserID,
		TotalAmount:   order.TotalAmount.StringFixed(2),
		PaymentMethod: string(order.PaymentMethod),
		Items:         len(order.Items),
		At:            time.Now().UTC(),
	}
	if err := s.Events.Publish(ctx, events.TopicOrders, order.ID.String(), ev); err != nil {
		logging.FromContext(ctx).Error("publish_order_created_error", "order_id", order.ID, "error", err)
	}
}

func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID, page, size int) (*transport.OrderListResponse, error) {
	offset, limit := util.Calculate(page, size)

	orders, total, err := s.Repo.ListOrders(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}

	return &transport.OrderListResponse{
		Total:  total,
		Page:   offset/limit + 1,
		Size:   limit,
		Orders: orders,
	}, nil
}

func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, userID, orderID)
	if errors.Is(err, repo.ErrOrderNotFound) {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
	}
	return order, err
}
