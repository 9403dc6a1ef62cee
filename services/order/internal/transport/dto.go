package transport

import (
	"github.com/google/uuid"

	"github.com/Skotchmaster/shop_checkout/pkg/models"
)

type CreateOrderRequest struct {
	ShippingAddressID uuid.UUID `json:"shipping_address_id"`
	PaymentMethod     string    `json:"payment_method"`
}

type CreateOrderResponse struct {
	Message string        `json:"message"`
	Order   *models.Order `json:"order"`
}

type OrderListResponse struct {
	Total  int64          `json:"total"`
	Page   int            `json:"page"`
	Size   int            `json:"size"`
	Orders []models.Order `json:"orders"`
}
