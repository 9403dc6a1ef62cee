package transport

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/shop_checkout/pkg/models"
)

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  uint      `json:"quantity"`
}

type DeleteOneFromCartRequest struct {
	ProductID uuid.UUID `json:"product_id"`
}

type CartItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  uint            `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type CartResponse struct {
	ID          uuid.UUID          `json:"id"`
	Items       []CartItemResponse `json:"items"`
	TotalItems  uint               `json:"total_items"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
}

type DeleteOneFromCartResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Deleted   bool      `json:"deleted"`
	Quantity  uint      `json:"quantity"`
}

func NewCartItemResponse(it models.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:        it.ID,
		ProductID: it.ProductID,
		Name:      it.Product.Name,
		UnitPrice: it.Product.CurrentPrice(),
		Quantity:  it.Quantity,
		Subtotal:  it.Subtotal(),
	}
}

func NewCartResponse(cart *models.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, NewCartItemResponse(it))
	}
	return CartResponse{
		ID:          cart.ID,
		Items:       items,
		TotalItems:  cart.TotalItems(),
		TotalAmount: cart.TotalAmount(),
	}
}
