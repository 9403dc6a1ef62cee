package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Cart struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"          json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Items     []CartItem `gorm:"foreignKey:CartID"             json:"items"`
	CreatedAt time.Time  `                                     json:"created_at"`
	UpdatedAt time.Time  `                                     json:"updated_at"`
}

func (Cart) TableName() string {
	return "carts"
}

func (c Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (c Cart) TotalItems() uint {
	var n uint
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                                json:"id"`
	CartID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_product;not null"     json:"cart_id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_product;not null"     json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID"                                json:"product"`
	Quantity  uint      `gorm:"not null;default:1;check:quantity>0"                 json:"quantity"`
	CreatedAt time.Time `                                                           json:"created_at"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// Subtotal prices the line at the product's current price. Product must be
// preloaded.
func (c CartItem) Subtotal() decimal.Decimal {
	return c.Product.CurrentPrice().Mul(decimal.NewFromInt(int64(c.Quantity)))
}
