package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type OrderPaymentStatus string

const (
	OrderPaymentPending   OrderPaymentStatus = "pending"
	OrderPaymentCompleted OrderPaymentStatus = "completed"
	OrderPaymentFailed    OrderPaymentStatus = "failed"
	OrderPaymentRefunded  OrderPaymentStatus = "refunded"
)

// Order is immutable after creation except for Status and PaymentStatus.
type Order struct {
	ID                uuid.UUID          `gorm:"type:uuid;primaryKey"                json:"id"`
	UserID            uuid.UUID          `gorm:"type:uuid;index;not null"            json:"user_id"`
	ShippingAddressID uuid.UUID          `gorm:"type:uuid;not null"                  json:"shipping_address_id"`
	ShippingAddress   *Address           `gorm:"foreignKey:ShippingAddressID"        json:"shipping_address,omitempty"`
	TotalAmount       decimal.Decimal    `gorm:"type:numeric(12,2);not null"         json:"total_amount"`
	PaymentMethod     PaymentMethod      `gorm:"size:20;not null"                    json:"payment_method"`
	Status            OrderStatus        `gorm:"size:20;not null;default:pending"    json:"status"`
	PaymentStatus     OrderPaymentStatus `gorm:"size:20;not null;default:pending"    json:"payment_status"`
	Items             []OrderItem        `gorm:"foreignKey:OrderID"                  json:"items"`
	CreatedAt         time.Time          `gorm:"index"                               json:"created_at"`
	UpdatedAt         time.Time          `                                           json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// MarkPaid applies the cascade of a captured payment.
func (o *Order) MarkPaid() {
	o.PaymentStatus = OrderPaymentCompleted
	o.Status = OrderStatusConfirmed
}

// OrderItem snapshots the product price at order time.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"                 json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index;not null"             json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"                   json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID"                 json:"product,omitempty"`
	Quantity  uint            `gorm:"not null;check:quantity>0"            json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"          json:"price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
