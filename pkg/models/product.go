package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey"      json:"id"`
	Name          string              `gorm:"size:255;not null"         json:"name"`
	Price         decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"price"`
	DiscountPrice decimal.NullDecimal `gorm:"type:numeric(12,2)"        json:"discount_price"`
	Stock         int                 `gorm:"not null;default:0"        json:"stock"`
	IsActive      bool                `gorm:"not null;default:true"     json:"is_active"`
	CreatedAt     time.Time           `                                 json:"created_at"`
	UpdatedAt     time.Time           `                                 json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// CurrentPrice is the price a buyer pays right now.
func (p Product) CurrentPrice() decimal.Decimal {
	if p.DiscountPrice.Valid {
		return p.DiscountPrice.Decimal
	}
	return p.Price
}
