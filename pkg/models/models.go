// Package models holds the persistent records shared by the cart, order and
// payment services.
package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// All lists every model in migration order.
func All() []any {
	return []any{
		&User{},
		&Address{},
		&Product{},
		&Cart{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&Payment{},
	}
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (u *User) BeforeCreate(tx *gorm.DB) error      { ensureID(&u.ID); return nil }
func (a *Address) BeforeCreate(tx *gorm.DB) error   { ensureID(&a.ID); return nil }
func (p *Product) BeforeCreate(tx *gorm.DB) error   { ensureID(&p.ID); return nil }
func (c *Cart) BeforeCreate(tx *gorm.DB) error      { ensureID(&c.ID); return nil }
func (c *CartItem) BeforeCreate(tx *gorm.DB) error  { ensureID(&c.ID); return nil }
func (o *Order) BeforeCreate(tx *gorm.DB) error     { ensureID(&o.ID); return nil }
func (o *OrderItem) BeforeCreate(tx *gorm.DB) error { ensureID(&o.ID); return nil }
func (p *Payment) BeforeCreate(tx *gorm.DB) error   { ensureID(&p.ID); return nil }
