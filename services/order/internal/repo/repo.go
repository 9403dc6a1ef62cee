package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrCartEmpty       = errors.New("cart is empty")
	ErrAddressNotFound = errors.New("address not found")
	ErrOrderNotFound   = errors.New("order not found")
)

type GormRepo struct {
	DB *gorm.DB
}
