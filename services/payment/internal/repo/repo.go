package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrFinalized means the payment is captured or refunded and must not be
	// charged again.
	ErrFinalized = errors.New("payment already finalized")
)

// GormRepo is the payment ledger. Every method that changes a payment runs in
// one transaction holding row locks on the payment and, where it cascades,
// its order.
type GormRepo struct {
	DB *gorm.DB
}
