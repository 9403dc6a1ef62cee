package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/shop_checkout/pkg/models"
)

func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

type InitParams struct {
	UserID   uuid.UUID
	OrderID  uuid.UUID
	Currency string
}

// GetOrCreateForOrder returns the payment of an order owned by the user,
// creating a pending card payment for the order total on first use. The order
// row is locked so concurrent callers converge on one payment.
func (r *GormRepo) GetOrCreateForOrder(ctx context.Context, p InitParams) (*models.Payment, *models.Order, error) {
	var (
		order   models.Order
		payment models.Payment
	)

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).
			Where("id = ? AND user_id = ?", p.OrderID, p.UserID).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		err := tx.Where("order_id = ?", order.ID).First(&payment).Error
		switch {
		case err == nil:
			if payment.Status.Terminal() {
				return ErrFinalized
			}
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		payment = models.Payment{
			OrderID:       order.ID,
			UserID:        p.UserID,
			Amount:        order.TotalAmount,
			Currency:      p.Currency,
			Status:        models.PaymentPending,
			PaymentMethod: models.MethodCard,
			Metadata:      map[string]any{},
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &payment, &order, nil
}

type GatewayOrder struct {
	ID      string
	Receipt string
	Status  string
}

// MarkProcessing attaches a freshly created gateway order to the payment. A
// payment captured in the meantime is left alone and ErrFinalized returned.
func (r *GormRepo) MarkProcessing(ctx context.Context, paymentID uuid.UUID, gw GatewayOrder) (*models.Payment, error) {
	var payment models.Payment

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).Where("id = ?", paymentID).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		if payment.Status.Terminal() {
			return ErrFinalized
		}

		if payment.Metadata == nil {
			payment.Metadata = map[string]any{}
		}
		payment.Metadata["receipt"] = gw.Receipt
		payment.Metadata["gateway_status"] = gw.Status

		id := gw.ID
		payment.GatewayOrderID = &id
		payment.Status = models.PaymentProcessing

		return tx.Omit(clause.Associations).Save(&payment).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// PaymentFilter selects a payment by its gateway order id, optionally scoped
// to an owner.
type PaymentFilter struct {
	GatewayOrderID string
	UserID         *uuid.UUID
}

// Mutation changes a locked payment and its order in place and reports
// whether anything changed.
type Mutation func(p *models.Payment, o *models.Order) bool

type UpdateResult struct {
	Payment models.Payment
	Order   models.Order
	Changed bool
}

// Update is the single read-modify-write for gateway notifications. It locks
// the payment and its order, applies mutate, and saves both only when mutate
// reports a change. Concurrent verify and webhook calls for one payment are
// serialized here.
func (r *GormRepo) Update(ctx context.Context, f PaymentFilter, mutate Mutation) (*UpdateResult, error) {
	var res UpdateResult

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := forUpdate(tx).Where("gateway_order_id = ?", f.GatewayOrderID)
		if f.UserID != nil {
			q = q.Where("user_id = ?", *f.UserID)
		}
		if err := q.First(&res.Payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		if err := forUpdate(tx).Where("id = ?", res.Payment.OrderID).First(&res.Order).Error; err != nil {
			return err
		}

		res.Changed = mutate(&res.Payment, &res.Order)
		if !res.Changed {
			return nil
		}

		if err := tx.Omit(clause.Associations).Save(&res.Payment).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(&res.Order).Error
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *GormRepo) GetForUser(ctx context.Context, userID, paymentID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", paymentID, userID).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *GormRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Payment, error) {
	payments := []models.Payment{}
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// GetUser returns the payer's contact details. A missing user yields an empty
// record rather than an error.
func (r *GormRepo) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.User{ID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
