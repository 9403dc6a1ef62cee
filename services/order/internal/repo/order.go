package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/shop_checkout/pkg/models"
)

type CreateFromCartParams struct {
	UserID            uuid.UUID
	ShippingAddressID uuid.UUID
	PaymentMethod     models.PaymentMethod
}

// CreateFromCart turns the user's cart into a pending order in a single
// transaction. The cart row is locked for the duration, every line is priced
// at the product's current price and snapshotted into an order item, and the
// cart lines are deleted. The cart itself is kept.
//
// Returns ErrCartNotFound, ErrCartEmpty or ErrAddressNotFound without writing
// anything.
func (r *GormRepo) CreateFromCart(ctx context.Context, p CreateFromCartParams) (*models.Order, error) {
	var order models.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", p.UserID).
			First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartNotFound
			}
			return err
		}

		var lines []models.CartItem
		if err := tx.Preload("Product").
			Where("cart_id = ?", cart.ID).
			Order("created_at ASC").
			Find(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrCartEmpty
		}

		var address models.Address
		if err := tx.Where("id = ? AND user_id = ?", p.ShippingAddressID, p.UserID).
			First(&address).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAddressNotFound
			}
			return err
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			price := line.Product.CurrentPrice()
			items = append(items, models.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     price,
			})
			total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		order = models.Order{
			UserID:            p.UserID,
			ShippingAddressID: address.ID,
			TotalAmount:       total,
			PaymentMethod:     p.PaymentMethod,
			Status:            models.OrderStatusPending,
			PaymentStatus:     models.OrderPaymentPending,
			Items:             items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		order.ShippingAddress = &address
		for i := range order.Items {
			product := lines[i].Product
			order.Items[i].Product = &product
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Order, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := q.Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Preload("Items.Product").
		Preload("ShippingAddress").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}
