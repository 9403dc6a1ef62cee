package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/shop_checkout/pkg/models"
)

func ensureCart(tx *gorm.DB, userID uuid.UUID) (*models.Cart, error) {
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&models.Cart{UserID: userID}).Error; err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetCart returns the user's cart with items and products preloaded, creating
// an empty cart on first use.
func (r *GormRepo) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart *models.Cart
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := ensureCart(tx, userID)
		if err != nil {
			return err
		}
		if err := tx.Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).Preload("Items.Product").First(c, "id = ?", c.ID).Error; err != nil {
			return err
		}
		cart = c
		return nil
	})
	return cart, err
}

func (r *GormRepo) AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Where("id = ? AND is_active = ?", productID, true).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		cart, err := ensureCart(tx, userID)
		if err != nil {
			return err
		}

		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			item = models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		} else if err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error; err != nil {
			return err
		}

		item.Product = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteOneFromCart decrements a line by one and removes it at zero.
func (r *GormRepo) DeleteOneFromCart(ctx context.Context, userID, productID uuid.UUID) (bool, *models.CartItem, error) {
	var item models.CartItem
	deleted := false

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Joins("JOIN carts ON carts.id = cart_items.cart_id").
			Where("carts.user_id = ? AND cart_items.product_id = ?", userID, productID).
			First(&item).Error; err != nil {
			return err
		}

		if item.Quantity > 1 {
			if err := tx.Model(&item).Update("quantity", gorm.Expr("quantity - 1")).Error; err != nil {
				return err
			}
			return tx.First(&item, "id = ?", item.ID).Error
		}

		if err := tx.Delete(&item).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, nil, err
	}
	return deleted, &item, nil
}

func (r *GormRepo) DeleteAllFromCart(ctx context.Context, userID uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("cart_id IN (?)", r.DB.Model(&models.Cart{}).Select("id").Where("user_id = ?", userID)).
		Delete(&models.CartItem{}).Error
}
