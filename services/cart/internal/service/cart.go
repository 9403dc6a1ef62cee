package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_checkout/pkg/models"
	"github.com/Skotchmaster/shop_checkout/services/cart/internal/repo"
	"github.com/Skotchmaster/shop_checkout/services/cart/internal/transport"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*transport.CartResponse, error) {
	cart, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := transport.NewCartResponse(cart)
	return &resp, nil
}

func (s *CartService) AddToCart(ctx context.Context, userID uuid.UUID, req transport.AddToCartRequest) (*models.CartItem, error) {
	if req.ProductID == uuid.Nil {
		return nil, fmt.Errorf("%w: product_id required", ErrValidation)
	}
	if req.Quantity == 0 {
		return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}

	item, err := s.Repo.AddToCart(ctx, userID, req.ProductID, req.Quantity)
	if errors.Is(err, repo.ErrProductNotFound) {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, req.ProductID)
	}
	return item, err
}

func (s *CartService) DeleteOneFromCart(ctx context.Context, userID, productID uuid.UUID) (*transport.DeleteOneFromCartResponse, error) {
	if productID == uuid.Nil {
		return nil, fmt.Errorf("%w: product_id required", ErrValidation)
	}

	deleted, item, err := s.Repo.DeleteOneFromCart(ctx, userID, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product not in cart", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	resp := &transport.DeleteOneFromCartResponse{ProductID: productID, Deleted: deleted}
	if !deleted {
		resp.Quantity = item.Quantity
	}
	return resp, nil
}

func (s *CartService) DeleteAllFromCart(ctx context.Context, userID uuid.UUID) error {
	return s.Repo.DeleteAllFromCart(ctx, userID)
}
