package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_checkout/pkg/db/dbtest"
	"github.com/Skotchmaster/shop_checkout/pkg/models"
	"github.com/Skotchmaster/shop_checkout/services/cart/internal/repo"
	"github.com/Skotchmaster/shop_checkout/services/cart/internal/transport"
)

func newTestService(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	db := dbtest.Open(t)
	return &CartService{Repo: &repo.GormRepo{DB: db}}, db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: decimal.NewFromInt(price), Stock: 10}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestCartService_AddAndGet(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	mug := seedProduct(t, db, "mug", 100)
	pen := seedProduct(t, db, "pen", 50)

	_, err := svc.AddToCart(ctx, userID, transport.AddToCartRequest{ProductID: mug.ID, Quantity: 2})
	require.NoError(t, err)
	item, err := svc.AddToCart(ctx, userID, transport.AddToCartRequest{ProductID: mug.ID, Quantity: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 3, item.Quantity)

	_, err = svc.AddToCart(ctx, userID, transport.AddToCartRequest{ProductID: pen.ID, Quantity: 1})
	require.NoError(t, err)

	cart, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.EqualValues(t, 4, cart.TotalItems)
	assert.True(t, cart.TotalAmount.Equal(decimal.NewFromInt(350)), cart.TotalAmount.String())
}

func TestCartService_AddValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, uuid.New(), transport.AddToCartRequest{Quantity: 1})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddToCart(ctx, uuid.New(), transport.AddToCartRequest{ProductID: uuid.New()})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCartService_AddUnknownProduct(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddToCart(context.Background(), uuid.New(), transport.AddToCartRequest{ProductID: uuid.New(), Quantity: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartService_DeleteOne(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()
	mug := seedProduct(t, db, "mug", 100)

	_, err := svc.AddToCart(ctx, userID, transport.AddToCartRequest{ProductID: mug.ID, Quantity: 2})
	require.NoError(t, err)

	resp, err := svc.DeleteOneFromCart(ctx, userID, mug.ID)
	require.NoError(t, err)
	assert.False(t, resp.Deleted)
	assert.EqualValues(t, 1, resp.Quantity)

	resp, err = svc.DeleteOneFromCart(ctx, userID, mug.ID)
	require.NoError(t, err)
	assert.True(t, resp.Deleted)

	_, err = svc.DeleteOneFromCart(ctx, userID, mug.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartService_DeleteOneOtherUsersCart(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	mug := seedProduct(t, db, "mug", 100)

	_, err := svc.AddToCart(ctx, uuid.New(), transport.AddToCartRequest{ProductID: mug.ID, Quantity: 1})
	require.NoError(t, err)

	_, err = svc.DeleteOneFromCart(ctx, uuid.New(), mug.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartService_DeleteAllKeepsCart(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()
	mug := seedProduct(t, db, "mug", 100)

	_, err := svc.AddToCart(ctx, userID, transport.AddToCartRequest{ProductID: mug.ID, Quantity: 1})
	require.NoError(t, err)
	before, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAllFromCart(ctx, userID))

	after, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
	assert.Empty(t, after.Items)
	assert.True(t, after.TotalAmount.IsZero())
}
