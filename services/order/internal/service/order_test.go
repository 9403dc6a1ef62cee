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
	"github.com/Skotchmaster/shop_checkout/pkg/events"
	"github.com/Skotchmaster/shop_checkout/pkg/models"
	"github.com/Skotchmaster/shop_checkout/services/order/internal/repo"
	"github.com/Skotchmaster/shop_checkout/services/order/internal/transport"
)

type fixture struct {
	DB      *gorm.DB
	Svc     *OrderService
	Events  *events.Recorder
	UserID  uuid.UUID
	Address models.Address
	Cart    models.Cart
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	rec := &events.Recorder{}

	f := &fixture{
		DB:     db,
		Svc:    &OrderService{Repo: &repo.GormRepo{DB: db}, Events: rec},
		Events: rec,
		UserID: uuid.New(),
	}

	f.Address = models.Address{UserID: f.UserID, Line1: "1 Main St", City: "Pune"}
	require.NoError(t, db.Create(&f.Address).Error)
	f.Cart = models.Cart{UserID: f.UserID}
	require.NoError(t, db.Create(&f.Cart).Error)
	return f
}

func (f *fixture) addLine(t *testing.T, price decimal.Decimal, qty uint) models.Product {
	t.Helper()
	p := models.Product{Name: "p-" + price.String(), Price: price}
	require.NoError(t, f.DB.Create(&p).Error)
	require.NoError(t, f.DB.Create(&models.CartItem{CartID: f.Cart.ID, ProductID: p.ID, Quantity: qty}).Error)
	return p
}

func (f *fixture) request() transport.CreateOrderRequest {
	return transport.CreateOrderRequest{ShippingAddressID: f.Address.ID, PaymentMethod: "card"}
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestCreateOrder_TotalsAndClearsCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addLine(t, decimal.NewFromInt(100), 3)
	f.addLine(t, decimal.NewFromInt(50), 1)

	order, err := f.Svc.CreateOrder(ctx, f.UserID, f.request())
	require.NoError(t, err)

	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(350)), order.TotalAmount.String())
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.OrderPaymentPending, order.PaymentStatus)
	assert.Equal(t, models.MethodCard, order.PaymentMethod)
	require.Len(t, order.Items, 2)

	assert.Zero(t, countRows(t, f.DB, &models.CartItem{}))
	assert.EqualValues(t, 1, countRows(t, f.DB, &models.Cart{}))

	msgs := f.Events.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, events.TopicOrders, msgs[0].Topic)
	ev := msgs[0].Event.(events.OrderCreated)
	assert.Equal(t, order.ID, ev.OrderID)
	assert.Equal(t, "350.00", ev.TotalAmount)
}

func TestCreateOrder_ItemsConserveTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addLine(t, decimal.RequireFromString("19.99"), 3)
	f.addLine(t, decimal.RequireFromString("0.35"), 7)
	discounted := models.Product{
		Name:          "sale",
		Price:         decimal.NewFromInt(80),
		DiscountPrice: decimal.NewNullDecimal(decimal.RequireFromString("64.50")),
	}
	require.NoError(t, f.DB.Create(&discounted).Error)
	require.NoError(t, f.DB.Create(&models.CartItem{CartID: f.Cart.ID, ProductID: discounted.ID, Quantity: 2}).Error)

	order, err := f.Svc.CreateOrder(ctx, f.UserID, f.request())
	require.NoError(t, err)

	stored, err := f.Svc.GetOrder(ctx, f.UserID, order.ID)
	require.NoError(t, err)

	sum := decimal.Zero
	for _, it := range stored.Items {
		sum = sum.Add(it.Subtotal())
		if it.ProductID == discounted.ID {
			assert.True(t, it.Price.Equal(decimal.RequireFromString("64.50")), it.Price.String())
		}
	}
	assert.True(t, sum.Equal(stored.TotalAmount), "items %s total %s", sum, stored.TotalAmount)
	assert.True(t, stored.TotalAmount.Equal(decimal.RequireFromString("191.42")), stored.TotalAmount.String())
}

func TestCreateOrder_PriceSnapshotSurvivesPriceChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.addLine(t, decimal.NewFromInt(100), 1)

	order, err := f.Svc.CreateOrder(ctx, f.UserID, f.request())
	require.NoError(t, err)

	require.NoError(t, f.DB.Model(&models.Product{}).Where("id = ?", p.ID).Update("price", decimal.NewFromInt(999)).Error)

	stored, err := f.Svc.GetOrder(ctx, f.UserID, order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.True(t, stored.Items[0].Price.Equal(decimal.NewFromInt(100)))
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.Svc.CreateOrder(context.Background(), f.UserID, f.request())
	require.ErrorIs(t, err, ErrInvalidState)

	assert.Zero(t, countRows(t, f.DB, &models.Order{}))
	assert.Empty(t, f.Events.Messages())
}

func TestCreateOrder_NoCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.Svc.CreateOrder(context.Background(), uuid.New(), f.request())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrder_ForeignAddress(t *testing.T) {
	f := newFixture(t)
	f.addLine(t, decimal.NewFromInt(10), 1)

	other := models.Address{UserID: uuid.New(), Line1: "elsewhere", City: "Goa"}
	require.NoError(t, f.DB.Create(&other).Error)

	req := f.request()
	req.ShippingAddressID = other.ID
	_, err := f.Svc.CreateOrder(context.Background(), f.UserID, req)
	require.ErrorIs(t, err, ErrNotFound)

	assert.Zero(t, countRows(t, f.DB, &models.Order{}))
	assert.Zero(t, countRows(t, f.DB, &models.OrderItem{}))
	assert.EqualValues(t, 1, countRows(t, f.DB, &models.CartItem{}))
}

func TestCreateOrder_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  transport.CreateOrderRequest
	}{
		{name: "missing address", req: transport.CreateOrderRequest{PaymentMethod: "card"}},
		{name: "missing method", req: transport.CreateOrderRequest{ShippingAddressID: uuid.New()}},
		{name: "unknown method", req: transport.CreateOrderRequest{ShippingAddressID: uuid.New(), PaymentMethod: "barter"}},
	}

	svc := &OrderService{}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.CreateOrder(context.Background(), uuid.New(), tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestListAndGetOrders_Ownership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addLine(t, decimal.NewFromInt(10), 1)
	first, err := f.Svc.CreateOrder(ctx, f.UserID, f.request())
	require.NoError(t, err)

	f.addLine(t, decimal.NewFromInt(20), 1)
	_, err = f.Svc.CreateOrder(ctx, f.UserID, f.request())
	require.NoError(t, err)

	list, err := f.Svc.ListOrders(ctx, f.UserID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, list.Total)
	assert.Len(t, list.Orders, 2)

	other, err := f.Svc.ListOrders(ctx, uuid.New(), 1, 10)
	require.NoError(t, err)
	assert.Zero(t, other.Total)
	assert.NotNil(t, other.Orders)

	_, err = f.Svc.GetOrder(ctx, uuid.New(), first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
