package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_checkout/pkg/db/dbtest"
	"github.com/Skotchmaster/shop_checkout/pkg/events"
	"github.com/Skotchmaster/shop_checkout/pkg/models"
	"github.com/Skotchmaster/shop_checkout/pkg/signature"
	"github.com/Skotchmaster/shop_checkout/services/payment/internal/gateway"
	"github.com/Skotchmaster/shop_checkout/services/payment/internal/repo"
)

const testKeySecret = "test_key_secret"

type fakeGateway struct {
	mu    sync.Mutex
	calls []gateway.OrderRequest
	err   error
}

func (f *fakeGateway) CreateOrder(_ context.Context, req gateway.OrderRequest) (*gateway.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return &gateway.Order{
		ID:       fmt.Sprintf("order_gw_%d", len(f.calls)),
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}, nil
}

func (f *fakeGateway) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fixture struct {
	DB       *gorm.DB
	Svc      *PaymentService
	Gateway  *fakeGateway
	Events   *events.Recorder
	Verifier *signature.Verifier
	User     models.User
	Order    models.Order
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)

	f := &fixture{
		DB:       db,
		Gateway:  &fakeGateway{},
		Events:   &events.Recorder{},
		Verifier: signature.NewVerifier(testKeySecret, ""),
	}
	f.Svc = &PaymentService{
		Repo:     &repo.GormRepo{DB: db},
		Gateway:  f.Gateway,
		Verifier: f.Verifier,
		Events:   f.Events,
		KeyID:    "rzp_test_key",
		Currency: "INR",
	}

	f.User = models.User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", PhoneNumber: "+911234567890"}
	require.NoError(t, db.Create(&f.User).Error)

	f.Order = f.newOrder(t, f.User.ID, decimal.NewFromInt(350))
	return f
}

func (f *fixture) newOrder(t *testing.T, userID uuid.UUID, total decimal.Decimal) models.Order {
	t.Helper()
	addr := models.Address{UserID: userID, Line1: "1 Main St", City: "Pune"}
	require.NoError(t, f.DB.Create(&addr).Error)

	o := models.Order{
		UserID:            userID,
		ShippingAddressID: addr.ID,
		TotalAmount:       total,
		PaymentMethod:     models.MethodCard,
		Status:            models.OrderStatusPending,
		PaymentStatus:     models.OrderPaymentPending,
	}
	require.NoError(t, f.DB.Create(&o).Error)
	return o
}

// initiate runs InitiatePayment and returns the gateway order id.
func (f *fixture) initiate(t *testing.T) string {
	t.Helper()
	resp, err := f.Svc.InitiatePayment(context.Background(), f.User.ID, f.Order.ID)
	require.NoError(t, err)
	return resp.GatewayOrder.ID
}

func (f *fixture) payment(t *testing.T) models.Payment {
	t.Helper()
	var p models.Payment
	require.NoError(t, f.DB.Where("order_id = ?", f.Order.ID).First(&p).Error)
	return p
}

func (f *fixture) order(t *testing.T) models.Order {
	t.Helper()
	var o models.Order
	require.NoError(t, f.DB.Where("id = ?", f.Order.ID).First(&o).Error)
	return o
}

func (f *fixture) countPayments(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.DB.Model(&models.Payment{}).Count(&n).Error)
	return n
}

func (f *fixture) eventsOfType(typ string) int {
	n := 0
	for _, m := range f.Events.Messages() {
		if ev, ok := m.Event.(events.PaymentChanged); ok && ev.Type == typ {
			n++
		}
	}
	return n
}

func webhookBody(t *testing.T, event, gatewayOrderID, gatewayPaymentID, description string) []byte {
	t.Helper()
	entity := map[string]any{"id": gatewayPaymentID, "order_id": gatewayOrderID}
	if description != "" {
		entity["error_description"] = description
	}
	body, err := json.Marshal(map[string]any{
		"event": event,
		"payload": map[string]any{
			"payment": map[string]any{"entity": entity},
		},
	})
	require.NoError(t, err)
	return body
}
