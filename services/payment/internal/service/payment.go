package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/shop_checkout/pkg/events"
	"github.com/Skotchmaster/shop_checkout/pkg/logging"
	"github.com/Skotchmaster/shop_checkout/pkg/models"
	"github.com/Skotchmaster/shop_checkout/pkg/signature"
	"github.com/Skotchmaster/shop_checkout/services/payment/internal/gateway"
	"github.com/Skotchmaster/shop_checkout/services/payment/internal/repo"
	"github.com/Skotchmaster/shop_checkout/services/payment/internal/transport"
)

var (
	ErrValidation         = errors.New("validation")          // 400
	ErrNotFound           = errors.New("not found")           // 404
	ErrInvalidState       = errors.New("invalid state")       // 400
	ErrGateway            = errors.New("gateway error")       // 502
	ErrSignature          = errors.New("invalid signature")   // 400
	ErrVerificationFailed = errors.New("verification failed") // 400
)

const (
	signatureFailureReason = "signature verification failed"
	defaultFailureReason   = "Payment failed"
)

type PaymentService struct {
	Repo     *repo.GormRepo
	Gateway  gateway.Client
	Verifier *signature.Verifier
	Events   events.Publisher

	// KeyID is the public gateway key handed to the checkout widget.
	KeyID    string
	Currency string
}

func (s *PaymentService) InitiatePayment(ctx context.Context, userID, orderID uuid.UUID) (*transport.InitiatePaymentResponse, error) {
	l := logging.FromContext(ctx).With("svc", "payment.initiate", "order_id", orderID)

	if orderID == uuid.Nil {
		return nil, fmt.Errorf("%w: order_id required", ErrValidation)
	}

	payment, order, err := s.Repo.GetOrCreateForOrder(ctx, repo.InitParams{
		UserID:   userID,
		OrderID:  orderID,
		Currency: s.Currency,
	})
	switch {
	case errors.Is(err, repo.ErrOrderNotFound):
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
	case errors.Is(err, repo.ErrFinalized):
		return nil, fmt.Errorf("%w: payment already completed for this order", ErrInvalidState)
	case err != nil:
		return nil, err
	}

	gw, err := s.Gateway.CreateOrder(ctx, gateway.OrderRequest{
		Amount:   payment.AmountMinor(),
		Currency: payment.Currency,
		Receipt:  order.ID.String(),
		Notes: map[string]string{
			"order_id":   order.ID.String(),
			"user_id":    userID.String(),
			"payment_id": payment.ID.String(),
		},
	})
	if err != nil {
		l.Error("gateway_create_order_failed", "payment_id", payment.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	payment, err = s.Repo.MarkProcessing(ctx, payment.ID, repo.GatewayOrder{
		ID:      gw.ID,
		Receipt: gw.Receipt,
		Status:  gw.Status,
	})
	if errors.Is(err, repo.ErrFinalized) {
		return nil, fmt.Errorf("%w: payment already completed for this order", ErrInvalidState)
	}
	if err != nil {
		return nil, err
	}

	user, err := s.Repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	l.Info("payment_processing", "payment_id", payment.ID, "gateway_order_id", gw.ID, "amount_minor", gw.Amount)

	return &transport.InitiatePaymentResponse{
		GatewayOrder: transport.GatewayOrder{
			ID:       gw.ID,
			Amount:   gw.Amount,
			Currency: gw.Currency,
			Status:   gw.Status,
		},
		PaymentID: payment.ID,
		KeyID:     s.KeyID,
		UserDetails: transport.UserDetails{
			Name:    user.FullName(),
			Email:   user.Email,
			Contact: user.PhoneNumber,
		},
	}, nil
}

// VerifyPayment reconciles the signed callback the client receives from the
// checkout widget. A bad signature marks the payment failed, unless it is
// already captured, and returns ErrVerificationFailed.
func (s *PaymentService) VerifyPayment(ctx context.Context, userID uuid.UUID, req transport.VerifyPaymentRequest) (*transport.VerifyPaymentResponse, error) {
	l := logging.FromContext(ctx).With("svc", "payment.verify", "gateway_order_id", req.GatewayOrderID)

	if req.GatewayOrderID == "" || req.GatewayPaymentID == "" || req.Signature == "" {
		return nil, fmt.Errorf("%w: razorpay_order_id, razorpay_payment_id and razorpay_signature required", ErrValidation)
	}

	valid := s.Verifier.VerifyPayment(req.GatewayOrderID, req.GatewayPaymentID, req.Signature)

	res, err := s.Repo.Update(ctx, repo.PaymentFilter{
		GatewayOrderID: req.GatewayOrderID,
		UserID:         &userID,
	}, func(p *models.Payment, o *models.Order) bool {
		if !valid {
			return p.Fail(signatureFailureReason)
		}
		sig := req.Signature
		if !p.Capture(req.GatewayPaymentID, &sig) {
			return false
		}
		o.MarkPaid()
		return true
	})
	if errors.Is(err, repo.ErrPaymentNotFound) {
		return nil, fmt.Errorf("%w: payment", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if !valid {
		l.Warn("payment_signature_mismatch", "payment_id", res.Payment.ID, "status", res.Payment.Status, "changed", res.Changed)
		if res.Changed {
			s.publish(ctx, events.TypePaymentFailed, "verify", res)
		}
		return nil, ErrVerificationFailed
	}

	if res.Changed {
		l.Info("payment_captured", "payment_id", res.Payment.ID, "order_id", res.Order.ID)
		s.publish(ctx, events.TypePaymentCaptured, "verify", res)
	}

	return &transport.VerifyPaymentResponse{
		PaymentStatus: string(res.Payment.Status),
		OrderStatus:   string(res.Order.Status),
		Message:       "Payment verified successfully",
	}, nil
}

func (s *PaymentService) GetPaymentStatus(ctx context.Context, userID, paymentID uuid.UUID) (*models.Payment, error) {
	p, err := s.Repo.GetForUser(ctx, userID, paymentID)
	if errors.Is(err, repo.ErrPaymentNotFound) {
		return nil, fmt.Errorf("%w: payment %s", ErrNotFound, paymentID)
	}
	return p, err
}

func (s *PaymentService) ListPayments(ctx context.Context, userID uuid.UUID) ([]models.Payment, error) {
	return s.Repo.ListForUser(ctx, userID)
}

func (s *PaymentService) publish(ctx context.Context, typ, source string, res *repo.UpdateResult) {
	if s.Events == nil {
		return
	}

	p := res.Payment
	ev := events.PaymentChanged{
		Type:      typ,
		PaymentID: p.ID,
		OrderID:   p.OrderID,
		UserID:    p.UserID,
		Status:    string(p.Status),
		Amount:    p.Amount.StringFixed(2),
		Currency:  p.Currency,
		Source:    source,
		At:        time.Now().UTC(),
	}
	if p.GatewayOrderID != nil {
		ev.GatewayOrderID = *p.GatewayOrderID
	}
	if p.FailureReason != nil {
		ev.Reason = *p.FailureReason
	}

	if err := s.Events.Publish(ctx, events.TopicPayments, p.ID.String(), ev); err != nil {
		logging.FromContext(ctx).Error("publish_payment_event_error", "type", typ, "payment_id", p.ID, "error", err)
	}
}
