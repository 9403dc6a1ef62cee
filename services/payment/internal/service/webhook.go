package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Skotchmaster/shop_checkout/pkg/events"
	"github.com/Skotchmaster/shop_checkout/pkg/logging"
	"github.com/Skotchmaster/shop_checkout/pkg/models"
	"github.com/Skotchmaster/shop_checkout/services/payment/internal/repo"
	"github.com/Skotchmaster/shop_checkout/services/payment/internal/transport"
)

const (
	EventPaymentCaptured = "payment.captured"
	EventPaymentFailed   = "payment.failed"
)

type WebhookOutcome string

const (
	// WebhookApplied means the event changed the payment.
	WebhookApplied WebhookOutcome = "applied"
	// WebhookNoop means the payment was already in the resulting state, or the
	// event would have downgraded a captured payment.
	WebhookNoop WebhookOutcome = "noop"
	// WebhookIgnored covers unknown events and unknown gateway orders.
	WebhookIgnored WebhookOutcome = "ignored"
)

// HandleWebhook authenticates and applies a gateway webhook. Replays are safe:
// captured is a fixed point and a failed event never overwrites it.
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte, sig string) (WebhookOutcome, error) {
	l := logging.FromContext(ctx).With("svc", "payment.webhook")

	if !s.Verifier.VerifyWebhook(body, sig) {
		return "", ErrSignature
	}

	var ev transport.WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return "", fmt.Errorf("%w: malformed payload: %v", ErrValidation, err)
	}

	var (
		mutate repo.Mutation
		evType string
		entity = ev.Payload.Payment.Entity
	)

	switch ev.Event {
	case EventPaymentCaptured:
		if entity.ID == "" {
			return "", fmt.Errorf("%w: payment id missing", ErrValidation)
		}
		evType = events.TypePaymentCaptured
		mutate = func(p *models.Payment, o *models.Order) bool {
			if !p.Capture(entity.ID, nil) {
				return false
			}
			o.MarkPaid()
			return true
		}
	case EventPaymentFailed:
		reason := entity.ErrorDescription
		if reason == "" {
			reason = defaultFailureReason
		}
		evType = events.TypePaymentFailed
		mutate = func(p *models.Payment, _ *models.Order) bool {
			return p.Fail(reason)
		}
	default:
		l.Info("webhook_event_ignored", "event", ev.Event)
		return WebhookIgnored, nil
	}

	if entity.OrderID == "" {
		return "", fmt.Errorf("%w: order id missing", ErrValidation)
	}

	res, err := s.Repo.Update(ctx, repo.PaymentFilter{GatewayOrderID: entity.OrderID}, mutate)
	if errors.Is(err, repo.ErrPaymentNotFound) {
		l.Warn("webhook_payment_not_found", "event", ev.Event, "gateway_order_id", entity.OrderID)
		return WebhookIgnored, nil
	}
	if err != nil {
		return "", err
	}

	outcome := WebhookNoop
	if res.Changed {
		outcome = WebhookApplied
		s.publish(ctx, evType, "webhook", res)
	}

	l.Info("webhook_processed",
		"event", ev.Event,
		"gateway_order_id", entity.OrderID,
		"payment_id", res.Payment.ID,
		"status", res.Payment.Status,
		"outcome", outcome,
	)
	return outcome, nil
}
