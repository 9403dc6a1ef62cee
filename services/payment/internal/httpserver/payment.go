package httpserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_checkout/pkg/logging"
	authmw "github.com/Skotchmaster/shop_checkout/pkg/middleware/auth"
	"github.com/Skotchmaster/shop_checkout/services/payment/internal/service"
	"github.com/Skotchmaster/shop_checkout/services/payment/internal/transport"
)

const (
	HeaderSignature         = "X-Gateway-Signature"
	headerRazorpaySig       = "X-Razorpay-Signature"
	maxWebhookBody    int64 = 1 << 20
)

type PaymentHTTP struct {
	Svc *service.PaymentService
}

func (h *PaymentHTTP) InitiatePayment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.initiate")

	userID, err := authmw.UserID(c)
	if err != nil {
		l.Warn("initiate_payment_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.InitiatePaymentRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("initiate_payment_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	resp, err := h.Svc.InitiatePayment(ctx, userID, req.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("initiate_payment_error", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "order_id required")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("initiate_payment_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		case errors.Is(err, service.ErrInvalidState):
			l.Warn("initiate_payment_error", "status", 400, "reason", "already captured", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Payment already completed for this order")
		case errors.Is(err, service.ErrGateway):
			l.Error("initiate_payment_error", "status", 502, "reason", "gateway", "error", err)
			return echo.NewHTTPError(http.StatusBadGateway, "Order creation failed")
		default:
			l.Error("initiate_payment_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *PaymentHTTP) VerifyPayment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.verify")

	userID, err := authmw.UserID(c)
	if err != nil {
		l.Warn("verify_payment_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("verify_payment_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	resp, err := h.Svc.VerifyPayment(ctx, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("verify_payment_error", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			l.Warn("verify_payment_error", "status", 404, "reason", "payment not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Payment not found")
		case errors.Is(err, service.ErrVerificationFailed):
			l.Warn("verify_payment_error", "status", 400, "reason", "signature mismatch")
			return echo.NewHTTPError(http.StatusBadRequest, "Payment verification failed")
		default:
			l.Error("verify_payment_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("verify_payment_success", "payment_status", resp.PaymentStatus, "order_status", resp.OrderStatus)
	return c.JSON(http.StatusOK, resp)
}

// Webhook is unauthenticated; the body signature is the credential. Every
// failure is answered with 400 so the gateway retries only what it can fix.
func (h *PaymentHTTP) Webhook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.webhook")

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		l.Warn("webhook_error", "status", 400, "reason", "read body", "error", err)
		return c.String(http.StatusBadRequest, "Error: unreadable body")
	}

	sig := c.Request().Header.Get(HeaderSignature)
	if sig == "" {
		sig = c.Request().Header.Get(headerRazorpaySig)
	}

	outcome, err := h.Svc.HandleWebhook(ctx, body, sig)
	if err != nil {
		if errors.Is(err, service.ErrSignature) {
			l.Warn("webhook_error", "status", 400, "reason", "invalid signature")
			return c.String(http.StatusBadRequest, "Invalid signature")
		}
		l.Warn("webhook_error", "status", 400, "reason", "processing", "error", err)
		return c.String(http.StatusBadRequest, "Error: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "outcome": string(outcome)})
}

func (h *PaymentHTTP) GetPaymentStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.status")

	userID, err := authmw.UserID(c)
	if err != nil {
		l.Warn("payment_status_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("payment_status_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payment id")
	}

	p, err := h.Svc.GetPaymentStatus(ctx, userID, paymentID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("payment_status_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Payment not found")
		}
		l.Error("payment_status_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PaymentHTTP) ListPayments(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.list")

	userID, err := authmw.UserID(c)
	if err != nil {
		l.Warn("list_payments_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	payments, err := h.Svc.ListPayments(ctx, userID)
	if err != nil {
		l.Error("list_payments_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, payments)
}
