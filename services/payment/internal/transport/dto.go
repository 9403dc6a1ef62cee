package transport

import "github.com/google/uuid"

type InitiatePaymentRequest struct {
	OrderID uuid.UUID `json:"order_id"`
}

type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type UserDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

type InitiatePaymentResponse struct {
	GatewayOrder GatewayOrder `json:"razorpay_order"`
	PaymentID    uuid.UUID    `json:"payment_id"`
	KeyID        string       `json:"key_id"`
	UserDetails  UserDetails  `json:"user_details"`
}

type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"razorpay_order_id"`
	GatewayPaymentID string `json:"razorpay_payment_id"`
	Signature        string `json:"razorpay_signature"`
}

type VerifyPaymentResponse struct {
	PaymentStatus string `json:"payment_status"`
	OrderStatus   string `json:"order_status"`
	Message       string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// WebhookEvent is the subset of the gateway webhook payload we act on.
type WebhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity PaymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

type PaymentEntity struct {
	ID               string `json:"id"`
	OrderID          string `json:"order_id"`
	Status           string `json:"status"`
	ErrorDescription string `json:"error_description"`
}
