package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCaptured   PaymentStatus = "captured"
	PaymentFailed     PaymentStatus = "failed"
	PaymentCanceled   PaymentStatus = "canceled"
	PaymentRefunded   PaymentStatus = "refunded"
)

// Terminal reports whether no further gateway notification may move the
// payment. Captured still allows an explicit refund.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentCaptured || s == PaymentRefunded
}

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:    {PaymentProcessing, PaymentCaptured, PaymentFailed, PaymentCanceled},
	PaymentProcessing: {PaymentCaptured, PaymentFailed, PaymentCanceled},
	PaymentFailed:     {PaymentProcessing, PaymentCaptured},
	PaymentCanceled:   {PaymentProcessing},
	PaymentCaptured:   {PaymentRefunded},
	PaymentRefunded:   nil,
}

// CanTransition reports whether moving from s to next is allowed. Staying in
// the same status is not a transition.
func (s PaymentStatus) CanTransition(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	MethodCard       PaymentMethod = "card"
	MethodNetbanking PaymentMethod = "netbanking"
	MethodWallet     PaymentMethod = "wallet"
	MethodUPI        PaymentMethod = "upi"
	MethodCOD        PaymentMethod = "cod"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCard, MethodNetbanking, MethodWallet, MethodUPI, MethodCOD:
		return true
	}
	return false
}

// Payment is one-to-one with Order.
type Payment struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"                json:"id"`
	OrderID          uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"      json:"order_id"`
	Order            *Order          `gorm:"foreignKey:OrderID"                  json:"-"`
	UserID           uuid.UUID       `gorm:"type:uuid;index;not null"            json:"user_id"`
	GatewayOrderID   *string         `gorm:"size:255;uniqueIndex"                json:"razorpay_order_id"`
	GatewayPaymentID *string         `gorm:"size:255"                            json:"razorpay_payment_id"`
	GatewaySignature *string         `gorm:"size:255"                            json:"razorpay_signature"`
	Amount           decimal.Decimal `gorm:"type:numeric(12,2);not null"         json:"amount"`
	Currency         string          `gorm:"size:3;not null;default:INR"         json:"currency"`
	Status           PaymentStatus   `gorm:"size:20;not null;default:pending"    json:"status"`
	PaymentMethod    PaymentMethod   `gorm:"size:20;not null"                    json:"payment_method"`
	FailureReason    *string         `gorm:"type:text"                           json:"failure_reason"`
	Metadata         map[string]any  `gorm:"serializer:json;type:jsonb"          json:"metadata"`
	CreatedAt        time.Time       `gorm:"index"                               json:"created_at"`
	UpdatedAt        time.Time       `                                           json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}

// AmountMinor is the amount in minor currency units, rounded half away from
// zero.
func (p Payment) AmountMinor() int64 {
	return MinorUnits(p.Amount)
}

func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// Capture moves the payment to captured and records the gateway ids. It
// returns false when the payment is already captured or cannot be captured.
func (p *Payment) Capture(gatewayPaymentID string, signature *string) bool {
	if !p.Status.CanTransition(PaymentCaptured) {
		return false
	}
	p.Status = PaymentCaptured
	p.GatewayPaymentID = &gatewayPaymentID
	if signature != nil {
		p.GatewaySignature = signature
	}
	p.FailureReason = nil
	return true
}

// Fail moves the payment to failed. A captured payment is never downgraded.
func (p *Payment) Fail(reason string) bool {
	if !p.Status.CanTransition(PaymentFailed) {
		return false
	}
	p.Status = PaymentFailed
	p.FailureReason = &reason
	return true
}
