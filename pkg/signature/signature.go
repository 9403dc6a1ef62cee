// Package signature checks gateway HMAC-SHA256 signatures.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

type Verifier struct {
	keySecret     []byte
	webhookSecret []byte
}

// NewVerifier builds a verifier. An empty webhookSecret falls back to
// keySecret.
func NewVerifier(keySecret, webhookSecret string) *Verifier {
	if webhookSecret == "" {
		webhookSecret = keySecret
	}
	return &Verifier{
		keySecret:     []byte(keySecret),
		webhookSecret: []byte(webhookSecret),
	}
}

// Sign returns the lowercase hex HMAC-SHA256 of message.
func Sign(secret, message []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(message)
	return hex.EncodeToString(mac.Sum(nil))
}

func PaymentMessage(gatewayOrderID, gatewayPaymentID string) []byte {
	return []byte(gatewayOrderID + "|" + gatewayPaymentID)
}

func (v *Verifier) SignPayment(gatewayOrderID, gatewayPaymentID string) string {
	return Sign(v.keySecret, PaymentMessage(gatewayOrderID, gatewayPaymentID))
}

func (v *Verifier) SignWebhook(body []byte) string {
	return Sign(v.webhookSecret, body)
}

// VerifyPayment checks the signature the checkout widget hands back to the
// client after a successful payment.
func (v *Verifier) VerifyPayment(gatewayOrderID, gatewayPaymentID, sig string) bool {
	return equal(v.SignPayment(gatewayOrderID, gatewayPaymentID), sig)
}

// VerifyWebhook checks the signature header over the raw request body.
func (v *Verifier) VerifyWebhook(body []byte, sig string) bool {
	return equal(v.SignWebhook(body), sig)
}

func equal(expected, got string) bool {
	if got == "" {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(got))
}
