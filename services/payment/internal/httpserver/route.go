package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/shop_checkout/pkg/middleware/auth"
)

const WebhookPath = "/payments/webhook"

type Deps struct {
	PaymentHandler *PaymentHTTP
	JWTSecret      []byte
	AuthClient     authmw.Refresher
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST(WebhookPath, d.PaymentHandler.Webhook)

	authMW := authmw.NewAutoRefreshMiddleware(d.JWTSecret, d.AuthClient)

	payments := e.Group("/payments")
	payments.Use(authMW.RequireAuth)

	payments.GET("", d.PaymentHandler.ListPayments)
	payments.POST("/create-order", d.PaymentHandler.InitiatePayment)
	payments.POST("/verify", d.PaymentHandler.VerifyPayment)
	payments.GET("/:id/status", d.PaymentHandler.GetPaymentStatus)
}
