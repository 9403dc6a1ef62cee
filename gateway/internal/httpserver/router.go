package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_checkout/gateway/internal/middleware"
	"github.com/Skotchmaster/shop_checkout/pkg/middleware/csrf"
)

const (
	apiPrefix   = "/api/v1"
	WebhookPath = apiPrefix + "/payments/webhook"
)

type Deps struct {
	AuthURL    string
	CartURL    string
	OrderURL   string
	PaymentURL string

	JWTSecret  []byte
	CSRFConfig csrf.Config
	Logger     *slog.Logger
}

// CSRFSkipPaths are the routes called by machines rather than browsers.
func CSRFSkipPaths() []string {
	return []string{
		"/health/live",
		"/health/ready",
		apiPrefix + "/auth/refresh",
		WebhookPath,
	}
}

func Register(e *echo.Echo, d *Deps) error {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for _, m := range middleware.Common(logger) {
		e.Use(m)
	}
	e.Use(csrf.Middleware(d.CSRFConfig))

	cartProxy, err := newProxy(d.CartURL, apiPrefix)
	if err != nil {
		return err
	}
	orderProxy, err := newProxy(d.OrderURL, apiPrefix)
	if err != nil {
		return err
	}
	paymentProxy, err := newProxy(d.PaymentURL, apiPrefix)
	if err != nil {
		return err
	}

	if d.AuthURL != "" {
		authProxy, err := newProxy(d.AuthURL, apiPrefix)
		if err != nil {
			return err
		}
		e.Any(apiPrefix+"/auth/*", authProxy)
	}

	// The gateway authenticates webhooks by body signature, not by cookie.
	e.POST(WebhookPath, paymentProxy)

	api := e.Group(apiPrefix)
	api.Use(middleware.Middleware(d.JWTSecret))

	api.Any("/cart", cartProxy)
	api.Any("/cart/*", cartProxy)
	api.Any("/orders", orderProxy)
	api.Any("/orders/*", orderProxy)
	api.Any("/payments", paymentProxy)
	api.Any("/payments/*", paymentProxy)

	return nil
}
