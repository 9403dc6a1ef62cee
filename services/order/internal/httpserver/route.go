package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/shop_checkout/pkg/middleware/auth"
)

type Deps struct {
	OrderHandler *OrderHTTP
	JWTSecret    []byte
	AuthClient   authmw.Refresher
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := authmw.NewAutoRefreshMiddleware(d.JWTSecret, d.AuthClient)

	orders := e.Group("/orders")
	orders.Use(authMW.RequireAuth)

	orders.GET("", d.OrderHandler.ListOrders)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("/:id", d.OrderHandler.GetOrder)
}
