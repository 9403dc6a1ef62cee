package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/shop_checkout/pkg/middleware/auth"
)

type Deps struct {
	CartHandler *CartHTTP
	JWTSecret   []byte
	AuthClient  authmw.Refresher
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := authmw.NewAutoRefreshMiddleware(d.JWTSecret, d.AuthClient)

	cart := e.Group("/cart")
	cart.Use(authMW.RequireAuth)

	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.DELETE("", d.CartHandler.DeleteAllFromCart)
	cart.DELETE("/items", d.CartHandler.DeleteOneFromCart)
}
