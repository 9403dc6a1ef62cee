package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_checkout/pkg/logging"
	authmw "github.com/Skotchmaster/shop_checkout/pkg/middleware/auth"
	"github.com/Skotchmaster/shop_checkout/services/cart/internal/service"
	"github.com/Skotchmaster/shop_checkout/services/cart/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	userID, err := authmw.UserID(c)
	if err != nil {
		l.Warn("get_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_to_cart")

	userID, err := authmw.UserID(c)
	if err != nil {
		l.Warn("add_to_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.AddToCart(ctx, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("add_to_cart_error", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "quantity>0 and product_id required")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("add_to_cart_error", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		default:
			l.Error("add_to_cart_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("add_to_cart_success", "product_id", item.ProductID, "quantity", item.Quantity)
	return c.JSON(http.StatusCreated, transport.NewCartItemResponse(*item))
}

func (h *CartHTTP) DeleteOneFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.delete_one")

	userID, err := authmw.UserID(c)
	if err != nil {
		l.Warn("delete_one_from_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.DeleteOneFromCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("delete_one_from_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	resp, err := h.Svc.DeleteOneFromCart(ctx, userID, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("delete_one_from_cart_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "product_id required")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("delete_one_from_cart_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		default:
			l.Error("delete_one_from_cart_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *CartHTTP) DeleteAllFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.delete_all")

	userID, err := authmw.UserID(c)
	if err != nil {
		l.Warn("delete_all_from_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := h.Svc.DeleteAllFromCart(ctx, userID); err != nil {
		l.Error("delete_all_from_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("cart_cleared")
	return c.NoContent(http.StatusNoContent)
}
