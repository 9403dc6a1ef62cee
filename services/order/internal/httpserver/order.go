package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_checkout/pkg/logging"
	authmw "github.com/Skotchmaster/shop_checkout/pkg/middleware/auth"
	"github.com/Skotchmaster/shop_checkout/pkg/util"
	"github.com/Skotchmaster/shop_checkout/services/order/internal/service"
	"github.com/Skotchmaster/shop_checkout/services/order/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	userID, err := authmw.UserID(c)
	if err != nil {
		l.Warn("create_order_error", "status", 401, "reason", "unauthorized", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("create_order_error", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrInvalidState):
			l.Warn("create_order_error", "status", 400, "reason", "cart is empty", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "cart is empty")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("create_order_error", "status", 404, "reason", "not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			l.Error("create_order_error", "status", 500, "reason", "internal error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("create_order_success", "order_id", order.ID, "total_amount", order.TotalAmount.String())
	return c.JSON(http.StatusCreated, transport.CreateOrderResponse{
		Message: "Order created successfully",
		Order:   order,
	})
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	userID, err := authmw.UserID(c)
	if err != nil {
		l.Warn("list_orders_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	resp, err := h.Svc.ListOrders(ctx, userID, page, size)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	userID, err := authmw.UserID(c)
	if err != nil {
		l.Warn("get_order_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_order_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := h.Svc.GetOrder(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_order_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("get_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, order)
}
