package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/antartica/bookstore/internal/logging"
	"github.com/antartica/bookstore/internal/middleware/auth"
	"github.com/antartica/bookstore/internal/service"
	"github.com/antartica/bookstore/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	rows, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_to_cart")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.AddToCart(ctx, userID, req)
	if err != nil {
		l.Warn("add_to_cart_error", "error", err)
		return httpError(c, err)
	}

	l.Info("add_to_cart_success", "book_id", item.BookID, "quantity", item.Quantity)
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_from_cart")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "reason", "id not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	if err := h.Svc.RemoveFromCart(ctx, uint(id), userID); err != nil {
		l.Warn("remove_from_cart_error", "error", err)
		return httpError(c, err)
	}

	l.Info("remove_from_cart_success", "item_id", id)
	return c.NoContent(http.StatusNoContent)
}
