package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/antartica/bookstore/internal/events"
	"github.com/antartica/bookstore/internal/logging"
	"github.com/antartica/bookstore/internal/middleware/auth"
	"github.com/antartica/bookstore/internal/service"
	"github.com/antartica/bookstore/internal/transport"
	"github.com/antartica/bookstore/internal/util"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer *events.Producer
}

func (h *OrderHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.Checkout(ctx, userID, req)
	if err != nil {
		l.Warn("checkout_error", "error", err)
		return httpError(c, err)
	}

	publish(c, h.Producer, events.TopicOrderEvents, fmt.Sprint(order.ID), map[string]any{
		"type":         "order_created",
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      order.UserID,
		"total":        order.Total,
	})

	l.Info("checkout_success", "order_id", order.ID, "order_number", order.OrderNumber)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	limit := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, limit)

	total, orders, err := h.Svc.ListOrders(ctx, userID, offset, limit)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, transport.PageResponse{
		Items: orders,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("get_order_error", "status", 400, "reason", "id not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	order, err := h.Svc.GetOrder(ctx, uint(id), userID, auth.IsAdmin(c))
	if err != nil {
		l.Warn("get_order_error", "error", err)
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel_order")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("cancel_order_error", "status", 400, "reason", "id not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	order, err := h.Svc.CancelOrder(ctx, uint(id), userID, auth.IsAdmin(c))
	if err != nil {
		l.Warn("cancel_order_error", "error", err)
		return httpError(c, err)
	}

	publish(c, h.Producer, events.TopicOrderEvents, fmt.Sprint(order.ID), map[string]any{
		"type":         "order_cancelled",
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	})

	l.Info("cancel_order_success", "order_id", order.ID)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("update_status_error", "status", 400, "reason", "id not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateStatus(ctx, uint(id), req.Status)
	if err != nil {
		l.Warn("update_status_error", "error", err)
		return httpError(c, err)
	}

	l.Info("update_status_success", "order_id", order.ID, "status", order.Status)
	return c.JSON(http.StatusOK, order)
}
