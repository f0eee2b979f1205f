package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/antartica/bookstore/internal/events"
	"github.com/antartica/bookstore/internal/logging"
	"github.com/antartica/bookstore/internal/service"
	"github.com/antartica/bookstore/internal/transport"
)

type AuthHTTP struct {
	Svc      *service.UserService
	Producer *events.Producer
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Register(ctx, req); err != nil {
		l.Warn("register_error", "error", err)
		return httpError(c, err)
	}

	publish(c, h.Producer, events.TopicUserEvents, req.Email, map[string]any{
		"type":  "user_registered",
		"email": req.Email,
	})

	l.Info("register_success", "email", req.Email)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	resp, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		l.Warn("login_error", "error", err)
		return httpError(c, err)
	}

	publish(c, h.Producer, events.TopicUserEvents, fmt.Sprint(resp.User.ID), map[string]any{
		"type":    "user_logged_in",
		"user_id": resp.User.ID,
		"email":   resp.User.Email,
	})

	l.Info("login_success", "user_id", resp.User.ID)
	return c.JSON(http.StatusOK, resp)
}
