package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/antartica/bookstore/internal/events"
	"github.com/antartica/bookstore/internal/logging"
	"github.com/antartica/bookstore/internal/service"
)

// httpError translates the service error taxonomy into an HTTP status. The
// wrapped reason travels to the client; unexpected errors become a generic
// 500 and the detail stays in the server log.
func httpError(c echo.Context, err error) error {
	l := logging.FromContext(c.Request().Context())

	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrOutOfStock):
		return echo.NewHTTPError(http.StatusBadRequest, "out of stock")
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		l.Error("internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "server error")
	}
}

// publish sends a domain event without failing the request; the mutation has
// already committed by the time events go out.
func publish(c echo.Context, producer *events.Producer, topic, key string, event map[string]any) {
	if producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("event publish failed", "topic", topic, "error", err)
	}
}
