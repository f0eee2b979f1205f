package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/antartica/bookstore/internal/logging"
	"github.com/antartica/bookstore/internal/service"
	"github.com/antartica/bookstore/internal/transport"
	"github.com/antartica/bookstore/internal/util"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) GetUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get_users")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	limit := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, limit)
	role := c.QueryParam("role")

	total, users, err := h.Svc.GetUsers(ctx, role, offset, limit)
	if err != nil {
		l.Error("get_users_error", "status", 500, "error", err)
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, transport.PageResponse{
		Items: users,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func (h *UserHTTP) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete_user")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("delete_user_error", "status", 400, "reason", "id not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	if err := h.Svc.DeleteUser(ctx, uint(id)); err != nil {
		l.Warn("delete_user_error", "error", err)
		return httpError(c, err)
	}

	l.Info("delete_user_success", "user_id", id)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
