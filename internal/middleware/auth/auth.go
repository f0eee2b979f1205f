package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/antartica/bookstore/internal/models"
)

const TokenTTL = 8 * time.Hour

// SignToken issues the bearer token returned by login. Claims mirror what the
// frontend reads: id, email, role and display name.
func SignToken(user *models.User, secret []byte, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"id":     user.ID,
		"email":  user.Email,
		"role":   user.Role,
		"nombre": user.Nombre,
		"exp":    now.Add(TokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

type Middleware struct {
	JWTSecret []byte
}

// RequireAuth validates the Authorization: Bearer header and stores the user
// identity on the echo context.
func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "no token")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "malformed token")
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signature method: %v", t.Header["alg"])
			}
			return m.JWTSecret, nil
		})
		if err != nil || !token.Valid {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		id, ok := claims["id"].(float64)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		role, _ := claims["role"].(string)
		email, _ := claims["email"].(string)

		c.Set("userID", uint(id))
		c.Set("role", role)
		c.Set("email", email)
		return next(c)
	}
}

// RequireAdmin must run after RequireAuth.
func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, _ := c.Get("role").(string)
		if role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}
		return next(c)
	}
}

// UserID returns the authenticated user id set by RequireAuth.
func UserID(c echo.Context) (uint, error) {
	id, ok := c.Get("userID").(uint)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "no token")
	}
	return id, nil
}

func IsAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == models.RoleAdmin
}
