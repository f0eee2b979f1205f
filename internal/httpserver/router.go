package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/antartica/bookstore/internal/middleware/auth"
)

type Deps struct {
	AuthHandler  *AuthHTTP
	BookHandler  *BookHTTP
	CartHandler  *CartHTTP
	UserHandler  *UserHTTP
	OrderHandler *OrderHTTP
	JWTSecret    []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	mw := &auth.Middleware{JWTSecret: d.JWTSecret}

	api := e.Group("/api")

	api.POST("/login", d.AuthHandler.Login)
	api.POST("/register", d.AuthHandler.Register)

	api.GET("/books", d.BookHandler.GetBooks)
	api.GET("/books/search", d.BookHandler.SearchBooks)
	api.GET("/books/:id", d.BookHandler.GetBook)
	api.POST("/books", d.BookHandler.CreateBook, mw.RequireAuth, mw.RequireAdmin)
	api.PUT("/books/:id", d.BookHandler.UpdateBook, mw.RequireAuth, mw.RequireAdmin)
	api.DELETE("/books/:id", d.BookHandler.DeleteBook, mw.RequireAuth, mw.RequireAdmin)

	cart := api.Group("/cart", mw.RequireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.DELETE("/:id", d.CartHandler.RemoveFromCart)

	api.GET("/users", d.UserHandler.GetUsers, mw.RequireAuth, mw.RequireAdmin)
	api.DELETE("/users/:id", d.UserHandler.DeleteUser, mw.RequireAuth, mw.RequireAdmin)

	orders := api.Group("/orders", mw.RequireAuth)
	orders.POST("", d.OrderHandler.Checkout)
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.POST("/:id/cancel", d.OrderHandler.CancelOrder)
	orders.PATCH("/:id/status", d.OrderHandler.UpdateStatus, mw.RequireAdmin)
}
