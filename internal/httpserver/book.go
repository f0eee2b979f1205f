package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/antartica/bookstore/internal/events"
	"github.com/antartica/bookstore/internal/logging"
	"github.com/antartica/bookstore/internal/models"
	"github.com/antartica/bookstore/internal/search"
	"github.com/antartica/bookstore/internal/service"
	"github.com/antartica/bookstore/internal/transport"
	"github.com/antartica/bookstore/internal/util"
)

type BookHTTP struct {
	Svc      *service.BookService
	Producer *events.Producer
	ES       *elasticsearch.Client
}

func (h *BookHTTP) index(c echo.Context, book *models.Book) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.IndexBook(ctx, h.ES, book); err != nil {
		logging.FromContext(c.Request().Context()).Error("index book failed", "book_id", book.ID, "error", err)
	}
}

func (h *BookHTTP) GetBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.get_books")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	limit := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, limit)

	total, items, err := h.Svc.GetBooks(ctx, offset, limit)
	if err != nil {
		l.Error("get_books_error", "status", 500, "error", err)
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, transport.PageResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func (h *BookHTTP) GetBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.get_book")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("get_book_error", "status", 400, "reason", "id not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	book, err := h.Svc.GetBook(ctx, uint(id))
	if err != nil {
		l.Warn("get_book_error", "error", err)
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *BookHTTP) CreateBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.create_book")

	var req transport.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_book_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	book, err := h.Svc.CreateBook(ctx, req)
	if err != nil {
		l.Warn("create_book_error", "error", err)
		return httpError(c, err)
	}

	h.index(c, book)
	publish(c, h.Producer, events.TopicBookEvents, fmt.Sprint(book.ID), map[string]any{
		"type":    "book_created",
		"book_id": book.ID,
		"title":   book.Title,
	})

	l.Info("create_book_success", "book_id", book.ID)
	return c.JSON(http.StatusCreated, book)
}

func (h *BookHTTP) UpdateBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.update_book")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("update_book_error", "status", 400, "reason", "id not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	var req transport.PatchBookRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_book_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	book, err := h.Svc.PatchBook(ctx, req, uint(id))
	if err != nil {
		l.Warn("update_book_error", "error", err)
		return httpError(c, err)
	}

	h.index(c, book)
	publish(c, h.Producer, events.TopicBookEvents, fmt.Sprint(book.ID), map[string]any{
		"type":    "book_updated",
		"book_id": book.ID,
		"title":   book.Title,
	})

	l.Info("update_book_success", "book_id", book.ID)
	return c.JSON(http.StatusOK, book)
}

func (h *BookHTTP) DeleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.delete_book")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("delete_book_error", "status", 400, "reason", "id not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	if err := h.Svc.DeleteBook(ctx, uint(id)); err != nil {
		l.Warn("delete_book_error", "error", err)
		return httpError(c, err)
	}

	if h.ES != nil {
		delCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := search.DeleteBook(delCtx, h.ES, uint(id)); err != nil {
			l.Error("deindex book failed", "book_id", id, "error", err)
		}
		cancel()
	}
	publish(c, h.Producer, events.TopicBookEvents, fmt.Sprint(id), map[string]any{
		"type":    "book_deleted",
		"book_id": id,
	})

	l.Info("delete_book_success", "book_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *BookHTTP) SearchBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.search")

	if h.ES == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing query")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	limit := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, limit)

	total, books, err := search.SearchBooks(ctx, h.ES, q, offset, limit)
	if err != nil {
		l.Error("search_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, transport.PageResponse{
		Items: books,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
