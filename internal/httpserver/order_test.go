package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antartica/bookstore/internal/models"
)

func checkout(env *testEnv, token string) models.Order {
	env.T.Helper()

	rec := env.do(http.MethodPost, "/api/orders", token, map[string]any{
		"shipping_address": "Av. Providencia 1234, Santiago",
		"payment_method":   "webpay",
	})
	require.Equal(env.T, http.StatusCreated, rec.Code, rec.Body.String())

	var order models.Order
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &order))
	return order
}

func TestCheckout(t *testing.T) {
	env := newTestEnv(t)
	token := clientToken(env)
	book := env.seedBook("Papelucho", 10000, 5)

	rec := env.do(http.MethodPost, "/api/cart", token, map[string]any{
		"book_id": book.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	order := checkout(env, token)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ANT-"), order.OrderNumber)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.EqualValues(t, 10000, order.Subtotal)
	assert.EqualValues(t, 1900, order.Tax)
	assert.EqualValues(t, 5990, order.Shipping)
	assert.EqualValues(t, 17890, order.Total)
	require.Len(t, order.Items, 1)

	// The cart is emptied and stock stays reserved.
	rec = env.do(http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
	assert.EqualValues(t, 4, env.stock(book.ID))
}

func TestCheckout_EmptyCart(t *testing.T) {
	env := newTestEnv(t)
	token := clientToken(env)

	rec := env.do(http.MethodPost, "/api/orders", token, map[string]any{
		"shipping_address": "Av. Providencia 1234, Santiago",
		"payment_method":   "webpay",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckout_MissingAddress(t *testing.T) {
	env := newTestEnv(t)
	token := clientToken(env)
	book := env.seedBook("Ficciones", 10000, 5)

	rec := env.do(http.MethodPost, "/api/cart", token, map[string]any{
		"book_id": book.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(http.MethodPost, "/api/orders", token, map[string]any{
		"payment_method": "webpay",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListOrders_OwnOnly(t *testing.T) {
	env := newTestEnv(t)
	token := clientToken(env)
	book := env.seedBook("Rayuela", 14990, 5)

	rec := env.do(http.MethodPost, "/api/cart", token, map[string]any{
		"book_id": book.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	checkout(env, token)

	env.seedUser("otro@cliente.com", "clave1234", models.RoleClient)
	otherToken := env.login("otro@cliente.com", "clave1234")

	rec = env.do(http.MethodGet, "/api/orders", otherToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []models.Order `json:"items"`
		Total int64          `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.EqualValues(t, 0, resp.Total)
	assert.Empty(t, resp.Items)
}

func TestGetOrder_OwnerOrAdmin(t *testing.T) {
	env := newTestEnv(t)
	token := clientToken(env)
	book := env.seedBook("Bonsái", 7990, 5)

	rec := env.do(http.MethodPost, "/api/cart", token, map[string]any{
		"book_id": book.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	order := checkout(env, token)

	// Another client cannot see it.
	env.seedUser("otro@cliente.com", "clave1234", models.RoleClient)
	otherToken := env.login("otro@cliente.com", "clave1234")
	rec = env.do(http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// An admin can.
	rec = env.do(http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), adminToken(env), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCancelOrder_RestoresStock(t *testing.T) {
	env := newTestEnv(t)
	token := clientToken(env)
	book := env.seedBook("Sub Terra", 8990, 5)

	rec := env.do(http.MethodPost, "/api/cart", token, map[string]any{
		"book_id":  book.ID,
		"quantity": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	order := checkout(env, token)
	require.EqualValues(t, 3, env.stock(book.ID))

	rec = env.do(http.MethodPost, fmt.Sprintf("/api/orders/%d/cancel", order.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cancelled models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cancelled))
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	assert.EqualValues(t, 5, env.stock(book.ID))

	// A second cancel must not restore stock again.
	rec = env.do(http.MethodPost, fmt.Sprintf("/api/orders/%d/cancel", order.ID), token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.EqualValues(t, 5, env.stock(book.ID))
}

func TestUpdateOrderStatus(t *testing.T) {
	env := newTestEnv(t)
	token := clientToken(env)
	book := env.seedBook("Mala onda", 8990, 5)

	rec := env.do(http.MethodPost, "/api/cart", token, map[string]any{
		"book_id": book.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	order := checkout(env, token)

	admin := adminToken(env)

	rec = env.do(http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", order.ID), admin, map[string]string{
		"status": models.OrderStatusConfirmed,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, models.OrderStatusConfirmed, updated.Status)

	// Skipping ahead in the chain is rejected.
	rec = env.do(http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", order.ID), admin, map[string]string{
		"status": models.OrderStatusDelivered,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Cancellation goes through its own endpoint.
	rec = env.do(http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", order.ID), admin, map[string]string{
		"status": models.OrderStatusCancelled,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderStatus_AdminOnly(t *testing.T) {
	env := newTestEnv(t)
	token := clientToken(env)
	book := env.seedBook("Papelucho historiador", 6990, 5)

	rec := env.do(http.MethodPost, "/api/cart", token, map[string]any{
		"book_id": book.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	order := checkout(env, token)

	rec = env.do(http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", order.ID), token, map[string]string{
		"status": models.OrderStatusConfirmed,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
