package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antartica/bookstore/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]string{
		"nombre":   "Cliente",
		"apellido": "Prueba",
		"email":    "cliente@cliente.com",
		"password": "cliente123",
		"telefono": "+56912345678",
		"region":   "Metropolitana",
		"comuna":   "Santiago",
		"rut":      "20.142.499-2",
	}

	rec := env.do(http.MethodPost, "/api/register", "", payload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(http.MethodPost, "/api/login", "", map[string]string{
		"email":    "cliente@cliente.com",
		"password": "cliente123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID     uint   `json:"id"`
			Email  string `json:"email"`
			Role   string `json:"role"`
			Nombre string `json:"nombre"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "cliente@cliente.com", resp.User.Email)
	assert.Equal(t, models.RoleClient, resp.User.Role)
	assert.Equal(t, "Cliente", resp.User.Nombre)
}

func TestRegister_InvalidRUT(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/register", "", map[string]string{
		"email":    "cliente@cliente.com",
		"password": "cliente123",
		"rut":      "12345678-9",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_MissingCredentials(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/register", "", map[string]string{
		"email": "cliente@cliente.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser("cliente@cliente.com", "cliente123", models.RoleClient)

	rec := env.do(http.MethodPost, "/api/register", "", map[string]string{
		"email":    "cliente@cliente.com",
		"password": "otra-clave",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser("cliente@cliente.com", "cliente123", models.RoleClient)

	rec := env.do(http.MethodPost, "/api/login", "", map[string]string{
		"email":    "cliente@cliente.com",
		"password": "clave-incorrecta",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodGet, "/api/cart", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutesForbiddenForClients(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser("cliente@cliente.com", "cliente123", models.RoleClient)
	token := env.login("cliente@cliente.com", "cliente123")

	rec := env.do(http.MethodPost, "/api/books", token, map[string]any{
		"title": "Libro", "author": "Autor", "price": 1000, "stock": 1,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodGet, "/api/users", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
