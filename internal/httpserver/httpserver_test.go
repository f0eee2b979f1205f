package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/antartica/bookstore/internal/hash"
	"github.com/antartica/bookstore/internal/models"
	"github.com/antartica/bookstore/internal/repo"
	"github.com/antartica/bookstore/internal/service"
)

var testSecret = []byte("test-jwt-secret")

type testEnv struct {
	T    *testing.T
	E    *echo.Echo
	DB   *gorm.DB
	Repo *repo.GormRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Book{},
		&models.User{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	r := &repo.GormRepo{DB: db}
	e := echo.New()

	Register(e, &Deps{
		AuthHandler:  &AuthHTTP{Svc: &service.UserService{Repo: r, JWTSecret: testSecret}},
		BookHandler:  &BookHTTP{Svc: &service.BookService{Repo: r}},
		CartHandler:  &CartHTTP{Svc: &service.CartService{Repo: r}},
		UserHandler:  &UserHTTP{Svc: &service.UserService{Repo: r, JWTSecret: testSecret}},
		OrderHandler: &OrderHTTP{Svc: &service.OrderService{Repo: r}},
		JWTSecret:    testSecret,
	})

	return &testEnv{T: t, E: e, DB: db, Repo: r}
}

func (env *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	env.T.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(env.T, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) seedUser(email, password, role string) *models.User {
	env.T.Helper()

	passwordHash, err := hash.HashPassword(password)
	require.NoError(env.T, err)

	user := &models.User{
		Nombre:       "Usuario",
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	require.NoError(env.T, env.DB.Create(user).Error)
	return user
}

func (env *testEnv) seedBook(title string, price, stock int64) *models.Book {
	env.T.Helper()

	book := &models.Book{Title: title, Author: "Autor", Price: price, Stock: stock}
	require.NoError(env.T, env.DB.Create(book).Error)
	return book
}

func (env *testEnv) login(email, password string) string {
	env.T.Helper()

	rec := env.do(http.MethodPost, "/api/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(env.T, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(env.T, resp.Token)
	return resp.Token
}

func (env *testEnv) stock(bookID uint) int64 {
	env.T.Helper()

	var book models.Book
	require.NoError(env.T, env.DB.First(&book, bookID).Error)
	return book.Stock
}
