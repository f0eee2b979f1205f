package repo

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/antartica/bookstore/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps every transaction on the same in-memory
	// database.
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

	return &GormRepo{DB: db}
}

func seedBook(t *testing.T, r *GormRepo, title string, price, stock int64) *models.Book {
	t.Helper()

	book := &models.Book{Title: title, Author: "Autor de Prueba", Price: price, Stock: stock}
	require.NoError(t, r.DB.Create(book).Error)
	return book
}

func bookStock(t *testing.T, r *GormRepo, id uint) int64 {
	t.Helper()

	var book models.Book
	require.NoError(t, r.DB.First(&book, id).Error)
	return book.Stock
}
