package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/antartica/bookstore/internal/models"
	"github.com/antartica/bookstore/internal/transport"
)

// ErrInsufficientStock is returned when the conditional stock decrement
// matches no row even though the book exists.
var ErrInsufficientStock = errors.New("insufficient stock")

func (r *GormRepo) GetCart(ctx context.Context, userID uint) ([]transport.CartRow, error) {
	rows := make([]transport.CartRow, 0)
	err := r.DB.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.id, cart_items.book_id, cart_items.quantity, books.title, books.price, books.image").
		Joins("LEFT JOIN books ON books.id = cart_items.book_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AddToCart reserves stock eagerly: the decrement and the cart upsert commit
// together or not at all. The decrement is a conditional UPDATE guarded by
// stock >= quantity, so concurrent adds on the last unit cannot drive stock
// negative; the loser observes zero affected rows and gets
// ErrInsufficientStock.
func (r *GormRepo) AddToCart(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Book{}).
			Where("id = ? AND stock >= ?", item.BookID, item.Quantity).
			Update("stock", gorm.Expr("stock - ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var book models.Book
			if err := tx.First(&book, item.BookID).Error; err != nil {
				return err
			}
			return ErrInsufficientStock
		}

		upd := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND book_id = ?", item.UserID, item.BookID).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected > 0 {
			return tx.Where("user_id = ? AND book_id = ?", item.UserID, item.BookID).First(item).Error
		}

		return tx.Create(item).Error
	})
}

// RemoveFromCart deletes the item owned by userID and restores the reserved
// stock in the same transaction. The delete is the guard: if another request
// already removed the item the affected-row count is zero and no stock is
// restored twice.
func (r *GormRepo) RemoveFromCart(ctx context.Context, itemID, userID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.CartItem
		if err := tx.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Model(&models.Book{}).
			Where("id = ?", item.BookID).
			Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error
	})
}

func (r *GormRepo) CartItems(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
