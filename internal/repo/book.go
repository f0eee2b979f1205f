package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/antartica/bookstore/internal/models"
	"github.com/antartica/bookstore/internal/transport"
)

func (r *GormRepo) GetBook(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	if err := r.DB.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *GormRepo) GetBooks(ctx context.Context, offset, limit int) (int64, []models.Book, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Book{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Book
	if err := r.DB.WithContext(ctx).Model(&models.Book{}).
		Order("id DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) CreateBook(ctx context.Context, book *models.Book) error {
	return r.DB.WithContext(ctx).Create(book).Error
}

// PatchBook updates only the fields present in the request; everything else
// keeps its current value.
func (r *GormRepo) PatchBook(ctx context.Context, req transport.PatchBookRequest, id uint) (*models.Book, error) {
	var book models.Book

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&book, id).Error; err != nil {
			return err
		}

		if req.Title != nil {
			book.Title = *req.Title
		}
		if req.Author != nil {
			book.Author = *req.Author
		}
		if req.Price != nil {
			book.Price = *req.Price
		}
		if req.Image != nil {
			book.Image = *req.Image
		}
		if req.Description != nil {
			book.Description = *req.Description
		}
		if req.Stock != nil {
			book.Stock = *req.Stock
		}

		return tx.Save(&book).Error
	})
	if err != nil {
		return nil, err
	}

	return &book, nil
}

func (r *GormRepo) DeleteBook(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Book{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
