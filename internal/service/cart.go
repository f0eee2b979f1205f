package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/antartica/bookstore/internal/models"
	"github.com/antartica/bookstore/internal/repo"
	"github.com/antartica/bookstore/internal/transport"
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) GetCart(ctx context.Context, userID uint) ([]transport.CartRow, error) {
	return s.Repo.GetCart(ctx, userID)
}

func (s *CartService) AddToCart(ctx context.Context, userID uint, req transport.AddToCartRequest) (*models.CartItem, error) {
	if req.BookID == 0 {
		return nil, fmt.Errorf("missing book_id: %w", ErrValidation)
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	item := &models.CartItem{
		UserID:   userID,
		BookID:   req.BookID,
		Quantity: quantity,
	}
	err := s.Repo.AddToCart(ctx, item)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("book not found: %w", ErrNotFound)
	case errors.Is(err, repo.ErrInsufficientStock):
		return nil, fmt.Errorf("out of stock: %w", ErrOutOfStock)
	case err != nil:
		return nil, err
	}
	return item, nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, itemID, userID uint) error {
	err := s.Repo.RemoveFromCart(ctx, itemID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("cart item not found: %w", ErrNotFound)
	}
	return err
}
