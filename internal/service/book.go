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

type BookService struct {
	Repo *repo.GormRepo
}

func (s *BookService) GetBook(ctx context.Context, id uint) (*models.Book, error) {
	book, err := s.Repo.GetBook(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("book not found: %w", ErrNotFound)
	}
	return book, err
}

func (s *BookService) GetBooks(ctx context.Context, offset, limit int) (int64, []models.Book, error) {
	return s.Repo.GetBooks(ctx, offset, limit)
}

func (s *BookService) CreateBook(ctx context.Context, req transport.CreateBookRequest) (*models.Book, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("title required: %w", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price must be >= 0: %w", ErrValidation)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("stock must be >= 0: %w", ErrValidation)
	}

	book := &models.Book{
		Title:       req.Title,
		Author:      req.Author,
		Price:       req.Price,
		Image:       req.Image,
		Description: req.Description,
		Stock:       req.Stock,
	}
	if err := s.Repo.CreateBook(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *BookService) PatchBook(ctx context.Context, req transport.PatchBookRequest, id uint) (*models.Book, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("price must be >= 0: %w", ErrValidation)
	}
	if req.Stock != nil && *req.Stock < 0 {
		return nil, fmt.Errorf("stock must be >= 0: %w", ErrValidation)
	}

	book, err := s.Repo.PatchBook(ctx, req, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("book not found: %w", ErrNotFound)
	}
	return book, err
}

func (s *BookService) DeleteBook(ctx context.Context, id uint) error {
	err := s.Repo.DeleteBook(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("book not found: %w", ErrNotFound)
	}
	return err
}
