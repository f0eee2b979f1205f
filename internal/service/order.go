package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/antartica/bookstore/internal/models"
	"github.com/antartica/bookstore/internal/repo"
	"github.com/antartica/bookstore/internal/transport"
)

type OrderService struct {
	Repo *repo.GormRepo
}

func validStatus(status string) bool {
	switch status {
	case models.OrderStatusPending, models.OrderStatusConfirmed, models.OrderStatusProcessing,
		models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusCancelled:
		return true
	}
	return false
}

func (s *OrderService) Checkout(ctx context.Context, userID uint, req transport.CheckoutRequest) (*models.Order, error) {
	if req.ShippingAddress == "" {
		return nil, fmt.Errorf("shipping address required: %w", ErrValidation)
	}
	if req.PaymentMethod == "" {
		return nil, fmt.Errorf("payment method required: %w", ErrValidation)
	}

	order, err := s.Repo.CheckoutCart(ctx, userID, req, time.Now())
	switch {
	case errors.Is(err, repo.ErrEmptyCart):
		return nil, fmt.Errorf("cart is empty: %w", ErrValidation)
	case errors.Is(err, repo.ErrCartChanged):
		return nil, fmt.Errorf("cart changed during checkout: %w", ErrConflict)
	}
	return order, err
}

// GetOrder returns the order when it belongs to userID or the caller is an
// admin.
func (s *OrderService) GetOrder(ctx context.Context, id, userID uint, admin bool) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order not found: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if order.UserID != userID && !admin {
		return nil, fmt.Errorf("not your order: %w", ErrForbidden)
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint, offset, limit int) (int64, []models.Order, error) {
	return s.Repo.ListOrders(ctx, userID, offset, limit)
}

func (s *OrderService) CancelOrder(ctx context.Context, id, userID uint, admin bool) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order not found: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if order.UserID != userID && !admin {
		return nil, fmt.Errorf("not your order: %w", ErrForbidden)
	}

	cancelled, err := s.Repo.CancelOrder(ctx, id)
	if errors.Is(err, repo.ErrInvalidTransition) {
		return nil, fmt.Errorf("order cannot be cancelled in status %s: %w", order.Status, ErrConflict)
	}
	return cancelled, err
}

// UpdateStatus applies a forward transition. Cancellation goes through
// CancelOrder so stock is restored; it is rejected here.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	if !validStatus(status) {
		return nil, fmt.Errorf("unknown status %q: %w", status, ErrValidation)
	}
	if status == models.OrderStatusCancelled {
		return nil, fmt.Errorf("use the cancel endpoint to cancel orders: %w", ErrValidation)
	}

	order, err := s.Repo.UpdateOrderStatus(ctx, id, status, time.Now())
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("order not found: %w", ErrNotFound)
	case errors.Is(err, repo.ErrInvalidTransition):
		return nil, fmt.Errorf("invalid status transition: %w", ErrConflict)
	}
	return order, err
}
