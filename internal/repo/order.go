package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/antartica/bookstore/internal/models"
	"github.com/antartica/bookstore/internal/pricing"
	"github.com/antartica/bookstore/internal/transport"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrCartChanged       = errors.New("cart changed during checkout")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// CheckoutCart turns the user's cart into a pending order. Stock was already
// reserved when items entered the cart, so checkout only prices the lines,
// assigns the next order number for the day and empties the cart, all in one
// transaction. The final delete must remove exactly the items that were
// priced; a mismatch means a concurrent cart mutation and aborts the
// transaction.
func (r *GormRepo) CheckoutCart(ctx context.Context, userID uint, req transport.CheckoutRequest, now time.Time) (*models.Order, error) {
	var order *models.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cartItems []models.CartItem
		if err := tx.Where("user_id = ?", userID).Order("id ASC").Find(&cartItems).Error; err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		orderItems := make([]models.OrderItem, 0, len(cartItems))
		lines := make([]pricing.LineItem, 0, len(cartItems))
		itemIDs := make([]uint, 0, len(cartItems))
		for _, ci := range cartItems {
			var book models.Book
			if err := tx.First(&book, ci.BookID).Error; err != nil {
				return err
			}
			orderItems = append(orderItems, models.OrderItem{
				BookID:    ci.BookID,
				Quantity:  ci.Quantity,
				UnitPrice: book.Price,
				Subtotal:  int64(ci.Quantity) * book.Price,
			})
			lines = append(lines, pricing.LineItem{Quantity: ci.Quantity, UnitPrice: book.Price})
			itemIDs = append(itemIDs, ci.ID)
		}

		totals := pricing.CalculateTotals(lines, req.ExpressShipping)

		var existing []string
		if err := tx.Model(&models.Order{}).
			Where("order_number LIKE ?", pricing.OrderNumberDayPattern(now)).
			Order("order_number DESC").Limit(1).
			Pluck("order_number", &existing).Error; err != nil {
			return err
		}

		order = &models.Order{
			UserID:          userID,
			OrderNumber:     pricing.NextOrderNumber(existing, now),
			Subtotal:        totals.Subtotal,
			Tax:             totals.Tax,
			Shipping:        totals.Shipping,
			Total:           totals.Total,
			Status:          models.OrderStatusPending,
			PaymentMethod:   req.PaymentMethod,
			ShippingAddress: req.ShippingAddress,
			Notes:           req.Notes,
			ExpressShipping: req.ExpressShipping,
			Items:           orderItems,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		res := tx.Where("id IN ?", itemIDs).Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(itemIDs)) {
			return ErrCartChanged
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uint, offset, limit int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := q.Preload("Items").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return 0, nil, err
	}

	return total, orders, nil
}

// CancelOrder restores each line's stock and marks the order cancelled. The
// status flip is a conditional update guarded by the cancellable states, so a
// concurrent transition cannot cancel a shipped order or restore stock twice.
func (r *GormRepo) CancelOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&order, id).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status IN ?", id, []string{
				models.OrderStatusPending,
				models.OrderStatusConfirmed,
				models.OrderStatusProcessing,
			}).
			Update("status", models.OrderStatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		for _, item := range order.Items {
			if err := tx.Model(&models.Book{}).
				Where("id = ?", item.BookID).
				Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		order.Status = models.OrderStatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// UpdateOrderStatus applies a guarded forward transition and stamps shipment
// and delivery times the first time those states are reached. The update is
// conditional on the status still being the one the transition was validated
// against.
func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uint, status string, now time.Time) (*models.Order, error) {
	var order models.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			return err
		}
		if !models.ValidTransition(order.Status, status) {
			return ErrInvalidTransition
		}

		updates := map[string]any{"status": status}
		if status == models.OrderStatusShipped && order.ShippedAt == nil {
			updates["shipped_at"] = now
			order.ShippedAt = &now
		}
		if status == models.OrderStatusDelivered && order.DeliveredAt == nil {
			updates["delivered_at"] = now
			order.DeliveredAt = &now
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", id, order.Status).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		order.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}
