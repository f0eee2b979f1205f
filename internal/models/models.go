package models

import "time"

type Book struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"  json:"id"`
	Title       string `gorm:"not null"                  json:"title"`
	Author      string `gorm:"not null"                  json:"author"`
	Price       int64  `gorm:"not null"                  json:"price"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Stock       int64  `gorm:"not null;check:stock >= 0" json:"stock"`
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Nombre       string    `json:"nombre"`
	Apellido     string    `json:"apellido"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Telefono     string    `json:"telefono"`
	Region       string    `json:"region"`
	Comuna       string    `json:"comuna"`
	RUT          string    `gorm:"column:rut"               json:"rut"`
	Role         string    `gorm:"not null;default:client"  json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

type CartItem struct {
	ID       uint `gorm:"primaryKey;autoIncrement"                json:"id"`
	UserID   uint `gorm:"uniqueIndex:idx_cart_user_book;not null" json:"user_id"`
	BookID   uint `gorm:"uniqueIndex:idx_cart_user_book;not null" json:"book_id"`
	Quantity uint `gorm:"default:1;check:quantity > 0"            json:"quantity"`
}

const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

type Order struct {
	ID              uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint        `gorm:"index;not null"           json:"user_id"`
	OrderNumber     string      `gorm:"unique;not null"          json:"order_number"`
	Subtotal        int64       `gorm:"not null"                 json:"subtotal"`
	Tax             int64       `gorm:"not null"                 json:"tax"`
	Shipping        int64       `gorm:"not null"                 json:"shipping"`
	Total           int64       `gorm:"not null"                 json:"total"`
	Status          string      `gorm:"not null"                 json:"status"`
	PaymentMethod   string      `json:"payment_method"`
	ShippingAddress string      `json:"shipping_address"`
	Notes           string      `json:"notes"`
	ExpressShipping bool        `json:"express_shipping"`
	Items           []OrderItem `gorm:"foreignKey:OrderID"       json:"items"`
	ShippedAt       *time.Time  `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time  `json:"delivered_at,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID        uint  `gorm:"primaryKey;autoIncrement"     json:"id"`
	OrderID   uint  `gorm:"index;not null"               json:"order_id"`
	BookID    uint  `gorm:"not null"                     json:"book_id"`
	Quantity  uint  `gorm:"default:1;check:quantity > 0" json:"quantity"`
	UnitPrice int64 `gorm:"not null"                     json:"unit_price"`
	Subtotal  int64 `gorm:"not null"                     json:"subtotal"`
}

// ValidTransition reports whether an order may move from one status to another.
// The forward chain is pending -> confirmed -> processing -> shipped -> delivered.
// Cancellation is only reachable before shipment and is terminal.
func ValidTransition(from, to string) bool {
	switch to {
	case OrderStatusCancelled:
		return Cancellable(from)
	case OrderStatusConfirmed:
		return from == OrderStatusPending
	case OrderStatusProcessing:
		return from == OrderStatusConfirmed
	case OrderStatusShipped:
		return from == OrderStatusProcessing
	case OrderStatusDelivered:
		return from == OrderStatusShipped
	default:
		return false
	}
}

func Cancellable(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing:
		return true
	}
	return false
}
