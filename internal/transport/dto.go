package transport

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  PublicUser  `json:"user"`
}

type PublicUser struct {
	ID     uint   `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Nombre string `json:"nombre"`
}

type RegisterRequest struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Telefono string `json:"telefono"`
	Region   string `json:"region"`
	Comuna   string `json:"comuna"`
	RUT      string `json:"rut"`
}

type CreateBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Stock       int64  `json:"stock"`
}

type PatchBookRequest struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Price       *int64  `json:"price"`
	Image       *string `json:"image"`
	Description *string `json:"description"`
	Stock       *int64  `json:"stock"`
}

type AddToCartRequest struct {
	BookID   uint `json:"book_id"`
	Quantity uint `json:"quantity"`
}

// CartRow is a cart item joined with the book fields the storefront renders.
type CartRow struct {
	ID       uint   `json:"id"`
	BookID   uint   `json:"book_id"`
	Quantity uint   `json:"quantity"`
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	Image    string `json:"image"`
}

type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address"`
	PaymentMethod   string `json:"payment_method"`
	Notes           string `json:"notes"`
	ExpressShipping bool   `json:"express_shipping"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type PageResponse struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}
