package models

import "time"

// CartItem is one (product, quantity) line of a user's cart. A user holds at
// most one line per product; repeated adds merge into the existing line.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_product"`
	ProductID string    `json:"product_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName keeps the cart lines in the "carts" table.
func (CartItem) TableName() string { return "carts" }

// CartLine is a cart item joined with the current product name and price.
type CartLine struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Subtotal    float64 `json:"subtotal"`
	// Stock and InCatalog describe the joined product at read time.
	Stock     int  `json:"-"`
	InCatalog bool `json:"-"`
}

// Cart is the valuation of a user's cart.
type Cart struct {
	UserID     string     `json:"-"`
	Items      []CartLine `json:"items"`
	TotalPrice float64    `json:"total_price"`
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
