package models

import "time"

// OrderStatusPending is the status every order is created with.
const OrderStatusPending = "Pending"

// OrderItem represents a single item within an order.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"` // Price at the time of order
}

// Order represents a placed customer order. Items is an immutable snapshot of
// the cart taken when the order was placed.
type Order struct {
	ID          string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string      `json:"user_id" gorm:"type:varchar(36);not null;index"`
	Items       []OrderItem `json:"items" gorm:"serializer:json;not null"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status" gorm:"type:varchar(32);not null"`
	OrderDate   time.Time   `json:"order_date"`
}

// OrderPlacedEvent is published after an order has been committed.
type OrderPlacedEvent struct {
	OrderID     string    `json:"order_id"`
	UserID      string    `json:"user_id"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	Items       int       `json:"items"`
	OrderDate   time.Time `json:"order_date"`
}
