package repositories

import (
	"context"

	"storefront/internal/models"
)

// CartRepository defines the interface for cart line data access.
type CartRepository interface {
	FindLine(ctx context.Context, userID, productID string) (*models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) error
	AddQuantity(ctx context.Context, id string, quantity int) (*models.CartItem, error)
	ListWithProducts(ctx context.Context, userID string) ([]models.CartLine, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	DeleteByUser(ctx context.Context, userID string) error
}
