package repositories

import (
	"context"

	"storefront/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	// DecrementStock atomically subtracts quantity from the product stock and
	// fails with apperrors.ErrInsufficientStock when stock would go negative.
	DecrementStock(ctx context.Context, id string, quantity int) error
}
