package repositories

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// FindLine returns the line of userID for productID.
func (r *GORMCartRepository) FindLine(ctx context.Context, userID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).First(&item, "user_id = ? AND product_id = ?", userID, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart line for product %s: %w", productID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find cart line: %w", err)
	}
	return &item, nil
}

// Create inserts a new cart line.
func (r *GORMCartRepository) Create(ctx context.Context, item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create cart line: %w", err)
	}
	return nil
}

// AddQuantity increases the quantity of a line and returns the updated line.
func (r *GORMCartRepository) AddQuantity(ctx context.Context, id string, quantity int) (*models.CartItem, error) {
	db := r.db.WithContext(ctx)
	err := db.Model(&models.CartItem{}).Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity)).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update cart line %s: %w", id, err)
	}
	var item models.CartItem
	if err := db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart line %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to reload cart line %s: %w", id, err)
	}
	return &item, nil
}

// ListWithProducts returns the lines of a user joined with the current
// product name, price and stock, in insertion order. Lines whose product was
// deleted are kept with InCatalog false. Subtotals are left to the caller.
func (r *GORMCartRepository) ListWithProducts(ctx context.Context, userID string) ([]models.CartLine, error) {
	lines := []models.CartLine{}
	err := r.db.WithContext(ctx).
		Table("carts AS c").
		Select(`c.id, c.product_id, c.quantity,
			COALESCE(p.name, '') AS product_name,
			COALESCE(p.price, 0) AS price,
			COALESCE(p.stock, 0) AS stock,
			p.id IS NOT NULL AS in_catalog`).
		Joins("LEFT JOIN products p ON p.id = c.product_id").
		Where("c.user_id = ?", userID).
		Order("c.created_at, c.id").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart of user %s: %w", userID, err)
	}
	return lines, nil
}

// CountByUser returns the number of lines in the cart of userID.
func (r *GORMCartRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count cart lines of user %s: %w", userID, err)
	}
	return n, nil
}

// DeleteByUser removes every line of userID.
func (r *GORMCartRepository) DeleteByUser(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart of user %s: %w", userID, err)
	}
	return nil
}
