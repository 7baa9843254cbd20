package services

import (
	"context"
	"errors"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CartService manages the cart lines of users.
type CartService struct {
	store *repositories.Store
}

// NewCartService creates a new CartService.
func NewCartService(store *repositories.Store) *CartService {
	return &CartService{store: store}
}

// AddOrMerge adds quantity of productID to the cart of userID. When the cart
// already holds the product the quantities are summed into the existing line
// and created is false.
func (s *CartService) AddOrMerge(ctx context.Context, userID, productID string, quantity int) (item *models.CartItem, created bool, err error) {
	if quantity <= 0 {
		return nil, false, apperrors.NewValidationError("quantity", "must be a positive integer")
	}

	err = s.store.WithTransaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Users.GetByID(ctx, userID); err != nil {
			return err
		}
		if _, err := tx.Products.GetByID(ctx, productID); err != nil {
			return err
		}

		existing, err := tx.Carts.FindLine(ctx, userID, productID)
		switch {
		case err == nil:
			item, err = tx.Carts.AddQuantity(ctx, existing.ID, quantity)
			return err
		case errors.Is(err, apperrors.ErrNotFound):
			item = &models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
			created = true
			return tx.Carts.Create(ctx, item)
		default:
			return err
		}
	})
	if err != nil {
		return nil, false, err
	}
	return item, created, nil
}

// GetCart returns the valuation of the cart of userID. An empty cart is not
// an error.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	lines, err := s.store.Carts.ListWithProducts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return valuateCart(userID, lines), nil
}

// ClearCart removes every line of userID. It reports whether the cart held
// anything visible; lines for products no longer in the catalog are removed
// as well but do not count. Clearing an empty cart succeeds.
func (s *CartService) ClearCart(ctx context.Context, userID string) (bool, error) {
	var cleared bool
	err := s.store.WithTransaction(ctx, func(tx *repositories.Store) error {
		lines, err := tx.Carts.ListWithProducts(ctx, userID)
		if err != nil || len(lines) == 0 {
			return err
		}
		cleared = !valuateCart(userID, lines).IsEmpty()
		return tx.Carts.DeleteByUser(ctx, userID)
	})
	return cleared, err
}

// valuateCart computes subtotals and the total over the lines whose product
// is still in the catalog.
func valuateCart(userID string, lines []models.CartLine) *models.Cart {
	cart := &models.Cart{UserID: userID, Items: make([]models.CartLine, 0, len(lines))}
	for _, line := range lines {
		if !line.InCatalog {
			continue
		}
		line.Subtotal = line.Price * float64(line.Quantity)
		cart.TotalPrice += line.Subtotal
		cart.Items = append(cart.Items, line)
	}
	return cart
}
