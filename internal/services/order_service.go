package services

import (
	"context"
	"errors"
	"log"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// OrderEventPublisher delivers order events to downstream consumers.
type OrderEventPublisher interface {
	PublishOrderPlaced(event interface{}) error
}

// OrderService turns carts into orders.
type OrderService struct {
	store     *repositories.Store
	publisher OrderEventPublisher
	now       func() time.Time
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(store *repositories.Store, publisher OrderEventPublisher) *OrderService {
	return &OrderService{
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

// PlaceOrder converts the cart of userID into an order. Inside one
// transaction it validates every line against the current stock, decrements
// the stock, stores an order snapshot priced as the cart was read and clears
// the cart. Any failure rolls the whole unit back.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string) (*models.Order, error) {
	var order *models.Order
	err := s.store.WithTransaction(ctx, func(tx *repositories.Store) error {
		lines, err := tx.Carts.ListWithProducts(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return apperrors.ErrEmptyCart
		}

		// All lines are checked before any stock is touched.
		for _, line := range lines {
			if !line.InCatalog || line.Stock < line.Quantity {
				return &apperrors.StockError{ProductID: line.ProductID, Requested: line.Quantity, Available: line.Stock}
			}
		}

		for _, line := range lines {
			if err := tx.Products.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				if errors.Is(err, apperrors.ErrInsufficientStock) {
					return &apperrors.StockError{ProductID: line.ProductID, Requested: line.Quantity, Available: line.Stock}
				}
				return err
			}
		}

		cart := valuateCart(userID, lines)
		order = &models.Order{
			UserID:      userID,
			Items:       snapshot(cart),
			TotalAmount: cart.TotalPrice,
			Status:      models.OrderStatusPending,
			OrderDate:   s.now().UTC(),
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}
		return tx.Carts.DeleteByUser(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Order %s placed for user %s (%d items, total %.2f)", order.ID, userID, len(order.Items), order.TotalAmount)
	s.publishPlaced(order)
	return order, nil
}

// ListOrders returns the orders of userID.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.store.Orders.ListByUser(ctx, userID)
}

// GetOrder returns a single order.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.store.Orders.GetByID(ctx, id)
}

func snapshot(cart *models.Cart) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Price:       line.Price,
		})
	}
	return items
}

// publishPlaced is best effort: the order is already committed.
func (s *OrderService) publishPlaced(order *models.Order) {
	if s.publisher == nil {
		return
	}
	event := models.OrderPlacedEvent{
		OrderID:     order.ID,
		UserID:      order.UserID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Items:       len(order.Items),
		OrderDate:   order.OrderDate,
	}
	if err := s.publisher.PublishOrderPlaced(event); err != nil {
		log.Printf("Warning: failed to publish order placed event for order %s: %v", order.ID, err)
	}
}
