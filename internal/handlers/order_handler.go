package handlers

import (
	"log"

	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/order/:user_id", h.HandlePlaceOrder)
	router.Get("/order/:user_id", h.HandleGetUserOrders)
	router.Get("/orders/:id", h.HandleGetOrderByID)
}

// HandlePlaceOrder turns the cart of a user into an order.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	order, err := h.service.PlaceOrder(c.UserContext(), userID)
	if err != nil {
		log.Printf("Error placing order for user %s: %v", userID, err)
		return writeError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Order placed successfully",
		"order_id": order.ID,
	})
}

// HandleGetUserOrders lists the orders of a user.
func (h *OrderHandler) HandleGetUserOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders(c.UserContext(), c.Params("user_id"))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "Order not found")
	}
	return c.JSON(order)
}
