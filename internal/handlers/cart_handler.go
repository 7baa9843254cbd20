package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for carts.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes registers the cart routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cart := router.Group("/cart")
	cart.Post("/", h.HandleAddToCart)
	cart.Get("/:user_id", h.HandleGetCart)
	cart.Delete("/:user_id", h.HandleDeleteCart)
}

// AddToCartRequest is the body of an add-to-cart request.
type AddToCartRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// HandleAddToCart adds a product to a cart, merging with an existing line.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := parseAndValidate(c, &req); err != nil {
		return writeError(c, err, "")
	}

	item, created, err := h.service.AddOrMerge(c.UserContext(), req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return writeError(c, err, "User or product not found")
	}
	if created {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Item added to cart",
			"item":    item,
		})
	}
	return c.JSON(fiber.Map{
		"message": "Cart item quantity updated",
		"item":    item,
	})
}

// HandleGetCart returns the cart valuation of a user.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(c.UserContext(), c.Params("user_id"))
	if err != nil {
		return writeError(c, err, "")
	}
	if cart.IsEmpty() {
		return c.JSON(fiber.Map{
			"message":     "Cart is empty",
			"items":       cart.Items,
			"total_price": 0,
		})
	}
	return c.JSON(cart)
}

// HandleDeleteCart empties the cart of a user.
func (h *CartHandler) HandleDeleteCart(c *fiber.Ctx) error {
	cleared, err := h.service.ClearCart(c.UserContext(), c.Params("user_id"))
	if err != nil {
		return writeError(c, err, "")
	}
	if !cleared {
		return c.JSON(fiber.Map{"message": "Cart is already empty"})
	}
	return c.JSON(fiber.Map{"message": "Cart deleted successfully"})
}
