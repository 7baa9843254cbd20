package handlers

import (
	"log"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

const productNotFound = "Product not found"

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// RegisterRoutes registers the product routes. Reads are public, mutations
// need the admin role.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")
	admin := middleware.RequireRole(models.RoleAdmin)

	products.Get("/", h.HandleGetProducts)
	products.Get("/:id", h.HandleGetProductByID)
	products.Post("/", admin, h.HandleCreateProduct)
	products.Put("/:id", admin, h.HandleUpdateProduct)
	products.Delete("/:id", admin, h.HandleDeleteProduct)
}

// ProductRequest is the body of product create and update requests.
type ProductRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description string  `json:"description" validate:"max=500"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

func (r ProductRequest) toModel(id string) *models.Product {
	return &models.Product{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
	}
}

// HandleGetProducts lists the catalog.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return writeError(c, err, productNotFound)
	}
	return c.JSON(products)
}

// HandleGetProductByID returns a one-element list holding the product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, productNotFound)
	}
	return c.JSON([]models.Product{*product})
}

// HandleCreateProduct adds a product to the catalog.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := parseAndValidate(c, &req); err != nil {
		return writeError(c, err, productNotFound)
	}
	product := req.toModel("")
	if err := h.service.CreateProduct(c.UserContext(), product); err != nil {
		log.Printf("Error creating product: %v", err)
		return writeError(c, err, productNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product added successfully",
		"product": product,
	})
}

// HandleUpdateProduct replaces name, description, price and stock.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := parseAndValidate(c, &req); err != nil {
		return writeError(c, err, productNotFound)
	}
	if err := h.service.UpdateProduct(c.UserContext(), req.toModel(c.Params("id"))); err != nil {
		return writeError(c, err, productNotFound)
	}
	return c.JSON(fiber.Map{"message": "Product updated successfully"})
}

// HandleDeleteProduct removes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err, productNotFound)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}
