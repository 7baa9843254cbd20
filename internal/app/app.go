// Package app wires the store, services, sessions and HTTP routes together.
package app

import (
	"context"
	"errors"
	"log"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/memory/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/storage/redis/v3"
	"gorm.io/gorm"
)

// Dependencies are the external resources the application runs on.
type Dependencies struct {
	DB             *gorm.DB
	SessionStorage fiber.Storage
	SessionSecret  string
	SessionTTL     time.Duration
	// Publisher receives order events; nil disables publishing.
	Publisher services.OrderEventPublisher
	// AccessLog enables the request logger middleware.
	AccessLog bool
}

// App is the assembled service.
type App struct {
	Fiber    *fiber.App
	Store    *repositories.Store
	Sessions *session.Manager
	Auth     *services.AuthService
	Products *services.ProductService
	Carts    *services.CartService
	Orders   *services.OrderService
}

// New builds the services and registers every route under /v1.
func New(deps Dependencies) *App {
	store := repositories.NewStore(deps.DB)
	sessions := session.NewManager(deps.SessionStorage, deps.SessionSecret, deps.SessionTTL)

	a := &App{
		Store:    store,
		Sessions: sessions,
		Auth:     services.NewAuthService(store.Users),
		Products: services.NewProductService(store.Products),
		Carts:    services.NewCartService(store),
		Orders:   services.NewOrderService(store, deps.Publisher),
	}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(recover.New())
	if deps.AccessLog {
		app.Use(logger.New())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	v1 := app.Group("/v1", middleware.LoadSession(sessions, store.Users))
	handlers.NewAuthHandler(a.Auth, sessions).RegisterRoutes(v1)
	handlers.NewProductHandler(a.Products).RegisterRoutes(v1)
	handlers.NewCartHandler(a.Carts).RegisterRoutes(v1)
	handlers.NewOrderHandler(a.Orders).RegisterRoutes(v1)

	a.Fiber = app
	return a
}

// Bootstrap loads the sample catalog into an empty store and creates the
// configured admin account when no admin exists.
func (a *App) Bootstrap(ctx context.Context, cfg *config.Config, catalog []models.Product) error {
	if cfg.SeedProducts {
		n, err := a.Products.SeedIfEmpty(ctx, catalog)
		if err != nil {
			return err
		}
		if n > 0 {
			log.Printf("Seeded %d sample products", n)
		}
	}

	created, err := a.Auth.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail)
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		log.Printf("Warning: %v; set ADMIN_PASSWORD to bootstrap one", err)
	case err != nil:
		return err
	case created:
		log.Printf("Created admin account %s", cfg.AdminUsername)
	}
	return nil
}

// NewSessionStorage returns the session backend selected by the configuration.
func NewSessionStorage(cfg *config.Config) fiber.Storage {
	if cfg.SessionStore == config.SessionStoreRedis {
		log.Printf("Using Redis session storage")
		return redis.New(redis.Config{URL: cfg.RedisURL})
	}
	log.Printf("Using in-memory session storage")
	return memory.New()
}
