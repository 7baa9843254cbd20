package handlers

import (
	"log"

	"storefront/internal/middleware"
	"storefront/internal/services"
	"storefront/internal/session"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for accounts and sessions.
type AuthHandler struct {
	authService *services.AuthService
	sessions    *session.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

// RegisterRoutes registers the account routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/register", h.HandleRegister)
	router.Post("/login", h.HandleLogin)
	router.Post("/logout", h.HandleLogout)
	router.Get("/user/:username", h.HandleGetUser)
	router.Delete("/user/:username", middleware.RequireSession(), h.HandleDeleteUser)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=1,max=72"`
	Email    string `json:"email" validate:"required,email,max=255"`
	IsAdmin  bool   `json:"is_admin"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := parseAndValidate(c, &req); err != nil {
		return writeError(c, err, "")
	}

	_, err := h.authService.Register(c.UserContext(), services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		log.Printf("Error registering user %s: %v", req.Username, err)
		return writeError(c, err, "")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin checks the credentials and opens a session.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseAndValidate(c, &req); err != nil {
		return writeError(c, err, "")
	}

	user, err := h.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		log.Printf("Error during login for user %s: %v", req.Username, err)
		return writeError(c, err, "")
	}

	token, err := h.sessions.Establish(c, user)
	if err != nil {
		return writeError(c, err, "")
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"role":    user.Role,
		"id":      user.ID,
		"token":   token,
	})
}

// HandleLogout ends the current session.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.sessions.Destroy(c); err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// HandleGetUser returns the public profile of a user.
func (h *AuthHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.authService.GetUser(c.UserContext(), c.Params("username"))
	if err != nil {
		return writeError(c, err, "User not found")
	}
	return c.JSON(fiber.Map{
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	})
}

// HandleDeleteUser deletes an account. Users may delete themselves, admins
// may delete anyone. A self-delete also ends the caller's session.
func (h *AuthHandler) HandleDeleteUser(c *fiber.Ctx) error {
	target := c.Params("username")
	self, err := h.authService.DeleteUser(c.UserContext(), middleware.IdentityFrom(c), target)
	if err != nil {
		return writeError(c, err, "User not found")
	}

	if self {
		if err := h.sessions.Destroy(c); err != nil {
			log.Printf("Error ending session of deleted user %s: %v", target, err)
		}
		return c.JSON(fiber.Map{"message": "User account deleted successfully"})
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
