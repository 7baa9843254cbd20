package middleware

import (
	"context"
	"errors"
	"log"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/session"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// UserLookup finds the account behind a session.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// LoadSession resolves the session of the request, if any, and stores the
// identity for the handlers. Requests without a session pass through.
// Sessions whose account no longer exists are revoked and treated as absent,
// and the role is taken from the account rather than the session record.
func LoadSession(sessions *session.Manager, users UserLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := sessions.Resolve(c)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNoActiveSession) {
				log.Printf("Session lookup failed: %v", err)
				return err
			}
			return c.Next()
		}

		user, err := users.GetByID(c.UserContext(), identity.UserID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				log.Printf("Session owner lookup failed: %v", err)
				return err
			}
			if err := sessions.Revoke(identity.SessionID); err != nil {
				log.Printf("Error revoking session of deleted user %s: %v", identity.Username, err)
			}
			return c.Next()
		}
		identity.Role = user.Role

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// IdentityFrom returns the identity stored by LoadSession, or nil.
func IdentityFrom(c *fiber.Ctx) *session.Identity {
	identity, _ := c.Locals(identityKey).(*session.Identity)
	return identity
}

// RequireSession rejects requests without an authenticated identity with 401.
func RequireSession() fiber.Handler {
	return Require("")
}

// RequireRole rejects requests whose identity lacks role. Admin-only routes
// answer 403 to anonymous callers as well.
func RequireRole(role models.Role) fiber.Handler {
	return Require(role)
}

// Require applies session.Authorize to the request identity.
func Require(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := IdentityFrom(c)
		err := session.Authorize(identity, role)
		if err == nil {
			return c.Next()
		}
		if errors.Is(err, apperrors.ErrUnauthorized) && role != "" {
			err = apperrors.ErrForbidden
		}
		status := fiber.StatusUnauthorized
		message := "Unauthorized"
		if errors.Is(err, apperrors.ErrForbidden) {
			status = fiber.StatusForbidden
			message = "Forbidden"
		}
		return c.Status(status).JSON(fiber.Map{"error": message})
	}
}
