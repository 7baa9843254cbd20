// Package session binds HTTP requests to authenticated identities.
//
// A session is a server-side record kept in a fiber.Storage (in-memory or
// Redis). Clients hold a signed token naming the record, sent either as the
// session cookie or as a bearer token. Deleting the record revokes every copy
// of the token immediately.
package session

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CookieName is the cookie carrying the session token.
const CookieName = "session_token"

const keyPrefix = "session:"

// Identity is the authenticated caller bound to a session.
type Identity struct {
	SessionID string      `json:"sid"`
	UserID    string      `json:"user_id"`
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == models.RoleAdmin
}

// Authorize is the single policy check of the service: it allows the request
// when the identity exists and holds the required role. An empty required role
// only asks for an authenticated caller.
func Authorize(identity *Identity, required models.Role) error {
	if identity == nil {
		return apperrors.ErrUnauthorized
	}
	if required == models.RoleAdmin && !identity.IsAdmin() {
		return apperrors.ErrForbidden
	}
	return nil
}

// Manager creates, resolves and destroys sessions.
type Manager struct {
	storage fiber.Storage
	secret  []byte
	ttl     time.Duration
}

// NewManager creates a Manager storing records in storage. Tokens are signed
// with secret and expire together with their record after ttl.
func NewManager(storage fiber.Storage, secret string, ttl time.Duration) *Manager {
	return &Manager{
		storage: storage,
		secret:  []byte(secret),
		ttl:     ttl,
	}
}

// Establish opens a new session for user, sets the session cookie and returns
// the signed token.
func (m *Manager) Establish(c *fiber.Ctx, user *models.User) (string, error) {
	identity := Identity{
		SessionID: uuid.New().String(),
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
	}
	record, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("failed to encode session: %w", err)
	}
	if err := m.storage.Set(keyPrefix+identity.SessionID, record, m.ttl); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid":      identity.SessionID,
		"user_id":  identity.UserID,
		"username": identity.Username,
		"role":     string(identity.Role),
		"exp":      now.Add(m.ttl).Unix(),
		"iat":      now.Unix(),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  now.Add(m.ttl),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return signed, nil
}

// Resolve returns the identity bound to the request. It fails with
// apperrors.ErrNoActiveSession when the request carries no valid token or
// the session was destroyed.
func (m *Manager) Resolve(c *fiber.Ctx) (*Identity, error) {
	raw := tokenFrom(c)
	if raw == "" {
		return nil, apperrors.ErrNoActiveSession
	}
	sid, err := m.parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrNoActiveSession, err)
	}
	record, err := m.storage.Get(keyPrefix + sid)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if len(record) == 0 {
		return nil, apperrors.ErrNoActiveSession
	}
	var identity Identity
	if err := json.Unmarshal(record, &identity); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &identity, nil
}

// Destroy ends the session bound to the request and clears the cookie.
func (m *Manager) Destroy(c *fiber.Ctx) error {
	identity, err := m.Resolve(c)
	if err != nil {
		return err
	}
	if err := m.Revoke(identity.SessionID); err != nil {
		return err
	}
	c.ClearCookie(CookieName)
	return nil
}

// Revoke deletes the session record with the given id.
func (m *Manager) Revoke(sessionID string) error {
	if err := m.storage.Delete(keyPrefix + sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// parse validates the token signature and expiry and returns the session id.
func (m *Manager) parse(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", fmt.Errorf("token has no session id")
	}
	return sid, nil
}

func tokenFrom(c *fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return strings.TrimSpace(parts[1])
		}
	}
	return c.Cookies(CookieName)
}
