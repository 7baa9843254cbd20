package middleware_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/memory/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userTable map[string]*models.User

func (u userTable) GetByID(_ context.Context, id string) (*models.User, error) {
	user, ok := u[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func setupApp(t *testing.T) (*fiber.App, map[models.Role]string, userTable) {
	t.Helper()
	users := userTable{}
	sessions := session.NewManager(memory.New(), "test_secret", time.Hour)
	app := fiber.New()
	tokens := map[models.Role]string{}

	for _, role := range []models.Role{models.RoleUser, models.RoleAdmin} {
		role := role
		users["id-"+string(role)] = &models.User{ID: "id-" + string(role), Username: string(role), Role: role}
		app.Post("/login/"+string(role), func(c *fiber.Ctx) error {
			token, err := sessions.Establish(c, &models.User{ID: "id-" + string(role), Username: string(role), Role: role})
			if err != nil {
				return err
			}
			return c.SendString(token)
		})
	}

	app.Use(middleware.LoadSession(sessions, users))
	app.Get("/me", middleware.RequireSession(), func(c *fiber.Ctx) error {
		return c.SendString(middleware.IdentityFrom(c).Username)
	})
	app.Get("/admin", middleware.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	for _, role := range []models.Role{models.RoleUser, models.RoleAdmin} {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login/"+string(role), nil), -1)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()
		tokens[role] = string(body)
	}
	return app, tokens, users
}

func status(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestRequireSession(t *testing.T) {
	app, tokens, _ := setupApp(t)
	assert.Equal(t, http.StatusUnauthorized, status(t, app, "/me", ""))
	assert.Equal(t, http.StatusUnauthorized, status(t, app, "/me", "garbage"))
	assert.Equal(t, http.StatusOK, status(t, app, "/me", tokens[models.RoleUser]))
}

func TestRequireRole(t *testing.T) {
	app, tokens, _ := setupApp(t)
	assert.Equal(t, http.StatusForbidden, status(t, app, "/admin", ""))
	assert.Equal(t, http.StatusForbidden, status(t, app, "/admin", tokens[models.RoleUser]))
	assert.Equal(t, http.StatusNoContent, status(t, app, "/admin", tokens[models.RoleAdmin]))
}

func TestLoadSession_DeletedAccount(t *testing.T) {
	app, tokens, users := setupApp(t)
	require.Equal(t, http.StatusNoContent, status(t, app, "/admin", tokens[models.RoleAdmin]))

	delete(users, "id-admin")
	assert.Equal(t, http.StatusForbidden, status(t, app, "/admin", tokens[models.RoleAdmin]))
	assert.Equal(t, http.StatusUnauthorized, status(t, app, "/me", tokens[models.RoleAdmin]))

	// The session stays revoked even if the account reappears.
	users["id-admin"] = &models.User{ID: "id-admin", Username: "admin", Role: models.RoleAdmin}
	assert.Equal(t, http.StatusUnauthorized, status(t, app, "/me", tokens[models.RoleAdmin]))
}

func TestLoadSession_RoleFollowsAccount(t *testing.T) {
	app, tokens, users := setupApp(t)

	users["id-admin"].Role = models.RoleUser
	assert.Equal(t, http.StatusForbidden, status(t, app, "/admin", tokens[models.RoleAdmin]))
	assert.Equal(t, http.StatusOK, status(t, app, "/me", tokens[models.RoleAdmin]))
}
