package services_test

import (
	"context"
	"testing"

	"storefront/internal/database"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupDB opens an isolated in-memory SQLite database and a store on it.
func setupDB(t *testing.T) (*gorm.DB, *repositories.Store) {
	t.Helper()
	db, err := database.Open(database.Options{
		Driver: database.DriverSQLite,
		DSN:    "file:" + uuid.New().String() + "?mode=memory&cache=shared",
		Silent: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db, repositories.NewStore(db)
}

// setupStore opens an isolated in-memory SQLite store.
func setupStore(t *testing.T) *repositories.Store {
	t.Helper()
	_, store := setupDB(t)
	return store
}

func seedUser(t *testing.T, store *repositories.Store, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "hash"}
	require.NoError(t, store.Users.Create(context.Background(), user))
	return user
}

func seedProduct(t *testing.T, store *repositories.Store, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Price: price, Stock: stock}
	require.NoError(t, store.Products.Create(context.Background(), product))
	return product
}
