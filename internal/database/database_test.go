package database_test

import (
	"testing"

	"storefront/internal/database"
	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteMigratesSchema(t *testing.T) {
	db, err := database.Open(database.Options{
		Driver: database.DriverSQLite,
		DSN:    "file:" + uuid.New().String() + "?mode=memory&cache=shared",
		Silent: true,
	})
	require.NoError(t, err)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	for _, model := range []interface{}{&models.User{}, &models.Product{}, &models.CartItem{}, &models.Order{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}
	assert.True(t, db.Migrator().HasIndex(&models.CartItem{}, "idx_cart_user_product"))
}

func TestOpen_RejectsNegativeStock(t *testing.T) {
	db, err := database.Open(database.Options{
		Driver: database.DriverSQLite,
		DSN:    "file:" + uuid.New().String() + "?mode=memory&cache=shared",
		Silent: true,
	})
	require.NoError(t, err)

	err = db.Create(&models.Product{ID: uuid.New().String(), Name: "Broken", Price: 1, Stock: -1}).Error
	assert.Error(t, err)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := database.Open(database.Options{Driver: "oracle", DSN: "whatever"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
