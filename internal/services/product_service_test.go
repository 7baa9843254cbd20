package services_test

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, id string, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProducts := []models.Product{
		{ID: "1", Name: "Product A", Price: 10.0, Stock: 100},
		{ID: "2", Name: "Product B", Price: 20.0, Stock: 50},
	}
	mockRepo.On("GetAll", mock.Anything).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expected := &models.Product{ID: "1", Name: "Product A", Price: 10.0, Stock: 100}
	mockRepo.On("GetByID", mock.Anything, "1").Return(expected, nil).Once()
	mockRepo.On("GetByID", mock.Anything, "99").Return(nil, apperrors.ErrNotFound).Once()

	product, err := service.GetProductByID(context.Background(), "1")
	assert.NoError(t, err)
	assert.Equal(t, expected, product)

	_, err = service.GetProductByID(context.Background(), "99")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	// Client-supplied IDs are discarded so the repository generates one.
	product := &models.Product{ID: "client-chosen", Name: "New Product", Price: 15.0, Stock: 75}
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		return p.ID == "" && p.Name == "New Product"
	})).Return(nil).Once()

	err := service.CreateProduct(context.Background(), product)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	product := &models.Product{ID: "1", Name: "Updated Product", Price: 12.0, Stock: 90}
	mockRepo.On("Update", mock.Anything, product).Return(nil).Once()

	assert.NoError(t, service.UpdateProduct(context.Background(), product))

	missing := &models.Product{ID: "404", Name: "Ghost"}
	mockRepo.On("Update", mock.Anything, missing).Return(apperrors.ErrNotFound).Once()
	assert.ErrorIs(t, service.UpdateProduct(context.Background(), missing), apperrors.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("Delete", mock.Anything, "1").Return(nil).Once()

	err := service.DeleteProduct(context.Background(), "1")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_SeedIfEmpty(t *testing.T) {
	catalog := []models.Product{
		{Name: "Laptop", Price: 1200, Stock: 10},
		{Name: "Mouse", Price: 25, Stock: 100},
	}

	t.Run("empty catalog is seeded", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("Count", mock.Anything).Return(int64(0), nil).Once()
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Product")).Return(nil).Twice()

		n, err := services.NewProductService(mockRepo).SeedIfEmpty(context.Background(), catalog)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		mockRepo.AssertExpectations(t)
	})

	t.Run("existing catalog is left alone", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("Count", mock.Anything).Return(int64(3), nil).Once()

		n, err := services.NewProductService(mockRepo).SeedIfEmpty(context.Background(), catalog)
		require.NoError(t, err)
		assert.Zero(t, n)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("failed inserts are skipped", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("Count", mock.Anything).Return(int64(0), nil).Once()
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Product) bool { return p.Name == "Laptop" })).
			Return(errors.New("disk full")).Once()
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Product) bool { return p.Name == "Mouse" })).
			Return(nil).Once()

		n, err := services.NewProductService(mockRepo).SeedIfEmpty(context.Background(), catalog)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}
