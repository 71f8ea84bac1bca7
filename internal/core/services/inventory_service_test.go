package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mauzoapp/mauzo_backend/internal/apperrors"
	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	portssvc "github.com/mauzoapp/mauzo_backend/internal/core/ports/services"
	"github.com/mauzoapp/mauzo_backend/internal/core/services"
	"github.com/mauzoapp/mauzo_backend/internal/dto"
)

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProductsByShop(ctx context.Context, shopID string, limit int, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, shopID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateStock(ctx context.Context, productID string, stock int64, userID string, now time.Time) error {
	args := m.Called(ctx, productID, stock, userID, now)
	return args.Error(0)
}

func (m *MockProductRepository) DeductStock(ctx context.Context, productID string, quantity int64, userID string, now time.Time) (*domain.Product, error) {
	args := m.Called(ctx, productID, quantity, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) SoftDeleteProduct(ctx context.Context, productID string, userID string, now time.Time) error {
	args := m.Called(ctx, productID, userID, now)
	return args.Error(0)
}

func (m *MockProductRepository) FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, tx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockProductRepository) ApplyStockDeductionsInTx(ctx context.Context, tx pgx.Tx, deductions map[string]int64, userID string, now time.Time) error {
	args := m.Called(ctx, tx, deductions, userID, now)
	return args.Error(0)
}

// --- Test Suite ---
type InventoryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockProductRepository
	service  portssvc.InventorySvcFacade
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockProductRepository)
	suite.service = services.NewInventoryService(suite.mockRepo)
}

func int64Ptr(v int64) *int64 { return &v }

// --- Test Cases ---

func (suite *InventoryServiceTestSuite) TestCreateProduct_Tracked() {
	ctx := context.Background()
	shopID := uuid.NewString()
	creatorUserID := uuid.NewString()
	cost := decimal.NewFromInt(300)

	suite.mockRepo.On("SaveProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.ShopID == shopID &&
			p.Name == "Maize flour 2kg" &&
			p.TrackInventory &&
			p.CurrentStock != nil && *p.CurrentStock == 40 &&
			p.SellingPrice.Equal(decimal.NewFromInt(500)) &&
			p.SyncStatus == domain.SyncPending &&
			p.CreatedBy == creatorUserID
	})).Return(nil).Once()

	product, err := suite.service.CreateProduct(ctx, shopID, dto.CreateProductRequest{
		Name:           "Maize flour 2kg",
		TrackInventory: true,
		CurrentStock:   int64Ptr(40),
		CostPerUnit:    &cost,
		SellingPrice:   decimal.NewFromInt(500),
	}, creatorUserID)

	suite.Require().NoError(err)
	suite.NotEmpty(product.ProductID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestCreateProduct_NegativeInitialStock() {
	ctx := context.Background()

	product, err := suite.service.CreateProduct(ctx, uuid.NewString(), dto.CreateProductRequest{
		Name:         "Bad stock",
		CurrentStock: int64Ptr(-5),
		SellingPrice: decimal.NewFromInt(100),
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveProduct")
}

func (suite *InventoryServiceTestSuite) TestDeductStock() {
	ctx := context.Background()
	productID := uuid.NewString()
	userID := uuid.NewString()

	updated := &domain.Product{
		ProductID:      productID,
		TrackInventory: true,
		CurrentStock:   int64Ptr(37),
	}
	suite.mockRepo.On("DeductStock", ctx, productID, int64(3), userID, mock.AnythingOfType("time.Time")).
		Return(updated, nil).Once()

	product, err := suite.service.DeductStock(ctx, productID, 3, userID)

	suite.Require().NoError(err)
	suite.Equal(int64(37), *product.CurrentStock)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestDeductStock_NonPositiveQuantity() {
	ctx := context.Background()

	product, err := suite.service.DeductStock(ctx, uuid.NewString(), 0, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeductStock")
}

func (suite *InventoryServiceTestSuite) TestDeductStock_AllowsNegativeResult() {
	ctx := context.Background()
	productID := uuid.NewString()
	userID := uuid.NewString()

	// The repository applies no floor; oversold stock comes back negative.
	updated := &domain.Product{
		ProductID:      productID,
		TrackInventory: true,
		CurrentStock:   int64Ptr(-2),
	}
	suite.mockRepo.On("DeductStock", ctx, productID, int64(5), userID, mock.AnythingOfType("time.Time")).
		Return(updated, nil).Once()

	product, err := suite.service.DeductStock(ctx, productID, 5, userID)

	suite.Require().NoError(err)
	suite.Equal(int64(-2), *product.CurrentStock)
}

func (suite *InventoryServiceTestSuite) TestSetStock() {
	ctx := context.Background()
	productID := uuid.NewString()
	userID := uuid.NewString()

	reloaded := &domain.Product{
		ProductID:      productID,
		TrackInventory: true,
		CurrentStock:   int64Ptr(100),
	}
	suite.mockRepo.On("UpdateStock", ctx, productID, int64(100), userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockRepo.On("FindProductByID", ctx, productID).Return(reloaded, nil).Once()

	product, err := suite.service.SetStock(ctx, productID, 100, userID)

	suite.Require().NoError(err)
	suite.Equal(int64(100), *product.CurrentStock)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestCheckAvailability() {
	ctx := context.Background()
	productID := uuid.NewString()

	tracked := &domain.Product{ProductID: productID, TrackInventory: true, CurrentStock: int64Ptr(3)}
	suite.mockRepo.On("FindProductByID", ctx, productID).Return(tracked, nil).Twice()

	ok, err := suite.service.CheckAvailability(ctx, productID, 3)
	suite.Require().NoError(err)
	suite.True(ok)

	ok, err = suite.service.CheckAvailability(ctx, productID, 4)
	suite.Require().NoError(err)
	suite.False(ok)
}

func (suite *InventoryServiceTestSuite) TestCheckAvailability_Untracked() {
	ctx := context.Background()
	productID := uuid.NewString()

	untracked := &domain.Product{ProductID: productID, TrackInventory: false}
	suite.mockRepo.On("FindProductByID", ctx, productID).Return(untracked, nil).Once()

	ok, err := suite.service.CheckAvailability(ctx, productID, 1000)

	suite.Require().NoError(err)
	suite.True(ok)
}

func (suite *InventoryServiceTestSuite) TestDeleteProduct() {
	ctx := context.Background()
	productID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockRepo.On("SoftDeleteProduct", ctx, productID, userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.DeleteProduct(ctx, productID, userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestGetProductByID_NotFound() {
	ctx := context.Background()
	productID := uuid.NewString()

	suite.mockRepo.On("FindProductByID", ctx, productID).Return(nil, apperrors.ErrNotFound).Once()

	product, err := suite.service.GetProductByID(ctx, productID)

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}
