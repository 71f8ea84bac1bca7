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

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomersByShop(ctx context.Context, shopID string, limit int, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, shopID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateCustomerTotals(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) ApplyCustomerPayment(ctx context.Context, customerID string, amount decimal.Decimal, userID string, now time.Time) (*domain.Customer, error) {
	args := m.Called(ctx, customerID, amount, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindCustomerByIDForUpdate(ctx context.Context, tx pgx.Tx, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, tx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) UpdateCustomerTotalsInTx(ctx context.Context, tx pgx.Tx, customer domain.Customer) error {
	args := m.Called(ctx, tx, customer)
	return args.Error(0)
}

// --- Test Suite ---
type CustomerServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCustomerRepository
	service  portssvc.CustomerSvcFacade
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCustomerRepository)
	suite.service = services.NewCustomerService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *CustomerServiceTestSuite) TestCreateCustomer() {
	ctx := context.Background()
	shopID := uuid.NewString()
	creatorUserID := uuid.NewString()
	limit := decimal.NewFromInt(20000)

	suite.mockRepo.On("SaveCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.ShopID == shopID &&
			c.Name == "Amina Hassan" &&
			c.Phone == "+255700000001" &&
			c.CreditLimit.Equal(limit) &&
			c.CurrentDebt.IsZero() &&
			c.TotalPurchases.IsZero() &&
			c.TotalPaid.IsZero() &&
			c.SyncStatus == domain.SyncPending &&
			c.CreatedBy == creatorUserID
	})).Return(nil).Once()

	customer, err := suite.service.CreateCustomer(ctx, shopID, dto.CreateCustomerRequest{
		Name:        "Amina Hassan",
		Phone:       "+255700000001",
		CreditLimit: &limit,
	}, creatorUserID)

	suite.Require().NoError(err)
	suite.NotEmpty(customer.CustomerID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_NoLimitDefaultsToZero() {
	ctx := context.Background()
	shopID := uuid.NewString()

	suite.mockRepo.On("SaveCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.CreditLimit.IsZero()
	})).Return(nil).Once()

	customer, err := suite.service.CreateCustomer(ctx, shopID, dto.CreateCustomerRequest{
		Name: "Walk-in regular",
	}, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(customer.CreditLimit.IsZero())
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_NegativeLimit() {
	ctx := context.Background()
	negative := decimal.NewFromInt(-100)

	customer, err := suite.service.CreateCustomer(ctx, uuid.NewString(), dto.CreateCustomerRequest{
		Name:        "Broken",
		CreditLimit: &negative,
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(customer)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCustomer")
}

func (suite *CustomerServiceTestSuite) TestRecordCustomerPayment() {
	ctx := context.Background()
	customerID := uuid.NewString()
	userID := uuid.NewString()

	updated := &domain.Customer{
		CustomerID:  customerID,
		CurrentDebt: decimal.NewFromInt(2000),
		TotalPaid:   decimal.NewFromInt(8000),
	}
	suite.mockRepo.On("ApplyCustomerPayment", ctx, customerID, decimal.NewFromInt(3000), userID, mock.AnythingOfType("time.Time")).
		Return(updated, nil).Once()

	customer, err := suite.service.RecordCustomerPayment(ctx, customerID, dto.RecordCustomerPaymentRequest{
		Amount:        decimal.NewFromInt(3000),
		PaymentMethod: "MOBILE_MONEY",
	}, userID)

	suite.Require().NoError(err)
	suite.True(customer.CurrentDebt.Equal(decimal.NewFromInt(2000)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestRecordCustomerPayment_NonPositiveAmount() {
	ctx := context.Background()

	customer, err := suite.service.RecordCustomerPayment(ctx, uuid.NewString(), dto.RecordCustomerPaymentRequest{
		Amount: decimal.Zero,
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(customer)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ApplyCustomerPayment")
}

func (suite *CustomerServiceTestSuite) TestGetCustomerByID_NotFound() {
	ctx := context.Background()
	customerID := uuid.NewString()

	suite.mockRepo.On("FindCustomerByID", ctx, customerID).Return(nil, apperrors.ErrNotFound).Once()

	customer, err := suite.service.GetCustomerByID(ctx, customerID)

	suite.Require().Error(err)
	suite.Nil(customer)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CustomerServiceTestSuite) TestListCustomersByShop_DefaultLimit() {
	ctx := context.Background()
	shopID := uuid.NewString()

	customers := []domain.Customer{{CustomerID: uuid.NewString(), ShopID: shopID}}
	suite.mockRepo.On("ListCustomersByShop", ctx, shopID, 20, 0).Return(customers, nil).Once()

	got, err := suite.service.ListCustomersByShop(ctx, shopID, 0, 0)

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}
