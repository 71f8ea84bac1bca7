package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mauzoapp/mauzo_backend/internal/apperrors"
	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	portssvc "github.com/mauzoapp/mauzo_backend/internal/core/ports/services"
	"github.com/mauzoapp/mauzo_backend/internal/core/services"
	"github.com/mauzoapp/mauzo_backend/internal/dto"
)

// --- Mock SaleRepository ---
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindItemsBySaleID(ctx context.Context, saleID string) ([]domain.SaleItem, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SaleItem), args.Error(1)
}

func (m *MockSaleRepository) FindPaymentsBySaleID(ctx context.Context, saleID string) ([]domain.SalePayment, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalePayment), args.Error(1)
}

func (m *MockSaleRepository) FindRefundsBySaleID(ctx context.Context, saleID string) ([]domain.SaleRefund, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SaleRefund), args.Error(1)
}

func (m *MockSaleRepository) ListSalesByShop(ctx context.Context, shopID string, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	args := m.Called(ctx, shopID, limit, nextToken)
	var sales []domain.Sale
	if args.Get(0) != nil {
		sales = args.Get(0).([]domain.Sale)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return sales, token, args.Error(2)
}

func (m *MockSaleRepository) SaveSale(ctx context.Context, sale domain.Sale, items []domain.SaleItem, payments []domain.SalePayment, stockDeductions map[string]int64) error {
	args := m.Called(ctx, sale, items, payments, stockDeductions)
	return args.Error(0)
}

func (m *MockSaleRepository) AppendSalePayment(ctx context.Context, payment domain.SalePayment) (*domain.Sale, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) AppendSaleRefund(ctx context.Context, refund domain.SaleRefund) (*domain.Sale, error) {
	args := m.Called(ctx, refund)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) UpdateSaleStatus(ctx context.Context, saleID string, status domain.SaleStatus, userID string, now time.Time) error {
	args := m.Called(ctx, saleID, status, userID, now)
	return args.Error(0)
}

// --- Test Suite ---
type SaleServiceTestSuite struct {
	suite.Suite
	mockSaleRepo *MockSaleRepository
	service      portssvc.SaleSvcFacade
}

func (suite *SaleServiceTestSuite) SetupTest() {
	suite.mockSaleRepo = new(MockSaleRepository)
	suite.service = services.NewSaleService(suite.mockSaleRepo)
}

// --- Test Cases ---

func (suite *SaleServiceTestSuite) TestCreateSale_CreditSaleWithPartialPayment() {
	ctx := context.Background()
	shopID := uuid.NewString()
	customerID := uuid.NewString()
	productID := uuid.NewString()
	creatorUserID := uuid.NewString()

	req := dto.CreateSaleRequest{
		CustomerID:  &customerID,
		Subtotal:    decimal.NewFromInt(10000),
		TotalAmount: decimal.NewFromInt(10000),
		Items: []dto.CreateSaleItemRequest{
			{
				ProductID:    &productID,
				ProductName:  "Maize flour 2kg",
				Quantity:     decimal.NewFromInt(4),
				SellingPrice: decimal.NewFromInt(2500),
				CostPrice:    decimal.NewFromInt(2000),
				Subtotal:     decimal.NewFromInt(10000),
				Total:        decimal.NewFromInt(10000),
			},
		},
		Payments: []dto.CreateSalePaymentRequest{
			{PaymentMethod: "CASH", Amount: decimal.NewFromInt(4000)},
		},
	}

	suite.mockSaleRepo.On("SaveSale", ctx,
		mock.MatchedBy(func(s domain.Sale) bool {
			return s.ShopID == shopID &&
				s.PaymentStatus == domain.PaymentDebt &&
				s.DebtAmount.Equal(decimal.NewFromInt(6000)) &&
				s.AmountPaid.Equal(decimal.NewFromInt(4000)) &&
				s.ChangeAmount.IsZero() &&
				s.ProfitAmount.Equal(decimal.NewFromInt(2000)) &&
				s.SyncStatus == domain.SyncPending
		}),
		mock.MatchedBy(func(items []domain.SaleItem) bool {
			return len(items) == 1 && items[0].Profit.Equal(decimal.NewFromInt(2000))
		}),
		mock.MatchedBy(func(payments []domain.SalePayment) bool {
			return len(payments) == 1 && payments[0].Amount.Equal(decimal.NewFromInt(4000))
		}),
		map[string]int64{productID: 4},
	).Return(nil).Once()

	sale, err := suite.service.CreateSale(ctx, shopID, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(sale)
	suite.Equal(domain.PaymentDebt, sale.PaymentStatus)
	suite.Equal(domain.SaleCompleted, sale.Status)
	suite.True(sale.DebtAmount.Equal(decimal.NewFromInt(6000)))
	suite.Equal(creatorUserID, sale.CreatedBy)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_OverpaymentYieldsChange() {
	ctx := context.Background()
	shopID := uuid.NewString()

	req := dto.CreateSaleRequest{
		Subtotal:    decimal.NewFromInt(1000),
		TotalAmount: decimal.NewFromInt(1000),
		Items: []dto.CreateSaleItemRequest{
			{
				ProductName:  "Soda",
				Quantity:     decimal.NewFromInt(1),
				SellingPrice: decimal.NewFromInt(1000),
				Subtotal:     decimal.NewFromInt(1000),
				Total:        decimal.NewFromInt(1000),
			},
		},
		Payments: []dto.CreateSalePaymentRequest{
			{PaymentMethod: "CASH", Amount: decimal.NewFromInt(1500)},
		},
	}

	suite.mockSaleRepo.On("SaveSale", ctx,
		mock.MatchedBy(func(s domain.Sale) bool {
			return s.ChangeAmount.Equal(decimal.NewFromInt(500)) &&
				s.DebtAmount.IsZero() &&
				s.PaymentStatus == domain.PaymentPaid
		}),
		mock.Anything, mock.Anything, map[string]int64{},
	).Return(nil).Once()

	sale, err := suite.service.CreateSale(ctx, shopID, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(sale.ChangeAmount.Equal(decimal.NewFromInt(500)))
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_NoItems() {
	ctx := context.Background()

	sale, err := suite.service.CreateSale(ctx, uuid.NewString(), dto.CreateSaleRequest{}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "SaveSale")
}

func (suite *SaleServiceTestSuite) TestCreateSale_ItemTotalsMismatch() {
	ctx := context.Background()

	req := dto.CreateSaleRequest{
		Subtotal:    decimal.NewFromInt(1000),
		TotalAmount: decimal.NewFromInt(1000),
		Items: []dto.CreateSaleItemRequest{
			{
				ProductName:  "Soda",
				Quantity:     decimal.NewFromInt(1),
				SellingPrice: decimal.NewFromInt(1000),
				Subtotal:     decimal.NewFromInt(900), // does not match price*quantity
				Total:        decimal.NewFromInt(900),
			},
		},
	}

	sale, err := suite.service.CreateSale(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SaleServiceTestSuite) TestCreateSale_HeaderTotalsMismatch() {
	ctx := context.Background()

	req := dto.CreateSaleRequest{
		Subtotal:    decimal.NewFromInt(1000),
		TotalAmount: decimal.NewFromInt(1200), // subtotal - discount + tax = 1000
		Items: []dto.CreateSaleItemRequest{
			{
				ProductName:  "Soda",
				Quantity:     decimal.NewFromInt(1),
				SellingPrice: decimal.NewFromInt(1000),
				Subtotal:     decimal.NewFromInt(1000),
				Total:        decimal.NewFromInt(1000),
			},
		},
	}

	sale, err := suite.service.CreateSale(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, services.ErrSaleTotalsMismatch)
	// The mismatch is a validation failure; handlers map it to 422.
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SaleServiceTestSuite) TestCreateSale_FractionalQuantityTruncatesStockUnits() {
	ctx := context.Background()
	productID := uuid.NewString()

	req := dto.CreateSaleRequest{
		Subtotal:    decimal.NewFromInt(1500),
		TotalAmount: decimal.NewFromInt(1500),
		Items: []dto.CreateSaleItemRequest{
			{
				ProductID:    &productID,
				ProductName:  "Rice (kg)",
				Quantity:     decimal.NewFromFloat(1.5),
				SellingPrice: decimal.NewFromInt(1000),
				Subtotal:     decimal.NewFromInt(1500),
				Total:        decimal.NewFromInt(1500),
			},
		},
	}

	suite.mockSaleRepo.On("SaveSale", ctx, mock.Anything, mock.Anything, mock.Anything,
		map[string]int64{productID: 1},
	).Return(nil).Once()

	_, err := suite.service.CreateSale(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestAddPayment_SettlesDebt() {
	ctx := context.Background()
	saleID := uuid.NewString()
	userID := uuid.NewString()

	settled := &domain.Sale{
		SaleID:        saleID,
		TotalAmount:   decimal.NewFromInt(10000),
		AmountPaid:    decimal.NewFromInt(10000),
		DebtAmount:    decimal.Zero,
		PaymentStatus: domain.PaymentPaid,
	}

	suite.mockSaleRepo.On("AppendSalePayment", ctx, mock.MatchedBy(func(p domain.SalePayment) bool {
		return p.SaleID == saleID &&
			p.Amount.Equal(decimal.NewFromInt(6000)) &&
			p.PaymentMethod == "MPESA" &&
			p.CreatedBy == userID &&
			p.SyncStatus == domain.SyncPending
	})).Return(settled, nil).Once()

	sale, err := suite.service.AddPayment(ctx, saleID, dto.AddSalePaymentRequest{
		PaymentMethod: "MPESA",
		Amount:        decimal.NewFromInt(6000),
	}, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPaid, sale.PaymentStatus)
	suite.True(sale.DebtAmount.IsZero())
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestAddPayment_SaleNotFound() {
	ctx := context.Background()
	saleID := uuid.NewString()

	suite.mockSaleRepo.On("AppendSalePayment", ctx, mock.AnythingOfType("domain.SalePayment")).
		Return(nil, apperrors.ErrNotFound).Once()

	sale, err := suite.service.AddPayment(ctx, saleID, dto.AddSalePaymentRequest{
		PaymentMethod: "CASH",
		Amount:        decimal.NewFromInt(100),
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SaleServiceTestSuite) TestRefundSale() {
	ctx := context.Background()
	saleID := uuid.NewString()
	userID := uuid.NewString()

	refunded := &domain.Sale{
		SaleID:      saleID,
		TotalAmount: decimal.NewFromInt(10000),
		Status:      domain.SalePartiallyRefunded,
	}

	suite.mockSaleRepo.On("AppendSaleRefund", ctx, mock.MatchedBy(func(r domain.SaleRefund) bool {
		return r.SaleID == saleID &&
			r.Amount.Equal(decimal.NewFromInt(3000)) &&
			r.Reason == "damaged goods" &&
			r.CreatedBy == userID
	})).Return(refunded, nil).Once()

	sale, err := suite.service.RefundSale(ctx, saleID, dto.RefundSaleRequest{
		Amount: decimal.NewFromInt(3000),
		Reason: "damaged goods",
	}, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.SalePartiallyRefunded, sale.Status)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCancelSale() {
	ctx := context.Background()
	saleID := uuid.NewString()
	userID := uuid.NewString()

	existing := &domain.Sale{SaleID: saleID, Status: domain.SaleCompleted}
	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(existing, nil).Once()
	suite.mockSaleRepo.On("UpdateSaleStatus", ctx, saleID, domain.SaleCancelled, userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	sale, err := suite.service.CancelSale(ctx, saleID, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.SaleCancelled, sale.Status)
	suite.Equal(domain.SyncPending, sale.SyncStatus)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCancelSale_AlreadyCancelled() {
	ctx := context.Background()
	saleID := uuid.NewString()

	existing := &domain.Sale{SaleID: saleID, Status: domain.SaleCancelled}
	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(existing, nil).Once()

	sale, err := suite.service.CancelSale(ctx, saleID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "UpdateSaleStatus")
}

func (suite *SaleServiceTestSuite) TestGetSaleByID() {
	ctx := context.Background()
	saleID := uuid.NewString()

	header := &domain.Sale{SaleID: saleID, TotalAmount: decimal.NewFromInt(10000)}
	items := []domain.SaleItem{{SaleItemID: uuid.NewString(), SaleID: saleID}}
	payments := []domain.SalePayment{{SalePaymentID: uuid.NewString(), SaleID: saleID}}
	refunds := []domain.SaleRefund{}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(header, nil).Once()
	suite.mockSaleRepo.On("FindItemsBySaleID", ctx, saleID).Return(items, nil).Once()
	suite.mockSaleRepo.On("FindPaymentsBySaleID", ctx, saleID).Return(payments, nil).Once()
	suite.mockSaleRepo.On("FindRefundsBySaleID", ctx, saleID).Return(refunds, nil).Once()

	sale, err := suite.service.GetSaleByID(ctx, saleID)

	suite.Require().NoError(err)
	suite.Len(sale.Items, 1)
	suite.Len(sale.Payments, 1)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func TestSaleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
