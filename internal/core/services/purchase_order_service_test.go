package services_test

import (
	"context"
	"testing"

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

// --- Mock PurchaseOrderRepository ---
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindPurchaseOrderByID(ctx context.Context, orderID string) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindItemsByOrderID(ctx context.Context, orderID string) ([]domain.PurchaseOrderItem, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseOrderItem), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindPaymentsByOrderID(ctx context.Context, orderID string) ([]domain.PurchasePayment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchasePayment), args.Error(1)
}

func (m *MockPurchaseOrderRepository) ListPurchaseOrdersByShop(ctx context.Context, shopID string, limit int, nextToken *string) ([]domain.PurchaseOrder, *string, error) {
	args := m.Called(ctx, shopID, limit, nextToken)
	var orders []domain.PurchaseOrder
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.PurchaseOrder)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return orders, token, args.Error(2)
}

func (m *MockPurchaseOrderRepository) SavePurchaseOrder(ctx context.Context, order domain.PurchaseOrder, items []domain.PurchaseOrderItem) error {
	args := m.Called(ctx, order, items)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) UpdatePurchaseOrder(ctx context.Context, order domain.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) AppendPurchasePayment(ctx context.Context, payment domain.PurchasePayment) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}

// --- Test Suite ---
type PurchaseOrderServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPurchaseOrderRepository
	service  portssvc.PurchaseOrderSvcFacade
}

func (suite *PurchaseOrderServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPurchaseOrderRepository)
	suite.service = services.NewPurchaseOrderService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *PurchaseOrderServiceTestSuite) TestCreatePurchaseOrder_Success() {
	ctx := context.Background()
	buyerShopID := uuid.NewString()
	creatorUserID := uuid.NewString()

	req := dto.CreatePurchaseOrderRequest{
		SellerShopID:    uuid.NewString(),
		ReferenceNumber: "PO-2026-001",
		TotalAmount:     decimal.NewFromInt(50000),
		Items: []dto.CreatePurchaseOrderItemRequest{
			{
				ProductID:   uuid.NewString(),
				ProductName: "Cooking oil 20L",
				Quantity:    decimal.NewFromInt(10),
				UnitPrice:   decimal.NewFromInt(5000),
				TotalPrice:  decimal.NewFromInt(50000),
			},
		},
	}

	suite.mockRepo.On("SavePurchaseOrder", ctx,
		mock.MatchedBy(func(o domain.PurchaseOrder) bool {
			return o.BuyerShopID == buyerShopID &&
				o.Status == domain.POPending &&
				o.TotalPaid.IsZero() &&
				o.ReferenceNumber == "PO-2026-001" &&
				o.SyncStatus == domain.SyncPending
		}),
		mock.MatchedBy(func(items []domain.PurchaseOrderItem) bool {
			return len(items) == 1 && items[0].ProductName == "Cooking oil 20L"
		}),
	).Return(nil).Once()

	order, err := suite.service.CreatePurchaseOrder(ctx, buyerShopID, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.POPending, order.Status)
	suite.Equal(creatorUserID, order.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseOrderServiceTestSuite) TestCreatePurchaseOrder_TotalsMismatch() {
	ctx := context.Background()

	req := dto.CreatePurchaseOrderRequest{
		SellerShopID:    uuid.NewString(),
		ReferenceNumber: "PO-2026-002",
		TotalAmount:     decimal.NewFromInt(60000), // items sum to 50000
		Items: []dto.CreatePurchaseOrderItemRequest{
			{
				ProductID:   uuid.NewString(),
				ProductName: "Cooking oil 20L",
				Quantity:    decimal.NewFromInt(10),
				UnitPrice:   decimal.NewFromInt(5000),
				TotalPrice:  decimal.NewFromInt(50000),
			},
		},
	}

	order, err := suite.service.CreatePurchaseOrder(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePurchaseOrder")
}

func (suite *PurchaseOrderServiceTestSuite) TestCreatePurchaseOrder_DuplicateReference() {
	ctx := context.Background()

	req := dto.CreatePurchaseOrderRequest{
		SellerShopID:    uuid.NewString(),
		ReferenceNumber: "PO-2026-001",
		TotalAmount:     decimal.NewFromInt(5000),
		Items: []dto.CreatePurchaseOrderItemRequest{
			{
				ProductID:   uuid.NewString(),
				ProductName: "Sugar 50kg",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   decimal.NewFromInt(5000),
				TotalPrice:  decimal.NewFromInt(5000),
			},
		},
	}

	suite.mockRepo.On("SavePurchaseOrder", ctx, mock.Anything, mock.Anything).
		Return(apperrors.ErrDuplicate).Once()

	order, err := suite.service.CreatePurchaseOrder(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *PurchaseOrderServiceTestSuite) TestApprovePurchaseOrder() {
	ctx := context.Background()
	orderID := uuid.NewString()
	approverID := uuid.NewString()

	pending := &domain.PurchaseOrder{PurchaseOrderID: orderID, Status: domain.POPending}
	suite.mockRepo.On("FindPurchaseOrderByID", ctx, orderID).Return(pending, nil).Once()
	suite.mockRepo.On("UpdatePurchaseOrder", ctx, mock.MatchedBy(func(o domain.PurchaseOrder) bool {
		return o.Status == domain.POApproved &&
			o.ApprovedBy != nil && *o.ApprovedBy == approverID &&
			o.SyncStatus == domain.SyncPending
	})).Return(nil).Once()

	order, err := suite.service.ApprovePurchaseOrder(ctx, orderID, approverID)

	suite.Require().NoError(err)
	suite.Equal(domain.POApproved, order.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseOrderServiceTestSuite) TestApprovePurchaseOrder_NotPending() {
	ctx := context.Background()
	orderID := uuid.NewString()

	approved := &domain.PurchaseOrder{PurchaseOrderID: orderID, Status: domain.POApproved}
	suite.mockRepo.On("FindPurchaseOrderByID", ctx, orderID).Return(approved, nil).Once()

	order, err := suite.service.ApprovePurchaseOrder(ctx, orderID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePurchaseOrder")
}

func (suite *PurchaseOrderServiceTestSuite) TestRejectPurchaseOrder() {
	ctx := context.Background()
	orderID := uuid.NewString()

	pending := &domain.PurchaseOrder{PurchaseOrderID: orderID, Status: domain.POPending}
	suite.mockRepo.On("FindPurchaseOrderByID", ctx, orderID).Return(pending, nil).Once()
	suite.mockRepo.On("UpdatePurchaseOrder", ctx, mock.MatchedBy(func(o domain.PurchaseOrder) bool {
		return o.Status == domain.PORejected && o.RejectReason == "out of stock"
	})).Return(nil).Once()

	order, err := suite.service.RejectPurchaseOrder(ctx, orderID, dto.RejectPurchaseOrderRequest{Reason: "out of stock"}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.PORejected, order.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseOrderServiceTestSuite) TestCancelPurchaseOrder_TerminalState() {
	ctx := context.Background()
	orderID := uuid.NewString()

	completed := &domain.PurchaseOrder{PurchaseOrderID: orderID, Status: domain.POCompleted}
	suite.mockRepo.On("FindPurchaseOrderByID", ctx, orderID).Return(completed, nil).Once()

	order, err := suite.service.CancelPurchaseOrder(ctx, orderID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PurchaseOrderServiceTestSuite) TestAddPayment_CompletesOnFullCoverage() {
	ctx := context.Background()
	orderID := uuid.NewString()
	userID := uuid.NewString()

	completed := &domain.PurchaseOrder{
		PurchaseOrderID: orderID,
		Status:          domain.POCompleted,
		TotalAmount:     decimal.NewFromInt(50000),
		TotalPaid:       decimal.NewFromInt(50000),
	}

	suite.mockRepo.On("AppendPurchasePayment", ctx, mock.MatchedBy(func(p domain.PurchasePayment) bool {
		return p.PurchaseOrderID == orderID &&
			p.Amount.Equal(decimal.NewFromInt(30000)) &&
			p.RecordedBy == userID &&
			p.SyncStatus == domain.SyncPending
	})).Return(completed, nil).Once()

	order, err := suite.service.AddPayment(ctx, orderID, dto.AddPurchasePaymentRequest{
		Amount:        decimal.NewFromInt(30000),
		PaymentMethod: "BANK",
	}, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.POCompleted, order.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseOrderServiceTestSuite) TestAddPayment_TerminalStateConflict() {
	ctx := context.Background()
	orderID := uuid.NewString()

	suite.mockRepo.On("AppendPurchasePayment", ctx, mock.AnythingOfType("domain.PurchasePayment")).
		Return(nil, apperrors.ErrConflict).Once()

	order, err := suite.service.AddPayment(ctx, orderID, dto.AddPurchasePaymentRequest{
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: "CASH",
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PurchaseOrderServiceTestSuite) TestGetPurchaseOrderByID() {
	ctx := context.Background()
	orderID := uuid.NewString()

	header := &domain.PurchaseOrder{PurchaseOrderID: orderID}
	items := []domain.PurchaseOrderItem{{PurchaseOrderItemID: uuid.NewString()}}
	payments := []domain.PurchasePayment{}

	suite.mockRepo.On("FindPurchaseOrderByID", ctx, orderID).Return(header, nil).Once()
	suite.mockRepo.On("FindItemsByOrderID", ctx, orderID).Return(items, nil).Once()
	suite.mockRepo.On("FindPaymentsByOrderID", ctx, orderID).Return(payments, nil).Once()

	order, err := suite.service.GetPurchaseOrderByID(ctx, orderID)

	suite.Require().NoError(err)
	suite.Len(order.Items, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestPurchaseOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PurchaseOrderServiceTestSuite))
}
