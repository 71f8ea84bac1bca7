package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mauzoapp/mauzo_backend/internal/apperrors"
	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	portssvc "github.com/mauzoapp/mauzo_backend/internal/core/ports/services"
	"github.com/mauzoapp/mauzo_backend/internal/core/services"
	"github.com/mauzoapp/mauzo_backend/internal/dto"
	"github.com/mauzoapp/mauzo_backend/internal/middleware"
)

// --- Mock SaleService ---
type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) CreateSale(ctx context.Context, shopID string, req dto.CreateSaleRequest, creatorUserID string) (*domain.Sale, error) {
	args := m.Called(ctx, shopID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleService) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleService) ListSalesByShop(ctx context.Context, shopID string, params dto.ListSalesParams) (*dto.ListSalesResponse, error) {
	args := m.Called(ctx, shopID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListSalesResponse), args.Error(1)
}

func (m *MockSaleService) AddPayment(ctx context.Context, saleID string, req dto.AddSalePaymentRequest, userID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleService) RefundSale(ctx context.Context, saleID string, req dto.RefundSaleRequest, userID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleService) CancelSale(ctx context.Context, saleID string, userID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.SaleSvcFacade = (*MockSaleService)(nil)

// --- Test Suite ---
type SaleHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockSaleService *MockSaleService
}

func (suite *SaleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(dto.RegisterCustomValidators())

	suite.router = gin.New()
	suite.mockSaleService = new(MockSaleService)

	v1 := suite.router.Group("/api/v1", middleware.ActingUserMiddleware())
	shops := v1.Group("/shops/:shopID")
	registerSaleRoutes(shops, v1, suite.mockSaleService)
}

func (suite *SaleHandlerTestSuite) postJSON(url string, body any, actingUser string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if actingUser != "" {
		req.Header.Set("X-Acting-User", actingUser)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func validCreateSaleBody() dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		Subtotal:    decimal.NewFromInt(1000),
		TotalAmount: decimal.NewFromInt(1000),
		Items: []dto.CreateSaleItemRequest{
			{
				ProductName:  "Cooking oil 1L",
				Quantity:     decimal.NewFromInt(2),
				SellingPrice: decimal.NewFromInt(500),
				Subtotal:     decimal.NewFromInt(1000),
				Total:        decimal.NewFromInt(1000),
			},
		},
	}
}

// --- Test Cases ---

func (suite *SaleHandlerTestSuite) TestCreateSale_Success() {
	shopID := uuid.NewString()
	userID := uuid.NewString()

	created := &domain.Sale{
		SaleID:      uuid.NewString(),
		ShopID:      shopID,
		TotalAmount: decimal.NewFromInt(1000),
		Status:      domain.SaleCompleted,
	}
	suite.mockSaleService.On("CreateSale",
		mock.Anything, shopID, mock.AnythingOfType("dto.CreateSaleRequest"), userID).
		Return(created, nil).Once()

	w := suite.postJSON(fmt.Sprintf("/api/v1/shops/%s/sales", shopID), validCreateSaleBody(), userID)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockSaleService.AssertExpectations(suite.T())
}

func (suite *SaleHandlerTestSuite) TestCreateSale_TotalsMismatchIsUnprocessable() {
	shopID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockSaleService.On("CreateSale",
		mock.Anything, shopID, mock.AnythingOfType("dto.CreateSaleRequest"), userID).
		Return(nil, services.ErrSaleTotalsMismatch).Once()

	w := suite.postJSON(fmt.Sprintf("/api/v1/shops/%s/sales", shopID), validCreateSaleBody(), userID)

	suite.Equal(http.StatusUnprocessableEntity, w.Code, "header totals mismatch is a validation failure, not a server error")
	suite.mockSaleService.AssertExpectations(suite.T())
}

func (suite *SaleHandlerTestSuite) TestCreateSale_MissingActingUser() {
	shopID := uuid.NewString()

	w := suite.postJSON(fmt.Sprintf("/api/v1/shops/%s/sales", shopID), validCreateSaleBody(), "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockSaleService.AssertNotCalled(suite.T(), "CreateSale")
}

func (suite *SaleHandlerTestSuite) TestGetSale_NotFound() {
	saleID := uuid.NewString()

	suite.mockSaleService.On("GetSaleByID", mock.Anything, saleID).
		Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/sales/"+saleID, nil)
	req.Header.Set("X-Acting-User", uuid.NewString())
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockSaleService.AssertExpectations(suite.T())
}

func TestSaleHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SaleHandlerTestSuite))
}
