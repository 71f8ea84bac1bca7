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

// --- Mock SavingsRepository ---
type MockSavingsRepository struct {
	mock.Mock
}

func (m *MockSavingsRepository) FindSettingsByShopID(ctx context.Context, shopID string) (*domain.ShopSavingsSettings, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShopSavingsSettings), args.Error(1)
}

func (m *MockSavingsRepository) FindGoalByID(ctx context.Context, goalID string) (*domain.SavingsGoal, error) {
	args := m.Called(ctx, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsGoal), args.Error(1)
}

func (m *MockSavingsRepository) ListGoalsByShop(ctx context.Context, shopID string, limit int, offset int) ([]domain.SavingsGoal, error) {
	args := m.Called(ctx, shopID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavingsGoal), args.Error(1)
}

func (m *MockSavingsRepository) ListTransactionsByShop(ctx context.Context, shopID string, limit int, nextToken *string) ([]domain.SavingsTransaction, *string, error) {
	args := m.Called(ctx, shopID, limit, nextToken)
	var txns []domain.SavingsTransaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.SavingsTransaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockSavingsRepository) SaveGoal(ctx context.Context, goal domain.SavingsGoal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockSavingsRepository) RecordDeposit(ctx context.Context, txn domain.SavingsTransaction) (*domain.SavingsTransaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsTransaction), args.Error(1)
}

func (m *MockSavingsRepository) RecordWithdrawal(ctx context.Context, txn domain.SavingsTransaction) (*domain.SavingsTransaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsTransaction), args.Error(1)
}

// --- Test Suite ---
type SavingsServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSavingsRepository
	service  portssvc.SavingsSvcFacade
}

func (suite *SavingsServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSavingsRepository)
	suite.service = services.NewSavingsService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *SavingsServiceTestSuite) TestDeposit_TowardGoal() {
	ctx := context.Background()
	shopID := uuid.NewString()
	goalID := uuid.NewString()
	userID := uuid.NewString()

	goal := &domain.SavingsGoal{
		SavingsGoalID: goalID,
		ShopID:        shopID,
		TargetAmount:  decimal.NewFromInt(5000),
	}
	suite.mockRepo.On("FindGoalByID", ctx, goalID).Return(goal, nil).Once()

	recorded := &domain.SavingsTransaction{
		ShopID:        shopID,
		SavingsGoalID: &goalID,
		Type:          domain.SavingsDeposit,
		Amount:        decimal.NewFromInt(1000),
		BalanceBefore: decimal.Zero,
		BalanceAfter:  decimal.NewFromInt(1000),
	}
	suite.mockRepo.On("RecordDeposit", ctx, mock.MatchedBy(func(txn domain.SavingsTransaction) bool {
		return txn.ShopID == shopID &&
			txn.Type == domain.SavingsDeposit &&
			txn.Amount.Equal(decimal.NewFromInt(1000)) &&
			txn.SavingsGoalID != nil && *txn.SavingsGoalID == goalID &&
			txn.CreatedBy == userID &&
			txn.SyncStatus == domain.SyncPending
	})).Return(recorded, nil).Once()

	txn, err := suite.service.Deposit(ctx, shopID, dto.DepositRequest{
		Amount:        decimal.NewFromInt(1000),
		SavingsGoalID: &goalID,
	}, userID)

	suite.Require().NoError(err)
	suite.True(txn.BalanceAfter.Equal(decimal.NewFromInt(1000)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SavingsServiceTestSuite) TestDeposit_NonPositiveAmount() {
	ctx := context.Background()

	txn, err := suite.service.Deposit(ctx, uuid.NewString(), dto.DepositRequest{
		Amount: decimal.Zero,
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "RecordDeposit")
}

func (suite *SavingsServiceTestSuite) TestDeposit_ForeignGoalRejected() {
	ctx := context.Background()
	shopID := uuid.NewString()
	goalID := uuid.NewString()

	// Goal belongs to a different shop.
	foreign := &domain.SavingsGoal{SavingsGoalID: goalID, ShopID: uuid.NewString()}
	suite.mockRepo.On("FindGoalByID", ctx, goalID).Return(foreign, nil).Once()

	txn, err := suite.service.Deposit(ctx, shopID, dto.DepositRequest{
		Amount:        decimal.NewFromInt(1000),
		SavingsGoalID: &goalID,
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "RecordDeposit")
}

func (suite *SavingsServiceTestSuite) TestWithdraw_Success() {
	ctx := context.Background()
	shopID := uuid.NewString()
	userID := uuid.NewString()

	recorded := &domain.SavingsTransaction{
		ShopID:        shopID,
		Type:          domain.SavingsWithdrawal,
		Amount:        decimal.NewFromInt(400),
		BalanceBefore: decimal.NewFromInt(1000),
		BalanceAfter:  decimal.NewFromInt(600),
	}
	suite.mockRepo.On("RecordWithdrawal", ctx, mock.MatchedBy(func(txn domain.SavingsTransaction) bool {
		return txn.Type == domain.SavingsWithdrawal &&
			txn.Amount.Equal(decimal.NewFromInt(400)) &&
			txn.Description == "restocking"
	})).Return(recorded, nil).Once()

	txn, err := suite.service.Withdraw(ctx, shopID, dto.WithdrawRequest{
		Amount: decimal.NewFromInt(400),
		Reason: "restocking",
	}, userID)

	suite.Require().NoError(err)
	suite.True(txn.BalanceAfter.Equal(decimal.NewFromInt(600)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SavingsServiceTestSuite) TestWithdraw_InsufficientBalance() {
	ctx := context.Background()
	shopID := uuid.NewString()

	suite.mockRepo.On("RecordWithdrawal", ctx, mock.AnythingOfType("domain.SavingsTransaction")).
		Return(nil, apperrors.ErrInsufficientBalance).Once()

	txn, err := suite.service.Withdraw(ctx, shopID, dto.WithdrawRequest{
		Amount: decimal.NewFromInt(1500),
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
}

func (suite *SavingsServiceTestSuite) TestGetSettings_NeverSaved() {
	ctx := context.Background()
	shopID := uuid.NewString()

	suite.mockRepo.On("FindSettingsByShopID", ctx, shopID).Return(nil, apperrors.ErrNotFound).Once()

	settings, err := suite.service.GetSettings(ctx, shopID)

	suite.Require().NoError(err)
	suite.Equal(shopID, settings.ShopID)
	suite.False(settings.Enabled)
	suite.True(settings.CurrentBalance.IsZero())
	suite.True(settings.TotalSaved.IsZero())
}

func (suite *SavingsServiceTestSuite) TestCreateGoal() {
	ctx := context.Background()
	shopID := uuid.NewString()
	creatorUserID := uuid.NewString()

	suite.mockRepo.On("SaveGoal", ctx, mock.MatchedBy(func(g domain.SavingsGoal) bool {
		return g.ShopID == shopID &&
			g.Name == "New fridge" &&
			g.TargetAmount.Equal(decimal.NewFromInt(5000)) &&
			g.CurrentAmount.IsZero() &&
			g.ProgressPercentage == 0 &&
			g.Status == domain.GoalActive &&
			g.CreatedBy == creatorUserID
	})).Return(nil).Once()

	goal, err := suite.service.CreateGoal(ctx, shopID, dto.CreateSavingsGoalRequest{
		Name:         "New fridge",
		TargetAmount: decimal.NewFromInt(5000),
	}, creatorUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.GoalActive, goal.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SavingsServiceTestSuite) TestCreateGoal_NonPositiveTarget() {
	ctx := context.Background()

	goal, err := suite.service.CreateGoal(ctx, uuid.NewString(), dto.CreateSavingsGoalRequest{
		Name:         "Broken",
		TargetAmount: decimal.Zero,
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(goal)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SavingsServiceTestSuite) TestListTransactions_DefaultLimit() {
	ctx := context.Background()
	shopID := uuid.NewString()

	txns := []domain.SavingsTransaction{{SavingsTransactionID: uuid.NewString(), ShopID: shopID}}
	suite.mockRepo.On("ListTransactionsByShop", ctx, shopID, 50, (*string)(nil)).
		Return(txns, nil, nil).Once()

	resp, err := suite.service.ListTransactions(ctx, shopID, dto.ListSavingsTransactionsParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestSavingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SavingsServiceTestSuite))
}
