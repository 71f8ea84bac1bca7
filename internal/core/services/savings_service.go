package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mauzoapp/mauzo_backend/internal/apperrors"
	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	portsrepo "github.com/mauzoapp/mauzo_backend/internal/core/ports/repositories"
	portssvc "github.com/mauzoapp/mauzo_backend/internal/core/ports/services"
	"github.com/mauzoapp/mauzo_backend/internal/dto"
	"github.com/mauzoapp/mauzo_backend/internal/middleware"
)

// savingsService maintains the per-shop savings balance with a complete
// append-only transaction history. Goal progress moves on deposits only.
type savingsService struct {
	savingsRepo portsrepo.SavingsRepositoryFacade
}

// NewSavingsService creates a new savings ledger engine.
func NewSavingsService(savingsRepo portsrepo.SavingsRepositoryFacade) portssvc.SavingsSvcFacade {
	return &savingsService{savingsRepo: savingsRepo}
}

var _ portssvc.SavingsSvcFacade = (*savingsService)(nil)

// resolveGoal verifies a goal-directed movement targets an existing goal of
// the same shop. A foreign goal is indistinguishable from a missing one.
func (s *savingsService) resolveGoal(ctx context.Context, shopID string, goalID *string) error {
	if goalID == nil {
		return nil
	}
	goal, err := s.savingsRepo.FindGoalByID(ctx, *goalID)
	if err != nil {
		return fmt.Errorf("failed to find savings goal %s: %w", *goalID, err)
	}
	if goal.ShopID != shopID {
		return fmt.Errorf("%w: savings goal %s", apperrors.ErrNotFound, *goalID)
	}
	return nil
}

// Deposit adds to the shop's savings balance. The balance chain values are
// derived under the settings row lock inside the repository transaction.
func (s *savingsService) Deposit(ctx context.Context, shopID string, req dto.DepositRequest, userID string) (*domain.SavingsTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrValidation)
	}
	if err := s.resolveGoal(ctx, shopID, req.SavingsGoalID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.SavingsTransaction{
		SavingsTransactionID: uuid.NewString(),
		ShopID:               shopID,
		SavingsGoalID:        req.SavingsGoalID,
		Type:                 domain.SavingsDeposit,
		Amount:               req.Amount,
		Description:          req.Description,
		TransactionDate:      now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
		SyncFields: domain.SyncFields{SyncStatus: domain.SyncPending},
	}

	recorded, err := s.savingsRepo.RecordDeposit(ctx, txn)
	if err != nil {
		logger.Error("Failed to record deposit", slog.String("error", err.Error()), slog.String("shop_id", shopID))
		return nil, fmt.Errorf("failed to record deposit: %w", err)
	}

	logger.Info("Savings deposit recorded",
		slog.String("shop_id", shopID),
		slog.String("amount", req.Amount.String()),
		slog.String("balance_after", recorded.BalanceAfter.String()))
	return recorded, nil
}

// Withdraw removes from the shop's savings balance. The one hard guard of
// the ledger: a withdrawal exceeding the locked balance fails with
// ErrInsufficientBalance and changes nothing.
func (s *savingsService) Withdraw(ctx context.Context, shopID string, req dto.WithdrawRequest, userID string) (*domain.SavingsTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive", apperrors.ErrValidation)
	}
	if err := s.resolveGoal(ctx, shopID, req.SavingsGoalID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.SavingsTransaction{
		SavingsTransactionID: uuid.NewString(),
		ShopID:               shopID,
		SavingsGoalID:        req.SavingsGoalID,
		Type:                 domain.SavingsWithdrawal,
		Amount:               req.Amount,
		Description:          req.Reason,
		TransactionDate:      now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
		SyncFields: domain.SyncFields{SyncStatus: domain.SyncPending},
	}

	recorded, err := s.savingsRepo.RecordWithdrawal(ctx, txn)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientBalance) {
			logger.Warn("Withdrawal exceeds savings balance",
				slog.String("shop_id", shopID),
				slog.String("amount", req.Amount.String()))
		} else {
			logger.Error("Failed to record withdrawal", slog.String("error", err.Error()), slog.String("shop_id", shopID))
		}
		return nil, fmt.Errorf("failed to record withdrawal: %w", err)
	}

	logger.Info("Savings withdrawal recorded",
		slog.String("shop_id", shopID),
		slog.String("amount", req.Amount.String()),
		slog.String("balance_after", recorded.BalanceAfter.String()))
	return recorded, nil
}

// GetSettings retrieves the shop's savings settings. A shop that has never
// saved gets an empty, disabled settings view rather than an error.
func (s *savingsService) GetSettings(ctx context.Context, shopID string) (*domain.ShopSavingsSettings, error) {
	settings, err := s.savingsRepo.FindSettingsByShopID(ctx, shopID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.ShopSavingsSettings{
				ShopID:         shopID,
				CurrentBalance: decimal.Zero,
				TotalSaved:     decimal.Zero,
				TotalWithdrawn: decimal.Zero,
			}, nil
		}
		middleware.GetLoggerFromCtx(ctx).Error("Failed to find savings settings", slog.String("error", err.Error()), slog.String("shop_id", shopID))
		return nil, fmt.Errorf("failed to find savings settings: %w", err)
	}
	return settings, nil
}

// CreateGoal registers a new savings goal for a shop.
func (s *savingsService) CreateGoal(ctx context.Context, shopID string, req dto.CreateSavingsGoalRequest, creatorUserID string) (*domain.SavingsGoal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.TargetAmount.IsPositive() {
		return nil, fmt.Errorf("%w: target amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	goal := domain.SavingsGoal{
		SavingsGoalID:      uuid.NewString(),
		ShopID:             shopID,
		Name:               req.Name,
		TargetAmount:       req.TargetAmount,
		CurrentAmount:      decimal.Zero,
		AmountWithdrawn:    decimal.Zero,
		ProgressPercentage: 0,
		Status:             domain.GoalActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
		SyncFields: domain.SyncFields{SyncStatus: domain.SyncPending},
	}

	if err := s.savingsRepo.SaveGoal(ctx, goal); err != nil {
		logger.Error("Failed to save savings goal", slog.String("error", err.Error()), slog.String("shop_id", shopID))
		return nil, fmt.Errorf("failed to save savings goal: %w", err)
	}

	logger.Info("Savings goal created", slog.String("goal_id", goal.SavingsGoalID), slog.String("shop_id", shopID))
	return &goal, nil
}

// GetGoalByID retrieves a savings goal.
func (s *savingsService) GetGoalByID(ctx context.Context, goalID string) (*domain.SavingsGoal, error) {
	goal, err := s.savingsRepo.FindGoalByID(ctx, goalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find savings goal", slog.String("error", err.Error()), slog.String("goal_id", goalID))
		}
		return nil, fmt.Errorf("failed to find savings goal %s: %w", goalID, err)
	}
	return goal, nil
}

// ListGoalsByShop retrieves the goals of a shop.
func (s *savingsService) ListGoalsByShop(ctx context.Context, shopID string, limit int, offset int) ([]domain.SavingsGoal, error) {
	if limit <= 0 {
		limit = 20
	}
	goals, err := s.savingsRepo.ListGoalsByShop(ctx, shopID, limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list savings goals", slog.String("error", err.Error()), slog.String("shop_id", shopID))
		return nil, fmt.Errorf("failed to list savings goals: %w", err)
	}
	return goals, nil
}

// ListTransactions retrieves the ledger in balance chain replay order.
func (s *savingsService) ListTransactions(ctx context.Context, shopID string, params dto.ListSavingsTransactionsParams) (*dto.ListSavingsTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	txns, nextToken, err := s.savingsRepo.ListTransactionsByShop(ctx, shopID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list savings transactions", slog.String("error", err.Error()), slog.String("shop_id", shopID))
		return nil, fmt.Errorf("failed to retrieve savings transactions: %w", err)
	}

	return &dto.ListSavingsTransactionsResponse{
		Transactions: dto.ToSavingsTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}
