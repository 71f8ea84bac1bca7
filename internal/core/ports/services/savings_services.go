package services

import (
	"context"

	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	"github.com/mauzoapp/mauzo_backend/internal/dto"
)

// SavingsSvcFacade defines the savings ledger operations.
type SavingsSvcFacade interface {
	// Deposit adds to the shop balance and optionally advances a goal.
	Deposit(ctx context.Context, shopID string, req dto.DepositRequest, userID string) (*domain.SavingsTransaction, error)

	// Withdraw removes from the shop balance; fails with
	// ErrInsufficientBalance when the amount exceeds it.
	Withdraw(ctx context.Context, shopID string, req dto.WithdrawRequest, userID string) (*domain.SavingsTransaction, error)

	// GetSettings retrieves the shop's savings settings.
	GetSettings(ctx context.Context, shopID string) (*domain.ShopSavingsSettings, error)

	// CreateGoal registers a new savings goal for a shop.
	CreateGoal(ctx context.Context, shopID string, req dto.CreateSavingsGoalRequest, creatorUserID string) (*domain.SavingsGoal, error)

	// GetGoalByID retrieves a savings goal.
	GetGoalByID(ctx context.Context, goalID string) (*domain.SavingsGoal, error)

	// ListGoalsByShop retrieves the goals of a shop.
	ListGoalsByShop(ctx context.Context, shopID string, limit int, offset int) ([]domain.SavingsGoal, error)

	// ListTransactions retrieves the ledger in balance chain replay order.
	ListTransactions(ctx context.Context, shopID string, params dto.ListSavingsTransactionsParams) (*dto.ListSavingsTransactionsResponse, error)
}
