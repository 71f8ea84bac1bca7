package repositories

import (
	"context"

	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
)

// SavingsReader defines read operations for the savings ledger
type SavingsReader interface {
	// FindSettingsByShopID retrieves the savings settings row for a shop.
	// Returns ErrNotFound when the shop has never saved.
	FindSettingsByShopID(ctx context.Context, shopID string) (*domain.ShopSavingsSettings, error)

	// FindGoalByID retrieves a savings goal by its unique identifier.
	FindGoalByID(ctx context.Context, goalID string) (*domain.SavingsGoal, error)

	// ListGoalsByShop retrieves the goals of a shop.
	ListGoalsByShop(ctx context.Context, shopID string, limit int, offset int) ([]domain.SavingsGoal, error)

	// ListTransactionsByShop retrieves the append-only ledger for a shop in
	// transaction date order (created_at tiebreak), the replay order of the
	// balance chain.
	ListTransactionsByShop(ctx context.Context, shopID string, limit int, nextToken *string) ([]domain.SavingsTransaction, *string, error)
}

// SavingsWriter defines the atomic write operations of the savings engine.
type SavingsWriter interface {
	// SaveGoal persists a new savings goal.
	SaveGoal(ctx context.Context, goal domain.SavingsGoal) error

	// RecordDeposit appends a deposit transaction within one transaction:
	// the settings row is locked (created at first use), the balance chain
	// values are derived under the lock, the settings totals are updated,
	// and goal progress advances when the deposit is goal-directed. The
	// returned transaction carries the derived balanceBefore/balanceAfter.
	RecordDeposit(ctx context.Context, txn domain.SavingsTransaction) (*domain.SavingsTransaction, error)

	// RecordWithdrawal appends a withdrawal transaction within one
	// transaction, failing with ErrInsufficientBalance when the amount
	// exceeds the locked balance. Goal progress is never decremented.
	RecordWithdrawal(ctx context.Context, txn domain.SavingsTransaction) (*domain.SavingsTransaction, error)
}

// SavingsRepositoryFacade combines all savings-related repository interfaces
type SavingsRepositoryFacade interface {
	SavingsReader
	SavingsWriter
}
