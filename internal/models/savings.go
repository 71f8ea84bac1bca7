package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShopSavingsSettings is the one-row-per-shop savings balance table.
type ShopSavingsSettings struct {
	ShopID              string           `db:"shop_id"`
	Enabled             bool             `db:"enabled"`
	CurrentBalance      decimal.Decimal  `db:"current_balance"`
	TotalSaved          decimal.Decimal  `db:"total_saved"`
	TotalWithdrawn      decimal.Decimal  `db:"total_withdrawn"`
	DepositPercentage   *decimal.Decimal `db:"deposit_percentage"`
	FixedDepositAmount  *decimal.Decimal `db:"fixed_deposit_amount"`
	WithdrawalFrequency string           `db:"withdrawal_frequency"`
	AuditFields
	SyncFields
}

// SavingsGoal is a savings target row.
type SavingsGoal struct {
	SavingsGoalID      string          `db:"savings_goal_id"`
	ShopID             string          `db:"shop_id"`
	Name               string          `db:"name"`
	TargetAmount       decimal.Decimal `db:"target_amount"`
	CurrentAmount      decimal.Decimal `db:"current_amount"`
	AmountWithdrawn    decimal.Decimal `db:"amount_withdrawn"`
	ProgressPercentage int64           `db:"progress_percentage"`
	Status             string          `db:"status"`
	AuditFields
	SyncFields
}

// SavingsTransaction is an append-only savings ledger row carrying the
// balance chain columns.
type SavingsTransaction struct {
	SavingsTransactionID string          `db:"savings_transaction_id"`
	ShopID               string          `db:"shop_id"`
	SavingsGoalID        *string         `db:"savings_goal_id"`
	Type                 string          `db:"type"`
	Amount               decimal.Decimal `db:"amount"`
	BalanceBefore        decimal.Decimal `db:"balance_before"`
	BalanceAfter         decimal.Decimal `db:"balance_after"`
	Description          string          `db:"description"`
	TransactionDate      time.Time       `db:"transaction_date"`
	AuditFields
	SyncFields
}
