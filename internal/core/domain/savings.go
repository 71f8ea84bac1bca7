package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoalStatus indicates the lifecycle state of a savings goal.
type SavingsGoalStatus string

const (
	GoalActive    SavingsGoalStatus = "ACTIVE"
	GoalCompleted SavingsGoalStatus = "COMPLETED"
	GoalCancelled SavingsGoalStatus = "CANCELLED"
	GoalPaused    SavingsGoalStatus = "PAUSED"
)

// SavingsTransactionType distinguishes deposits from withdrawals.
type SavingsTransactionType string

const (
	SavingsDeposit    SavingsTransactionType = "DEPOSIT"
	SavingsWithdrawal SavingsTransactionType = "WITHDRAWAL"
)

// ShopSavingsSettings holds the per-shop savings balance and policy fields.
// The policy fields are consumed by an external automatic-savings trigger,
// not by the ledger itself.
type ShopSavingsSettings struct {
	ShopID              string           `json:"shopID"` // One row per shop
	Enabled             bool             `json:"enabled"`
	CurrentBalance      decimal.Decimal  `json:"currentBalance"`
	TotalSaved          decimal.Decimal  `json:"totalSaved"`
	TotalWithdrawn      decimal.Decimal  `json:"totalWithdrawn"`
	DepositPercentage   *decimal.Decimal `json:"depositPercentage,omitempty"` // Percentage-of-sales rule
	FixedDepositAmount  *decimal.Decimal `json:"fixedDepositAmount,omitempty"`
	WithdrawalFrequency string           `json:"withdrawalFrequency,omitempty"` // e.g. WEEKLY, MONTHLY
	AuditFields
	SyncFields
}

// SavingsGoal tracks progress toward a target amount. Progress only moves
// on deposits; withdrawals do not decrement it, and deposits past the
// target are not clamped to 100.
type SavingsGoal struct {
	SavingsGoalID      string            `json:"savingsGoalID"` // Primary Key (e.g., UUID)
	ShopID             string            `json:"shopID"`
	Name               string            `json:"name"`
	TargetAmount       decimal.Decimal   `json:"targetAmount"`
	CurrentAmount      decimal.Decimal   `json:"currentAmount"`
	AmountWithdrawn    decimal.Decimal   `json:"amountWithdrawn"`
	ProgressPercentage int64             `json:"progressPercentage"`
	Status             SavingsGoalStatus `json:"status"`
	AuditFields
	SyncFields
}

// SavingsTransaction is an append-only ledger row. The balanceBefore and
// balanceAfter pair forms an auditable chain per shop.
type SavingsTransaction struct {
	SavingsTransactionID string                 `json:"savingsTransactionID"`
	ShopID               string                 `json:"shopID"`
	SavingsGoalID        *string                `json:"savingsGoalID,omitempty"` // Nullable, goal-agnostic movements
	Type                 SavingsTransactionType `json:"type"`
	Amount               decimal.Decimal        `json:"amount"`
	BalanceBefore        decimal.Decimal        `json:"balanceBefore"`
	BalanceAfter         decimal.Decimal        `json:"balanceAfter"`
	Description          string                 `json:"description,omitempty"`
	TransactionDate      time.Time              `json:"transactionDate"`
	AuditFields
	SyncFields
}

// ProgressPercent computes round-half-up(current * 100 / target), or 0 when
// the target is not positive. The result is not clamped above 100.
func ProgressPercent(current, target decimal.Decimal) int64 {
	if !target.IsPositive() {
		return 0
	}
	return current.Mul(decimal.NewFromInt(100)).DivRound(target, 0).IntPart()
}

// ApplyDeposit moves goal progress forward for a goal-directed deposit.
func (g *SavingsGoal) ApplyDeposit(amount decimal.Decimal) {
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	g.ProgressPercentage = ProgressPercent(g.CurrentAmount, g.TargetAmount)
}

// ApplySettingsDeposit applies a deposit to the shop balance and returns the
// resulting transaction chain values.
func (s *ShopSavingsSettings) ApplySettingsDeposit(amount decimal.Decimal) (before, after decimal.Decimal) {
	before = s.CurrentBalance
	after = before.Add(amount)
	s.CurrentBalance = after
	s.TotalSaved = s.TotalSaved.Add(amount)
	return before, after
}

// ApplySettingsWithdrawal applies a withdrawal to the shop balance. The
// caller must have verified amount <= CurrentBalance under a row lock.
func (s *ShopSavingsSettings) ApplySettingsWithdrawal(amount decimal.Decimal) (before, after decimal.Decimal) {
	before = s.CurrentBalance
	after = before.Sub(amount)
	s.CurrentBalance = after
	s.TotalWithdrawn = s.TotalWithdrawn.Add(amount)
	return before, after
}

// ReplayBalanceChain replays savings transactions in order and verifies that
// each row's balanceBefore matches the running balance and that balanceAfter
// follows from the amount. Returns the final balance.
func ReplayBalanceChain(txns []SavingsTransaction) (decimal.Decimal, error) {
	balance := decimal.Zero
	for i, txn := range txns {
		if !txn.BalanceBefore.Equal(balance) {
			return decimal.Zero, fmt.Errorf("transaction %d (%s): balanceBefore %s breaks chain at %s",
				i, txn.SavingsTransactionID, txn.BalanceBefore, balance)
		}
		switch txn.Type {
		case SavingsDeposit:
			balance = balance.Add(txn.Amount)
		case SavingsWithdrawal:
			balance = balance.Sub(txn.Amount)
		default:
			return decimal.Zero, fmt.Errorf("transaction %d (%s): unknown type %q", i, txn.SavingsTransactionID, txn.Type)
		}
		if !txn.BalanceAfter.Equal(balance) {
			return decimal.Zero, fmt.Errorf("transaction %d (%s): balanceAfter %s does not match replayed %s",
				i, txn.SavingsTransactionID, txn.BalanceAfter, balance)
		}
	}
	return balance, nil
}
