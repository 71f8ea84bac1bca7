package dto

import (
	"time"

	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DepositRequest adds money to the shop's savings balance, optionally
// directed at a goal.
type DepositRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required,dgt0"`
	SavingsGoalID *string         `json:"savingsGoalID,omitempty"`
	Description   string          `json:"description"`
}

// WithdrawRequest removes money from the shop's savings balance.
type WithdrawRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required,dgt0"`
	SavingsGoalID *string         `json:"savingsGoalID,omitempty"`
	Reason        string          `json:"reason"`
}

// CreateSavingsGoalRequest defines the payload for creating a goal.
type CreateSavingsGoalRequest struct {
	Name         string          `json:"name" binding:"required"`
	TargetAmount decimal.Decimal `json:"targetAmount" binding:"required,dgt0"`
}

// ListSavingsTransactionsParams holds pagination parameters for the ledger.
type ListSavingsTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// SavingsSettingsResponse defines the data returned for shop savings settings.
type SavingsSettingsResponse struct {
	ShopID         string          `json:"shopID"`
	Enabled        bool            `json:"enabled"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	TotalSaved     decimal.Decimal `json:"totalSaved"`
	TotalWithdrawn decimal.Decimal `json:"totalWithdrawn"`
}

// SavingsGoalResponse defines the data returned for a goal.
type SavingsGoalResponse struct {
	SavingsGoalID      string          `json:"savingsGoalID"`
	ShopID             string          `json:"shopID"`
	Name               string          `json:"name"`
	TargetAmount       decimal.Decimal `json:"targetAmount"`
	CurrentAmount      decimal.Decimal `json:"currentAmount"`
	AmountWithdrawn    decimal.Decimal `json:"amountWithdrawn"`
	ProgressPercentage int64           `json:"progressPercentage"`
	Status             string          `json:"status"`
}

// SavingsTransactionResponse defines the data returned for a ledger row.
type SavingsTransactionResponse struct {
	SavingsTransactionID string          `json:"savingsTransactionID"`
	ShopID               string          `json:"shopID"`
	SavingsGoalID        *string         `json:"savingsGoalID,omitempty"`
	Type                 string          `json:"type"`
	Amount               decimal.Decimal `json:"amount"`
	BalanceBefore        decimal.Decimal `json:"balanceBefore"`
	BalanceAfter         decimal.Decimal `json:"balanceAfter"`
	Description          string          `json:"description,omitempty"`
	TransactionDate      time.Time       `json:"transactionDate"`
}

// ListSavingsTransactionsResponse wraps a page of ledger rows.
type ListSavingsTransactionsResponse struct {
	Transactions []SavingsTransactionResponse `json:"transactions"`
	NextToken    *string                      `json:"nextToken,omitempty"`
}

// ToSavingsSettingsResponse converts domain settings to a DTO.
func ToSavingsSettingsResponse(s *domain.ShopSavingsSettings) SavingsSettingsResponse {
	return SavingsSettingsResponse{
		ShopID:         s.ShopID,
		Enabled:        s.Enabled,
		CurrentBalance: s.CurrentBalance,
		TotalSaved:     s.TotalSaved,
		TotalWithdrawn: s.TotalWithdrawn,
	}
}

// ToSavingsGoalResponse converts a domain goal to a DTO.
func ToSavingsGoalResponse(g *domain.SavingsGoal) SavingsGoalResponse {
	return SavingsGoalResponse{
		SavingsGoalID:      g.SavingsGoalID,
		ShopID:             g.ShopID,
		Name:               g.Name,
		TargetAmount:       g.TargetAmount,
		CurrentAmount:      g.CurrentAmount,
		AmountWithdrawn:    g.AmountWithdrawn,
		ProgressPercentage: g.ProgressPercentage,
		Status:             string(g.Status),
	}
}

// ToSavingsTransactionResponse converts a domain ledger row to a DTO.
func ToSavingsTransactionResponse(t *domain.SavingsTransaction) SavingsTransactionResponse {
	return SavingsTransactionResponse{
		SavingsTransactionID: t.SavingsTransactionID,
		ShopID:               t.ShopID,
		SavingsGoalID:        t.SavingsGoalID,
		Type:                 string(t.Type),
		Amount:               t.Amount,
		BalanceBefore:        t.BalanceBefore,
		BalanceAfter:         t.BalanceAfter,
		Description:          t.Description,
		TransactionDate:      t.TransactionDate,
	}
}

// ToSavingsTransactionResponses converts a slice of ledger rows to DTOs.
func ToSavingsTransactionResponses(txns []domain.SavingsTransaction) []SavingsTransactionResponse {
	responses := make([]SavingsTransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToSavingsTransactionResponse(&txns[i])
	}
	return responses
}
