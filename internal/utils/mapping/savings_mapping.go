package mapping

import (
	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	"github.com/mauzoapp/mauzo_backend/internal/models"
)

// ToModelShopSavingsSettings converts domain savings settings to a model row
func ToModelShopSavingsSettings(d domain.ShopSavingsSettings) models.ShopSavingsSettings {
	return models.ShopSavingsSettings{
		ShopID:              d.ShopID,
		Enabled:             d.Enabled,
		CurrentBalance:      d.CurrentBalance,
		TotalSaved:          d.TotalSaved,
		TotalWithdrawn:      d.TotalWithdrawn,
		DepositPercentage:   d.DepositPercentage,
		FixedDepositAmount:  d.FixedDepositAmount,
		WithdrawalFrequency: d.WithdrawalFrequency,
		AuditFields:         ToModelAuditFields(d.AuditFields),
		SyncFields:          ToModelSyncFields(d.SyncFields),
	}
}

// ToDomainShopSavingsSettings converts a model row to domain savings settings
func ToDomainShopSavingsSettings(m models.ShopSavingsSettings) domain.ShopSavingsSettings {
	return domain.ShopSavingsSettings{
		ShopID:              m.ShopID,
		Enabled:             m.Enabled,
		CurrentBalance:      m.CurrentBalance,
		TotalSaved:          m.TotalSaved,
		TotalWithdrawn:      m.TotalWithdrawn,
		DepositPercentage:   m.DepositPercentage,
		FixedDepositAmount:  m.FixedDepositAmount,
		WithdrawalFrequency: m.WithdrawalFrequency,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
		SyncFields:          ToDomainSyncFields(m.SyncFields),
	}
}

// ToModelSavingsGoal converts a domain SavingsGoal to a model SavingsGoal
func ToModelSavingsGoal(d domain.SavingsGoal) models.SavingsGoal {
	return models.SavingsGoal{
		SavingsGoalID:      d.SavingsGoalID,
		ShopID:             d.ShopID,
		Name:               d.Name,
		TargetAmount:       d.TargetAmount,
		CurrentAmount:      d.CurrentAmount,
		AmountWithdrawn:    d.AmountWithdrawn,
		ProgressPercentage: d.ProgressPercentage,
		Status:             string(d.Status),
		AuditFields:        ToModelAuditFields(d.AuditFields),
		SyncFields:         ToModelSyncFields(d.SyncFields),
	}
}

// ToDomainSavingsGoal converts a model SavingsGoal to a domain SavingsGoal
func ToDomainSavingsGoal(m models.SavingsGoal) domain.SavingsGoal {
	return domain.SavingsGoal{
		SavingsGoalID:      m.SavingsGoalID,
		ShopID:             m.ShopID,
		Name:               m.Name,
		TargetAmount:       m.TargetAmount,
		CurrentAmount:      m.CurrentAmount,
		AmountWithdrawn:    m.AmountWithdrawn,
		ProgressPercentage: m.ProgressPercentage,
		Status:             domain.SavingsGoalStatus(m.Status),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
		SyncFields:         ToDomainSyncFields(m.SyncFields),
	}
}

// ToDomainSavingsGoalSlice converts a slice of model SavingsGoals to domain SavingsGoals
func ToDomainSavingsGoalSlice(ms []models.SavingsGoal) []domain.SavingsGoal {
	ds := make([]domain.SavingsGoal, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSavingsGoal(m)
	}
	return ds
}

// ToModelSavingsTransaction converts a domain ledger row to a model row
func ToModelSavingsTransaction(d domain.SavingsTransaction) models.SavingsTransaction {
	return models.SavingsTransaction{
		SavingsTransactionID: d.SavingsTransactionID,
		ShopID:               d.ShopID,
		SavingsGoalID:        d.SavingsGoalID,
		Type:                 string(d.Type),
		Amount:               d.Amount,
		BalanceBefore:        d.BalanceBefore,
		BalanceAfter:         d.BalanceAfter,
		Description:          d.Description,
		TransactionDate:      d.TransactionDate,
		AuditFields:          ToModelAuditFields(d.AuditFields),
		SyncFields:           ToModelSyncFields(d.SyncFields),
	}
}

// ToDomainSavingsTransaction converts a model ledger row to a domain row
func ToDomainSavingsTransaction(m models.SavingsTransaction) domain.SavingsTransaction {
	return domain.SavingsTransaction{
		SavingsTransactionID: m.SavingsTransactionID,
		ShopID:               m.ShopID,
		SavingsGoalID:        m.SavingsGoalID,
		Type:                 domain.SavingsTransactionType(m.Type),
		Amount:               m.Amount,
		BalanceBefore:        m.BalanceBefore,
		BalanceAfter:         m.BalanceAfter,
		Description:          m.Description,
		TransactionDate:      m.TransactionDate,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
		SyncFields:           ToDomainSyncFields(m.SyncFields),
	}
}

// ToDomainSavingsTransactionSlice converts a slice of model ledger rows to domain rows
func ToDomainSavingsTransactionSlice(ms []models.SavingsTransaction) []domain.SavingsTransaction {
	ds := make([]domain.SavingsTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSavingsTransaction(m)
	}
	return ds
}
