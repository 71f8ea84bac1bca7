package models

import "github.com/shopspring/decimal"

// Customer represents a shop customer row with its running debt position.
type Customer struct {
	CustomerID     string          `db:"customer_id"`
	ShopID         string          `db:"shop_id"`
	Name           string          `db:"name"`
	Phone          string          `db:"phone"`
	CreditLimit    decimal.Decimal `db:"credit_limit"`
	CurrentDebt    decimal.Decimal `db:"current_debt"`
	TotalPurchases decimal.Decimal `db:"total_purchases"`
	TotalPaid      decimal.Decimal `db:"total_paid"`
	AuditFields
	SyncFields
}
