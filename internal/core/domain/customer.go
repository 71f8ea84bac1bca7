package domain

import "github.com/shopspring/decimal"

// Customer represents a shop customer with a running debt position.
// CurrentDebt is maintained incrementally as sales on credit and
// customer payments are recorded; TotalPurchases and TotalPaid
// accumulate for reporting.
type Customer struct {
	CustomerID     string          `json:"customerID"` // Primary Key (e.g., UUID)
	ShopID         string          `json:"shopID"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"` // Nullable
	CreditLimit    decimal.Decimal `json:"creditLimit"`
	CurrentDebt    decimal.Decimal `json:"currentDebt"`
	TotalPurchases decimal.Decimal `json:"totalPurchases"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	AuditFields
	SyncFields
}

// ApplyDebt increases the customer's debt position by the unpaid
// remainder of a credit sale.
func (c *Customer) ApplyDebt(amount decimal.Decimal) {
	c.CurrentDebt = c.CurrentDebt.Add(amount)
	c.TotalPurchases = c.TotalPurchases.Add(amount)
}

// ApplyPayment reduces the debt position, flooring at zero, and
// accumulates TotalPaid.
func (c *Customer) ApplyPayment(amount decimal.Decimal) {
	c.CurrentDebt = c.CurrentDebt.Sub(amount)
	if c.CurrentDebt.IsNegative() {
		c.CurrentDebt = decimal.Zero
	}
	c.TotalPaid = c.TotalPaid.Add(amount)
}
