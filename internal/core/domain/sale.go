package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus indicates the lifecycle state of a sale.
type SaleStatus string

const (
	SaleCompleted         SaleStatus = "COMPLETED"
	SalePending           SaleStatus = "PENDING"
	SaleCancelled         SaleStatus = "CANCELLED"
	SaleRefunded          SaleStatus = "REFUNDED"
	SalePartiallyRefunded SaleStatus = "PARTIALLY_REFUNDED"
)

// PaymentStatus is derived from the ratio of amount paid to amount owed.
type PaymentStatus string

const (
	PaymentPaid          PaymentStatus = "PAID"
	PaymentPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentPending       PaymentStatus = "PENDING"
	PaymentDebt          PaymentStatus = "DEBT"
)

// Sale represents a point-of-sale transaction and its derived money fields.
// Items and Payments are owned children; Refunds is an append-only ledger.
type Sale struct {
	SaleID         string          `json:"saleID"` // Primary Key (e.g., UUID)
	ShopID         string          `json:"shopID"`
	CustomerID     *string         `json:"customerID,omitempty"` // Nullable, walk-in sales have none
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	AmountPaid     decimal.Decimal `json:"amountPaid"`
	ChangeAmount   decimal.Decimal `json:"changeAmount"`
	DebtAmount     decimal.Decimal `json:"debtAmount"`
	ProfitAmount   decimal.Decimal `json:"profitAmount"`
	Status         SaleStatus      `json:"status"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus"`
	SaleDate       time.Time       `json:"saleDate"`
	AuditFields
	SyncFields

	Items    []SaleItem    `json:"items,omitempty"`
	Payments []SalePayment `json:"payments,omitempty"`
	Refunds  []SaleRefund  `json:"refunds,omitempty"`
}

// SaleItem is a single line of a sale. Profit is frozen at creation time so
// later product cost changes do not rewrite history. Quantity is decimal to
// support fractional units (e.g. 1.5 kg).
type SaleItem struct {
	SaleItemID     string          `json:"saleItemID"`
	SaleID         string          `json:"saleID"`
	ProductID      *string         `json:"productID,omitempty"` // Nullable, product may be deleted later
	ProductName    string          `json:"productName"`
	Quantity       decimal.Decimal `json:"quantity"`
	SellingPrice   decimal.Decimal `json:"sellingPrice"`
	CostPrice      decimal.Decimal `json:"costPrice"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Total          decimal.Decimal `json:"total"`
	Profit         decimal.Decimal `json:"profit"`
	AuditFields
	SyncFields
}

// SalePayment is an append-only ledger row; never mutated after creation.
type SalePayment struct {
	SalePaymentID string          `json:"salePaymentID"`
	SaleID        string          `json:"saleID"`
	PaymentMethod string          `json:"paymentMethod"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"paymentDate"`
	AuditFields
	SyncFields
}

// SaleRefund is an append-only ledger row attributed to the acting user.
type SaleRefund struct {
	SaleRefundID string          `json:"saleRefundID"`
	SaleID       string          `json:"saleID"`
	Amount       decimal.Decimal `json:"amount"`
	Reason       string          `json:"reason"`
	RefundDate   time.Time       `json:"refundDate"`
	AuditFields
	SyncFields
}

// ComputeProfit returns (sellingPrice - costPrice) * quantity - discountAmount.
func (i SaleItem) ComputeProfit() decimal.Decimal {
	return i.SellingPrice.Sub(i.CostPrice).Mul(i.Quantity).Sub(i.DiscountAmount)
}

// ReconcileTotals verifies the caller-supplied line figures:
// subtotal = sellingPrice * quantity and total = subtotal - discountAmount.
func (i SaleItem) ReconcileTotals() error {
	wantSubtotal := i.SellingPrice.Mul(i.Quantity)
	if !i.Subtotal.Equal(wantSubtotal) {
		return fmt.Errorf("item subtotal %s does not match sellingPrice*quantity %s", i.Subtotal, wantSubtotal)
	}
	wantTotal := i.Subtotal.Sub(i.DiscountAmount)
	if !i.Total.Equal(wantTotal) {
		return fmt.Errorf("item total %s does not match subtotal-discount %s", i.Total, wantTotal)
	}
	return nil
}

// StockUnits is the integer unit count a tracked product loses for this line.
// Fractional quantities truncate toward zero.
func (i SaleItem) StockUnits() int64 {
	return i.Quantity.IntPart()
}

// ReconcileTotals verifies totalAmount = subtotal - discountAmount + taxAmount.
func (s *Sale) ReconcileTotals() error {
	want := s.Subtotal.Sub(s.DiscountAmount).Add(s.TaxAmount)
	if !s.TotalAmount.Equal(want) {
		return fmt.Errorf("sale total %s does not match subtotal-discount+tax %s", s.TotalAmount, want)
	}
	return nil
}

// DerivePaymentStatus classifies a paid total against the amount owed.
func DerivePaymentStatus(totalAmount, totalPaid decimal.Decimal) PaymentStatus {
	switch {
	case totalPaid.GreaterThanOrEqual(totalAmount):
		return PaymentPaid
	case totalPaid.IsPositive():
		return PaymentPartiallyPaid
	default:
		return PaymentPending
	}
}

// DeriveInitialPaymentStatus classifies a sale at creation. A credit sale
// with an unpaid remainder and a known customer is DEBT rather than
// PENDING so the register can distinguish "invoice open" from "on credit".
func DeriveInitialPaymentStatus(totalAmount, amountPaid, debtAmount decimal.Decimal, hasCustomer bool) PaymentStatus {
	if debtAmount.IsPositive() && hasCustomer {
		return PaymentDebt
	}
	return DerivePaymentStatus(totalAmount, amountPaid)
}

// ApplyPaymentTotals re-derives the payment fields from a freshly summed
// payment ledger: amountPaid, debtAmount = max(0, total - paid), and the
// payment status thresholds.
func (s *Sale) ApplyPaymentTotals(totalPaid decimal.Decimal) {
	s.AmountPaid = totalPaid
	s.DebtAmount = s.TotalAmount.Sub(totalPaid)
	if s.DebtAmount.IsNegative() {
		s.DebtAmount = decimal.Zero
	}
	s.PaymentStatus = DerivePaymentStatus(s.TotalAmount, totalPaid)
}

// ApplyRefundTotals re-derives the sale status from a freshly summed
// refund ledger. Stock and customer debt are untouched: refund and
// reversal are distinct business events issued explicitly by the caller.
func (s *Sale) ApplyRefundTotals(totalRefunded decimal.Decimal) {
	if totalRefunded.GreaterThanOrEqual(s.TotalAmount) {
		s.Status = SaleRefunded
	} else if totalRefunded.IsPositive() {
		s.Status = SalePartiallyRefunded
	}
}

// SumPayments totals an append-only payment ledger.
func SumPayments(payments []SalePayment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// SumRefunds totals an append-only refund ledger.
func SumRefunds(refunds []SaleRefund) decimal.Decimal {
	total := decimal.Zero
	for _, r := range refunds {
		total = total.Add(r.Amount)
	}
	return total
}
