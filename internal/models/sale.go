package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus indicates the lifecycle state of a sale row.
type SaleStatus string

const (
	SaleCompleted         SaleStatus = "COMPLETED"
	SalePending           SaleStatus = "PENDING"
	SaleCancelled         SaleStatus = "CANCELLED"
	SaleRefunded          SaleStatus = "REFUNDED"
	SalePartiallyRefunded SaleStatus = "PARTIALLY_REFUNDED"
)

// Sale represents a point-of-sale transaction row. Child items, payments
// and refunds live in their own tables and are loaded separately.
type Sale struct {
	SaleID         string          `db:"sale_id"`
	ShopID         string          `db:"shop_id"`
	CustomerID     *string         `db:"customer_id"`
	Subtotal       decimal.Decimal `db:"subtotal"`
	TaxAmount      decimal.Decimal `db:"tax_amount"`
	DiscountAmount decimal.Decimal `db:"discount_amount"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	AmountPaid     decimal.Decimal `db:"amount_paid"`
	ChangeAmount   decimal.Decimal `db:"change_amount"`
	DebtAmount     decimal.Decimal `db:"debt_amount"`
	ProfitAmount   decimal.Decimal `db:"profit_amount"`
	Status         SaleStatus      `db:"status"`
	PaymentStatus  string          `db:"payment_status"`
	SaleDate       time.Time       `db:"sale_date"`
	AuditFields
	SyncFields
}

// SaleItem is a single line of a sale. Profit is frozen at insert time.
type SaleItem struct {
	SaleItemID     string          `db:"sale_item_id"`
	SaleID         string          `db:"sale_id"`
	ProductID      *string         `db:"product_id"`
	ProductName    string          `db:"product_name"`
	Quantity       decimal.Decimal `db:"quantity"`
	SellingPrice   decimal.Decimal `db:"selling_price"`
	CostPrice      decimal.Decimal `db:"cost_price"`
	DiscountAmount decimal.Decimal `db:"discount_amount"`
	Subtotal       decimal.Decimal `db:"subtotal"`
	Total          decimal.Decimal `db:"total"`
	Profit         decimal.Decimal `db:"profit"`
	AuditFields
	SyncFields
}

// SalePayment is an append-only payment row against a sale.
type SalePayment struct {
	SalePaymentID string          `db:"sale_payment_id"`
	SaleID        string          `db:"sale_id"`
	PaymentMethod string          `db:"payment_method"`
	Amount        decimal.Decimal `db:"amount"`
	PaymentDate   time.Time       `db:"payment_date"`
	AuditFields
	SyncFields
}

// SaleRefund is an append-only refund row against a sale.
type SaleRefund struct {
	SaleRefundID string          `db:"sale_refund_id"`
	SaleID       string          `db:"sale_id"`
	Amount       decimal.Decimal `db:"amount"`
	Reason       string          `db:"reason"`
	RefundDate   time.Time       `db:"refund_date"`
	AuditFields
	SyncFields
}
