package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus indicates the lifecycle state of a purchase order.
// Legal transitions: PENDING -> APPROVED -> COMPLETED, PENDING -> REJECTED,
// and any non-terminal state -> CANCELLED.
type PurchaseOrderStatus string

const (
	POPending   PurchaseOrderStatus = "PENDING"
	POApproved  PurchaseOrderStatus = "APPROVED"
	PORejected  PurchaseOrderStatus = "REJECTED"
	POCompleted PurchaseOrderStatus = "COMPLETED"
	POCancelled PurchaseOrderStatus = "CANCELLED"
)

// PurchaseOrder represents an inter-shop order driven to completion by
// payment accumulation. A partially paid approved order is not a distinct
// state; it is inferred from totalPaid < totalAmount while APPROVED.
type PurchaseOrder struct {
	PurchaseOrderID string              `json:"purchaseOrderID"` // Primary Key (e.g., UUID)
	BuyerShopID     string              `json:"buyerShopID"`
	SellerShopID    string              `json:"sellerShopID"`
	ReferenceNumber string              `json:"referenceNumber"` // Unique per order
	Status          PurchaseOrderStatus `json:"status"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	TotalPaid       decimal.Decimal     `json:"totalPaid"`
	RejectReason    string              `json:"rejectReason,omitempty"`
	ApprovedAt      *time.Time          `json:"approvedAt,omitempty"`
	ApprovedBy      *string             `json:"approvedBy,omitempty"`
	AuditFields
	SyncFields

	Items    []PurchaseOrderItem `json:"items,omitempty"`
	Payments []PurchasePayment   `json:"payments,omitempty"`
}

// PurchaseOrderItem is a single line of a purchase order.
type PurchaseOrderItem struct {
	PurchaseOrderItemID string          `json:"purchaseOrderItemID"`
	PurchaseOrderID     string          `json:"purchaseOrderID"`
	ProductID           string          `json:"productID"`
	ProductName         string          `json:"productName"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitPrice           decimal.Decimal `json:"unitPrice"`
	TotalPrice          decimal.Decimal `json:"totalPrice"`
	AuditFields
	SyncFields
}

// PurchasePayment is an append-only ledger row against a purchase order.
type PurchasePayment struct {
	PurchasePaymentID string          `json:"purchasePaymentID"`
	PurchaseOrderID   string          `json:"purchaseOrderID"`
	Amount            decimal.Decimal `json:"amount"`
	PaymentMethod     string          `json:"paymentMethod"`
	RecordedBy        string          `json:"recordedBy"`
	PaymentDate       time.Time       `json:"paymentDate"`
	AuditFields
	SyncFields
}

// ReconcileTotals verifies totalPrice = quantity * unitPrice.
func (i PurchaseOrderItem) ReconcileTotals() error {
	want := i.Quantity.Mul(i.UnitPrice)
	if !i.TotalPrice.Equal(want) {
		return fmt.Errorf("item totalPrice %s does not match quantity*unitPrice %s", i.TotalPrice, want)
	}
	return nil
}

// IsTerminal reports whether no further transitions are legal.
func (s PurchaseOrderStatus) IsTerminal() bool {
	return s == PORejected || s == POCompleted || s == POCancelled
}

// Approve transitions PENDING -> APPROVED, recording the approver.
func (po *PurchaseOrder) Approve(approverID string, at time.Time) error {
	if po.Status != POPending {
		return fmt.Errorf("cannot approve purchase order in status %s", po.Status)
	}
	po.Status = POApproved
	po.ApprovedAt = &at
	po.ApprovedBy = &approverID
	return nil
}

// Reject transitions PENDING -> REJECTED with a reason.
func (po *PurchaseOrder) Reject(reason string) error {
	if po.Status != POPending {
		return fmt.Errorf("cannot reject purchase order in status %s", po.Status)
	}
	po.Status = PORejected
	po.RejectReason = reason
	return nil
}

// Cancel transitions any non-terminal state -> CANCELLED.
func (po *PurchaseOrder) Cancel() error {
	if po.Status.IsTerminal() {
		return fmt.Errorf("cannot cancel purchase order in status %s", po.Status)
	}
	po.Status = POCancelled
	return nil
}

// ApplyPaymentTotal re-derives TotalPaid from a freshly summed payment
// ledger and completes the order once fully covered. Overpayment is
// recorded as-is; the remaining balance is never a cap on payments.
func (po *PurchaseOrder) ApplyPaymentTotal(totalPaid decimal.Decimal) {
	po.TotalPaid = totalPaid
	if totalPaid.GreaterThanOrEqual(po.TotalAmount) {
		po.Status = POCompleted
	}
}

// SumPurchasePayments totals an append-only purchase payment ledger.
func SumPurchasePayments(payments []PurchasePayment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}
