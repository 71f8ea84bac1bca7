package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus indicates the lifecycle state of a purchase order row.
type PurchaseOrderStatus string

const (
	POPending   PurchaseOrderStatus = "PENDING"
	POApproved  PurchaseOrderStatus = "APPROVED"
	PORejected  PurchaseOrderStatus = "REJECTED"
	POCompleted PurchaseOrderStatus = "COMPLETED"
	POCancelled PurchaseOrderStatus = "CANCELLED"
)

// PurchaseOrder represents an inter-shop order row.
type PurchaseOrder struct {
	PurchaseOrderID string              `db:"purchase_order_id"`
	BuyerShopID     string              `db:"buyer_shop_id"`
	SellerShopID    string              `db:"seller_shop_id"`
	ReferenceNumber string              `db:"reference_number"`
	Status          PurchaseOrderStatus `db:"status"`
	TotalAmount     decimal.Decimal     `db:"total_amount"`
	TotalPaid       decimal.Decimal     `db:"total_paid"`
	RejectReason    string              `db:"reject_reason"`
	ApprovedAt      *time.Time          `db:"approved_at"`
	ApprovedBy      *string             `db:"approved_by"`
	AuditFields
	SyncFields
}

// PurchaseOrderItem is a single line of a purchase order.
type PurchaseOrderItem struct {
	PurchaseOrderItemID string          `db:"purchase_order_item_id"`
	PurchaseOrderID     string          `db:"purchase_order_id"`
	ProductID           string          `db:"product_id"`
	ProductName         string          `db:"product_name"`
	Quantity            decimal.Decimal `db:"quantity"`
	UnitPrice           decimal.Decimal `db:"unit_price"`
	TotalPrice          decimal.Decimal `db:"total_price"`
	AuditFields
	SyncFields
}

// PurchasePayment is an append-only payment row against a purchase order.
type PurchasePayment struct {
	PurchasePaymentID string          `db:"purchase_payment_id"`
	PurchaseOrderID   string          `db:"purchase_order_id"`
	Amount            decimal.Decimal `db:"amount"`
	PaymentMethod     string          `db:"payment_method"`
	RecordedBy        string          `db:"recorded_by"`
	PaymentDate       time.Time       `db:"payment_date"`
	AuditFields
	SyncFields
}
