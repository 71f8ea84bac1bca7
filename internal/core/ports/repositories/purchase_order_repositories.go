package repositories

import (
	"context"

	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
)

// PurchaseOrderReader defines read operations for purchase order data
type PurchaseOrderReader interface {
	// FindPurchaseOrderByID retrieves an order header by its unique identifier.
	FindPurchaseOrderByID(ctx context.Context, orderID string) (*domain.PurchaseOrder, error)

	// FindItemsByOrderID retrieves the line items of an order.
	FindItemsByOrderID(ctx context.Context, orderID string) ([]domain.PurchaseOrderItem, error)

	// FindPaymentsByOrderID retrieves the payment ledger of an order in insertion order.
	FindPaymentsByOrderID(ctx context.Context, orderID string) ([]domain.PurchasePayment, error)

	// ListPurchaseOrdersByShop retrieves a token-paginated page of orders where
	// the shop is the buyer.
	ListPurchaseOrdersByShop(ctx context.Context, shopID string, limit int, nextToken *string) ([]domain.PurchaseOrder, *string, error)
}

// PurchaseOrderWriter defines the atomic write operations of the purchase
// order engine.
type PurchaseOrderWriter interface {
	// SavePurchaseOrder persists the order and its items within one
	// transaction. Fails with ErrDuplicate when the reference number is taken.
	SavePurchaseOrder(ctx context.Context, order domain.PurchaseOrder, items []domain.PurchaseOrderItem) error

	// UpdatePurchaseOrder persists the mutable header fields (status,
	// approver, reject reason, totals) of an order.
	UpdatePurchaseOrder(ctx context.Context, order domain.PurchaseOrder) error

	// AppendPurchasePayment appends a payment, re-derives totalPaid from the
	// summed ledger, and completes the order once fully covered, within one
	// transaction. Returns the updated order header.
	AppendPurchasePayment(ctx context.Context, payment domain.PurchasePayment) (*domain.PurchaseOrder, error)
}

// PurchaseOrderRepositoryFacade combines all purchase-order repository interfaces
type PurchaseOrderRepositoryFacade interface {
	PurchaseOrderReader
	PurchaseOrderWriter
}
