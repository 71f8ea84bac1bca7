package services

import (
	"context"

	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	"github.com/mauzoapp/mauzo_backend/internal/dto"
)

// PurchaseOrderSvcFacade defines the purchase order lifecycle engine operations.
type PurchaseOrderSvcFacade interface {
	// CreatePurchaseOrder registers a new order in PENDING status.
	CreatePurchaseOrder(ctx context.Context, buyerShopID string, req dto.CreatePurchaseOrderRequest, creatorUserID string) (*domain.PurchaseOrder, error)

	// GetPurchaseOrderByID retrieves an order with its items and payments.
	GetPurchaseOrderByID(ctx context.Context, orderID string) (*domain.PurchaseOrder, error)

	// ListPurchaseOrdersByShop retrieves a token-paginated page of orders.
	ListPurchaseOrdersByShop(ctx context.Context, shopID string, params dto.ListPurchaseOrdersParams) (*dto.ListPurchaseOrdersResponse, error)

	// ApprovePurchaseOrder transitions PENDING -> APPROVED.
	ApprovePurchaseOrder(ctx context.Context, orderID string, approverID string) (*domain.PurchaseOrder, error)

	// RejectPurchaseOrder transitions PENDING -> REJECTED.
	RejectPurchaseOrder(ctx context.Context, orderID string, req dto.RejectPurchaseOrderRequest, userID string) (*domain.PurchaseOrder, error)

	// CancelPurchaseOrder transitions any non-terminal state -> CANCELLED.
	CancelPurchaseOrder(ctx context.Context, orderID string, userID string) (*domain.PurchaseOrder, error)

	// AddPayment appends a payment; the order completes once totalPaid
	// covers totalAmount. Overpayment is recorded as-is.
	AddPayment(ctx context.Context, orderID string, req dto.AddPurchasePaymentRequest, userID string) (*domain.PurchaseOrder, error)
}
