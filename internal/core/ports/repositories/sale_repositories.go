package repositories

import (
	"context"
	"time"

	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
)

// SaleReader defines read operations for sale data
type SaleReader interface {
	// FindSaleByID retrieves a sale header by its unique identifier.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// FindItemsBySaleID retrieves the line items of a sale.
	FindItemsBySaleID(ctx context.Context, saleID string) ([]domain.SaleItem, error)

	// FindPaymentsBySaleID retrieves the payment ledger of a sale in insertion order.
	FindPaymentsBySaleID(ctx context.Context, saleID string) ([]domain.SalePayment, error)

	// FindRefundsBySaleID retrieves the refund ledger of a sale in insertion order.
	FindRefundsBySaleID(ctx context.Context, saleID string) ([]domain.SaleRefund, error)

	// ListSalesByShop retrieves a token-paginated page of sales for a shop.
	ListSalesByShop(ctx context.Context, shopID string, limit int, nextToken *string) ([]domain.Sale, *string, error)
}

// SaleWriter defines the atomic multi-step write operations of the sale engine.
// Each method runs as a single database transaction: either every step
// commits or none does.
type SaleWriter interface {
	// SaveSale persists the sale, its items and initial payments, applies
	// the stock deductions to tracked products, and adds the sale's debt to
	// the customer, all within one transaction. Every written record is
	// left in PENDING sync status.
	SaveSale(ctx context.Context, sale domain.Sale, items []domain.SaleItem, payments []domain.SalePayment, stockDeductions map[string]int64) error

	// AppendSalePayment appends a payment, re-derives the sale's payment
	// fields from the summed ledger, and reduces the customer's debt by the
	// delta, within one transaction. Returns the updated sale header.
	AppendSalePayment(ctx context.Context, payment domain.SalePayment) (*domain.Sale, error)

	// AppendSaleRefund appends a refund and re-derives the sale status from
	// the summed refund ledger within one transaction. Stock and customer
	// debt are not touched. Returns the updated sale header.
	AppendSaleRefund(ctx context.Context, refund domain.SaleRefund) (*domain.Sale, error)

	// UpdateSaleStatus sets the lifecycle status of a sale (cancellation).
	UpdateSaleStatus(ctx context.Context, saleID string, status domain.SaleStatus, userID string, now time.Time) error
}

// SaleRepositoryFacade combines all sale-related repository interfaces
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}
