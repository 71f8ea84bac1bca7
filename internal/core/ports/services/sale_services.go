package services

import (
	"context"

	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	"github.com/mauzoapp/mauzo_backend/internal/dto"
)

// SaleSvcFacade defines the sale transaction engine operations.
type SaleSvcFacade interface {
	// CreateSale atomically registers a sale: header, items, initial
	// payments, stock deductions and customer debt commit together.
	CreateSale(ctx context.Context, shopID string, req dto.CreateSaleRequest, creatorUserID string) (*domain.Sale, error)

	// GetSaleByID retrieves a sale with its items, payments and refunds.
	GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// ListSalesByShop retrieves a token-paginated page of sales.
	ListSalesByShop(ctx context.Context, shopID string, params dto.ListSalesParams) (*dto.ListSalesResponse, error)

	// AddPayment appends a payment and re-derives the payment fields.
	AddPayment(ctx context.Context, saleID string, req dto.AddSalePaymentRequest, userID string) (*domain.Sale, error)

	// RefundSale appends a refund and re-derives the sale status. Stock and
	// customer debt are not reversed.
	RefundSale(ctx context.Context, saleID string, req dto.RefundSaleRequest, userID string) (*domain.Sale, error)

	// CancelSale marks a sale cancelled. Stock and customer debt are not
	// reversed.
	CancelSale(ctx context.Context, saleID string, userID string) (*domain.Sale, error)
}
