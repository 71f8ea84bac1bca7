package services

import (
	"context"

	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	"github.com/mauzoapp/mauzo_backend/internal/dto"
)

// CustomerSvcFacade defines customer ledger operations.
type CustomerSvcFacade interface {
	// CreateCustomer registers a new customer for a shop.
	CreateCustomer(ctx context.Context, shopID string, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)

	// GetCustomerByID retrieves a customer.
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomersByShop retrieves the customers of a shop.
	ListCustomersByShop(ctx context.Context, shopID string, limit int, offset int) ([]domain.Customer, error)

	// RecordCustomerPayment reduces the customer's debt position (floored at
	// zero) and accumulates totalPaid.
	RecordCustomerPayment(ctx context.Context, customerID string, req dto.RecordCustomerPaymentRequest, userID string) (*domain.Customer, error)
}
