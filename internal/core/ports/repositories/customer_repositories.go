package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// FindCustomerByID retrieves a specific customer by its unique identifier.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomersByShop retrieves customers belonging to a shop.
	ListCustomersByShop(ctx context.Context, shopID string, limit int, offset int) ([]domain.Customer, error)
}

// CustomerWriter defines write operations for customer data
type CustomerWriter interface {
	// SaveCustomer persists a new customer.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// UpdateCustomerTotals persists the debt position fields of a customer.
	UpdateCustomerTotals(ctx context.Context, customer domain.Customer) error

	// ApplyCustomerPayment atomically reduces the customer's debt (floored
	// at zero) and accumulates totalPaid under a row lock. Returns the
	// updated customer.
	ApplyCustomerPayment(ctx context.Context, customerID string, amount decimal.Decimal, userID string, now time.Time) (*domain.Customer, error)
}

// CustomerTransactionSupport defines operations used inside sale transactions
type CustomerTransactionSupport interface {
	// FindCustomerByIDForUpdate selects a customer and locks the row within a transaction.
	FindCustomerByIDForUpdate(ctx context.Context, tx pgx.Tx, customerID string) (*domain.Customer, error)

	// UpdateCustomerTotalsInTx persists the debt position fields within a transaction.
	UpdateCustomerTotalsInTx(ctx context.Context, tx pgx.Tx, customer domain.Customer) error
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
	CustomerTransactionSupport
}
