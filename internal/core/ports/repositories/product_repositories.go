package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
)

// ProductReader defines read operations for product data
type ProductReader interface {
	// FindProductByID retrieves a specific product by its unique identifier.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProductsByIDs retrieves multiple products by their IDs.
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)

	// ListProductsByShop retrieves products belonging to a shop.
	ListProductsByShop(ctx context.Context, shopID string, limit int, offset int) ([]domain.Product, error)
}

// ProductWriter defines write operations for product data
type ProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateStock sets the absolute on-hand quantity for a tracked product.
	UpdateStock(ctx context.Context, productID string, stock int64, userID string, now time.Time) error

	// DeductStock atomically subtracts units from a tracked product under a
	// row lock. Untracked products are left unchanged. No non-negative floor
	// is applied. Returns the updated product.
	DeductStock(ctx context.Context, productID string, quantity int64, userID string, now time.Time) (*domain.Product, error)

	// SoftDeleteProduct tombstones a product, preserving ledger history.
	SoftDeleteProduct(ctx context.Context, productID string, userID string, now time.Time) error
}

// ProductTransactionSupport defines operations used inside sale transactions
type ProductTransactionSupport interface {
	// FindProductsByIDsForUpdate selects products and locks their rows within a transaction.
	FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error)

	// ApplyStockDeductionsInTx subtracts sold units from tracked products within a transaction.
	// Untracked products in the map are skipped. No non-negative floor is applied.
	ApplyStockDeductionsInTx(ctx context.Context, tx pgx.Tx, deductions map[string]int64, userID string, now time.Time) error
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
	ProductTransactionSupport
}
