package services

import (
	"context"

	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	"github.com/mauzoapp/mauzo_backend/internal/dto"
)

// InventorySvcFacade defines the inventory stock manager operations.
type InventorySvcFacade interface {
	// CreateProduct registers a new product for a shop.
	CreateProduct(ctx context.Context, shopID string, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)

	// GetProductByID retrieves a product.
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProductsByShop retrieves the products of a shop.
	ListProductsByShop(ctx context.Context, shopID string, limit int, offset int) ([]domain.Product, error)

	// DeductStock removes sold units from a tracked product. No-op for
	// untracked products; no non-negative floor is applied.
	DeductStock(ctx context.Context, productID string, quantity int64, userID string) (*domain.Product, error)

	// SetStock sets the absolute on-hand quantity (manual adjustment).
	SetStock(ctx context.Context, productID string, stock int64, userID string) (*domain.Product, error)

	// CheckAvailability reports whether the tracked stock covers the
	// requested units, for callers enforcing a no-negative-stock policy.
	CheckAvailability(ctx context.Context, productID string, quantity int64) (bool, error)

	// DeleteProduct tombstones a product, preserving sale history.
	DeleteProduct(ctx context.Context, productID string, userID string) error
}
