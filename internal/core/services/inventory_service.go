package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mauzoapp/mauzo_backend/internal/apperrors"
	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	portsrepo "github.com/mauzoapp/mauzo_backend/internal/core/ports/repositories"
	portssvc "github.com/mauzoapp/mauzo_backend/internal/core/ports/services"
	"github.com/mauzoapp/mauzo_backend/internal/dto"
	"github.com/mauzoapp/mauzo_backend/internal/middleware"
)

// inventoryService adjusts a product's on-hand quantity.
//
// Deduction applies no non-negative floor: the allow-negative-stock policy
// lives in shop settings owned by the caller, which consults
// CheckAvailability first when the policy requires it.
type inventoryService struct {
	productRepo portsrepo.ProductRepositoryFacade
}

// NewInventoryService creates a new inventory stock manager.
func NewInventoryService(productRepo portsrepo.ProductRepositoryFacade) portssvc.InventorySvcFacade {
	return &inventoryService{productRepo: productRepo}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// CreateProduct registers a new product for a shop.
func (s *inventoryService) CreateProduct(ctx context.Context, shopID string, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.CurrentStock != nil && *req.CurrentStock < 0 {
		return nil, fmt.Errorf("%w: initial stock must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID:      uuid.NewString(),
		ShopID:         shopID,
		Name:           req.Name,
		TrackInventory: req.TrackInventory,
		CurrentStock:   req.CurrentStock,
		CostPerUnit:    req.CostPerUnit,
		SellingPrice:   req.SellingPrice,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
		SyncFields: domain.SyncFields{SyncStatus: domain.SyncPending},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		logger.Error("Failed to save product", slog.String("error", err.Error()), slog.String("shop_id", shopID))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("shop_id", shopID))
	return &product, nil
}

// GetProductByID retrieves a product.
func (s *inventoryService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find product", slog.String("error", err.Error()), slog.String("product_id", productID))
		}
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	return product, nil
}

// ListProductsByShop retrieves the products of a shop.
func (s *inventoryService) ListProductsByShop(ctx context.Context, shopID string, limit int, offset int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	products, err := s.productRepo.ListProductsByShop(ctx, shopID, limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list products", slog.String("error", err.Error()), slog.String("shop_id", shopID))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// DeductStock removes sold units from a tracked product. Untracked products
// (or products with no stock figure) are a no-op.
func (s *inventoryService) DeductStock(ctx context.Context, productID string, quantity int64, userID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: deduction quantity must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	product, err := s.productRepo.DeductStock(ctx, productID, quantity, userID, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Product not found for stock deduction", slog.String("product_id", productID))
		} else {
			logger.Error("Failed to deduct stock", slog.String("error", err.Error()), slog.String("product_id", productID))
		}
		return nil, fmt.Errorf("failed to deduct stock for product %s: %w", productID, err)
	}

	if product.Tracked() && *product.CurrentStock < 0 {
		// Recorded as-is; the caller's shop policy decides whether negative
		// stock was ever allowed to happen.
		logger.Warn("Product stock went negative",
			slog.String("product_id", productID),
			slog.Int64("current_stock", *product.CurrentStock))
	}

	return product, nil
}

// SetStock sets the absolute on-hand quantity (manual adjustment: restock,
// damage, loss).
func (s *inventoryService) SetStock(ctx context.Context, productID string, stock int64, userID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	if err := s.productRepo.UpdateStock(ctx, productID, stock, userID, now); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to set stock", slog.String("error", err.Error()), slog.String("product_id", productID))
		}
		return nil, fmt.Errorf("failed to set stock for product %s: %w", productID, err)
	}

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload product %s: %w", productID, err)
	}

	logger.Info("Stock adjusted", slog.String("product_id", productID), slog.Int64("stock", stock))
	return product, nil
}

// CheckAvailability reports whether the tracked stock covers the requested
// units. Untracked products are always available.
func (s *inventoryService) CheckAvailability(ctx context.Context, productID string, quantity int64) (bool, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return false, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	return product.HasStockFor(quantity), nil
}

// DeleteProduct tombstones a product. Sale items keep their frozen prices
// and profits; only the product row is soft-deleted.
func (s *inventoryService) DeleteProduct(ctx context.Context, productID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	if err := s.productRepo.SoftDeleteProduct(ctx, productID, userID, now); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete product", slog.String("error", err.Error()), slog.String("product_id", productID))
		}
		return fmt.Errorf("failed to delete product %s: %w", productID, err)
	}

	logger.Info("Product soft-deleted", slog.String("product_id", productID))
	return nil
}
