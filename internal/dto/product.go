package dto

import (
	"time"

	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the payload for creating a product.
type CreateProductRequest struct {
	Name           string           `json:"name" binding:"required"`
	TrackInventory bool             `json:"trackInventory"`
	CurrentStock   *int64           `json:"currentStock,omitempty"`
	CostPerUnit    *decimal.Decimal `json:"costPerUnit,omitempty"`
	SellingPrice   decimal.Decimal  `json:"sellingPrice" binding:"required,dgt0"`
}

// DeductStockRequest removes sold units from a tracked product.
type DeductStockRequest struct {
	Quantity int64 `json:"quantity" binding:"required,gt=0"`
}

// SetStockRequest sets the absolute on-hand quantity (manual adjustment:
// restock, damage, loss).
type SetStockRequest struct {
	Stock int64 `json:"stock"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID      string           `json:"productID"`
	ShopID         string           `json:"shopID"`
	Name           string           `json:"name"`
	TrackInventory bool             `json:"trackInventory"`
	CurrentStock   *int64           `json:"currentStock,omitempty"`
	CostPerUnit    *decimal.Decimal `json:"costPerUnit,omitempty"`
	SellingPrice   decimal.Decimal  `json:"sellingPrice"`
	SyncStatus     string           `json:"syncStatus"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:      p.ProductID,
		ShopID:         p.ShopID,
		Name:           p.Name,
		TrackInventory: p.TrackInventory,
		CurrentStock:   p.CurrentStock,
		CostPerUnit:    p.CostPerUnit,
		SellingPrice:   p.SellingPrice,
		SyncStatus:     string(p.SyncStatus),
		CreatedAt:      p.CreatedAt,
	}
}

// ToProductResponses converts a slice of domain.Product to DTOs.
func ToProductResponses(products []domain.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
