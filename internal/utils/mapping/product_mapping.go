package mapping

import (
	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	"github.com/mauzoapp/mauzo_backend/internal/models"
)

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:      d.ProductID,
		ShopID:         d.ShopID,
		Name:           d.Name,
		TrackInventory: d.TrackInventory,
		CurrentStock:   d.CurrentStock,
		CostPerUnit:    d.CostPerUnit,
		SellingPrice:   d.SellingPrice,
		AuditFields:    ToModelAuditFields(d.AuditFields),
		SyncFields:     ToModelSyncFields(d.SyncFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:      m.ProductID,
		ShopID:         m.ShopID,
		Name:           m.Name,
		TrackInventory: m.TrackInventory,
		CurrentStock:   m.CurrentStock,
		CostPerUnit:    m.CostPerUnit,
		SellingPrice:   m.SellingPrice,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		SyncFields:     ToDomainSyncFields(m.SyncFields),
	}
}

// ToDomainProductSlice converts a slice of model Products to domain Products
func ToDomainProductSlice(ms []models.Product) []domain.Product {
	ds := make([]domain.Product, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProduct(m)
	}
	return ds
}
