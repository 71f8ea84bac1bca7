package domain

import "github.com/shopspring/decimal"

// Product represents a sellable item belonging to a shop.
// CurrentStock is nil for products that do not track inventory
// (services, digital goods); CostPerUnit is nil when unknown.
type Product struct {
	ProductID      string           `json:"productID"` // Primary Key (e.g., UUID)
	ShopID         string           `json:"shopID"`
	Name           string           `json:"name"`
	TrackInventory bool             `json:"trackInventory"`
	CurrentStock   *int64           `json:"currentStock,omitempty"`
	CostPerUnit    *decimal.Decimal `json:"costPerUnit,omitempty"`
	SellingPrice   decimal.Decimal  `json:"sellingPrice"`
	AuditFields
	SyncFields
}

// Tracked reports whether stock bookkeeping applies to this product.
// Products without a stock figure are treated as untracked even when
// the flag is set, matching how untracked rows arrive from the client.
func (p *Product) Tracked() bool {
	return p.TrackInventory && p.CurrentStock != nil
}

// HasStockFor reports whether the tracked stock covers the requested units.
// Callers enforcing the shop's no-negative-stock policy check this before
// deducting; the deduction itself applies no floor.
func (p *Product) HasStockFor(units int64) bool {
	if !p.Tracked() {
		return true
	}
	return *p.CurrentStock >= units
}
