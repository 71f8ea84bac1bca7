package models

import "github.com/shopspring/decimal"

// Product represents a sellable item row. CurrentStock and CostPerUnit are
// nullable; untracked products carry NULL stock.
type Product struct {
	ProductID      string           `db:"product_id"`
	ShopID         string           `db:"shop_id"`
	Name           string           `db:"name"`
	TrackInventory bool             `db:"track_inventory"`
	CurrentStock   *int64           `db:"current_stock"`
	CostPerUnit    *decimal.Decimal `db:"cost_per_unit"`
	SellingPrice   decimal.Decimal  `db:"selling_price"`
	AuditFields
	SyncFields
}
