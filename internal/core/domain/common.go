package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// SyncStatus tracks whether a local mutation has been picked up by the
// external synchronization collaborator.
type SyncStatus string

const (
	SyncPending SyncStatus = "PENDING"
	SyncSynced  SyncStatus = "SYNCED"
)

// RecordState is the lifecycle state derived from the sync/delete flags.
type RecordState string

const (
	StatePendingSync RecordState = "PENDING_SYNC"
	StateSynced      RecordState = "SYNCED"
	StateDeleted     RecordState = "DELETED"
)

// SyncFields holds the sync and soft-delete flags carried by every persisted record.
// Every mutation performed by the engines resets SyncStatus to PENDING; the sync
// subsystem flips it back to SYNCED after a successful upload.
type SyncFields struct {
	SyncStatus   SyncStatus `json:"syncStatus"`
	LastSyncedAt *time.Time `json:"lastSyncedAt,omitempty"`
	DeletedAt    *time.Time `json:"deletedAt,omitempty"`
}

// MarkPending flags the record as locally mutated and not yet uploaded.
func (f *SyncFields) MarkPending() {
	f.SyncStatus = SyncPending
}

// MarkSynced records a successful upload at the given time.
func (f *SyncFields) MarkSynced(at time.Time) {
	f.SyncStatus = SyncSynced
	f.LastSyncedAt = &at
}

// SoftDelete tombstones the record without erasing ledger history.
func (f *SyncFields) SoftDelete(at time.Time) {
	f.DeletedAt = &at
	f.SyncStatus = SyncPending
}

// State derives the record lifecycle state. Deletion wins over sync status.
func (f SyncFields) State() RecordState {
	switch {
	case f.DeletedAt != nil:
		return StateDeleted
	case f.SyncStatus == SyncSynced:
		return StateSynced
	default:
		return StatePendingSync
	}
}

// EntityType names a syncable record family for the sync collaborator contract.
type EntityType string

const (
	EntityProduct            EntityType = "products"
	EntityCustomer           EntityType = "customers"
	EntitySale               EntityType = "sales"
	EntitySaleItem           EntityType = "sale_items"
	EntitySalePayment        EntityType = "sale_payments"
	EntitySaleRefund         EntityType = "sale_refunds"
	EntityPurchaseOrder      EntityType = "purchase_orders"
	EntityPurchaseOrderItem  EntityType = "purchase_order_items"
	EntityPurchasePayment    EntityType = "purchase_payments"
	EntitySavingsSettings    EntityType = "shop_savings_settings"
	EntitySavingsGoal        EntityType = "savings_goals"
	EntitySavingsTransaction EntityType = "savings_transactions"
)

// KnownEntityTypes lists every syncable family, in upload order.
func KnownEntityTypes() []EntityType {
	return []EntityType{
		EntityProduct,
		EntityCustomer,
		EntitySale,
		EntitySaleItem,
		EntitySalePayment,
		EntitySaleRefund,
		EntityPurchaseOrder,
		EntityPurchaseOrderItem,
		EntityPurchasePayment,
		EntitySavingsSettings,
		EntitySavingsGoal,
		EntitySavingsTransaction,
	}
}
