package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mauzoapp/mauzo_backend/internal/apperrors"
	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	portsrepo "github.com/mauzoapp/mauzo_backend/internal/core/ports/repositories"
)

// syncTarget maps an entity family to its table and primary key column.
type syncTarget struct {
	table string
	pk    string
}

var syncTargets = map[domain.EntityType]syncTarget{
	domain.EntityProduct:            {table: "products", pk: "product_id"},
	domain.EntityCustomer:           {table: "customers", pk: "customer_id"},
	domain.EntitySale:               {table: "sales", pk: "sale_id"},
	domain.EntitySaleItem:           {table: "sale_items", pk: "sale_item_id"},
	domain.EntitySalePayment:        {table: "sale_payments", pk: "sale_payment_id"},
	domain.EntitySaleRefund:         {table: "sale_refunds", pk: "sale_refund_id"},
	domain.EntityPurchaseOrder:      {table: "purchase_orders", pk: "purchase_order_id"},
	domain.EntityPurchaseOrderItem:  {table: "purchase_order_items", pk: "purchase_order_item_id"},
	domain.EntityPurchasePayment:    {table: "purchase_payments", pk: "purchase_payment_id"},
	domain.EntitySavingsSettings:    {table: "shop_savings_settings", pk: "shop_id"},
	domain.EntitySavingsGoal:        {table: "savings_goals", pk: "savings_goal_id"},
	domain.EntitySavingsTransaction: {table: "savings_transactions", pk: "savings_transaction_id"},
}

type PgxSyncRepository struct {
	BaseRepository
}

// newPgxSyncRepository creates a new repository for sync status tracking.
func newPgxSyncRepository(pool *pgxpool.Pool) portsrepo.SyncTracker {
	return &PgxSyncRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SyncTracker = (*PgxSyncRepository)(nil)

// ListPendingSync retrieves records of the given entity family still in
// PENDING sync status, oldest mutation first. Soft-deleted rows are
// included: their tombstones still have to reach the remote side.
func (r *PgxSyncRepository) ListPendingSync(ctx context.Context, entityType domain.EntityType, limit int) ([]domain.SyncRecord, error) {
	target, ok := syncTargets[entityType]
	if !ok {
		return nil, apperrors.NewAppError(400, "unknown entity type "+string(entityType), apperrors.ErrValidation)
	}

	query := `
		SELECT ` + target.pk + `, last_updated_at
		FROM ` + target.table + `
		WHERE sync_status = $1
		ORDER BY last_updated_at ASC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, string(domain.SyncPending), limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query pending sync records for "+target.table, err)
	}
	defer rows.Close()

	records := []domain.SyncRecord{}
	for rows.Next() {
		rec := domain.SyncRecord{EntityType: entityType}
		if err := rows.Scan(&rec.RecordID, &rec.LastUpdatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan pending sync row for "+target.table, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating pending sync rows for "+target.table, err)
	}
	return records, nil
}

// MarkSyncStatus acknowledges a record's upload state.
func (r *PgxSyncRepository) MarkSyncStatus(ctx context.Context, entityType domain.EntityType, recordID string, status domain.SyncStatus, syncedAt time.Time) error {
	target, ok := syncTargets[entityType]
	if !ok {
		return apperrors.NewAppError(400, "unknown entity type "+string(entityType), apperrors.ErrValidation)
	}

	query := `
		UPDATE ` + target.table + `
		SET sync_status = $2, last_synced_at = $3
		WHERE ` + target.pk + ` = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, recordID, string(status), syncedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark sync status for "+target.table+" "+recordID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
