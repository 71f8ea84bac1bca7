package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mauzoapp/mauzo_backend/internal/apperrors"
	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	portsrepo "github.com/mauzoapp/mauzo_backend/internal/core/ports/repositories"
	"github.com/mauzoapp/mauzo_backend/internal/models"
	"github.com/mauzoapp/mauzo_backend/internal/utils/mapping"
	"github.com/mauzoapp/mauzo_backend/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const purchaseOrderColumns = `
	purchase_order_id, buyer_shop_id, seller_shop_id, reference_number, status,
	total_amount, total_paid, reject_reason, approved_at, approved_by,
	created_at, created_by, last_updated_at, last_updated_by,
	sync_status, last_synced_at, deleted_at`

// uniqueViolationCode is the Postgres error code for unique constraint violations.
const uniqueViolationCode = "23505"

type PgxPurchaseOrderRepository struct {
	BaseRepository
}

// newPgxPurchaseOrderRepository creates a new repository for purchase order data.
func newPgxPurchaseOrderRepository(pool *pgxpool.Pool) portsrepo.PurchaseOrderRepositoryFacade {
	return &PgxPurchaseOrderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PurchaseOrderRepositoryFacade = (*PgxPurchaseOrderRepository)(nil)

func scanPurchaseOrder(row pgx.Row) (*models.PurchaseOrder, error) {
	var m models.PurchaseOrder
	err := row.Scan(
		&m.PurchaseOrderID,
		&m.BuyerShopID,
		&m.SellerShopID,
		&m.ReferenceNumber,
		&m.Status,
		&m.TotalAmount,
		&m.TotalPaid,
		&m.RejectReason,
		&m.ApprovedAt,
		&m.ApprovedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.SyncStatus,
		&m.LastSyncedAt,
		&m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SavePurchaseOrder saves the order header and its items within one DB
// transaction. A taken reference number surfaces as ErrDuplicate.
func (r *PgxPurchaseOrderRepository) SavePurchaseOrder(ctx context.Context, order domain.PurchaseOrder, items []domain.PurchaseOrderItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelPurchaseOrder(order)
	orderQuery := `
		INSERT INTO purchase_orders (
			purchase_order_id, buyer_shop_id, seller_shop_id, reference_number, status,
			total_amount, total_paid, reject_reason, approved_at, approved_by,
			created_at, created_by, last_updated_at, last_updated_by, sync_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, orderQuery,
		m.PurchaseOrderID,
		m.BuyerShopID,
		m.SellerShopID,
		m.ReferenceNumber,
		m.Status,
		m.TotalAmount,
		m.TotalPaid,
		m.RejectReason,
		m.ApprovedAt,
		m.ApprovedBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SyncStatus,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.NewAppError(409, "reference number "+m.ReferenceNumber+" already in use", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert purchase order "+m.PurchaseOrderID, err)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO purchase_order_items (
			purchase_order_item_id, purchase_order_id, product_id, product_name,
			quantity, unit_price, total_price,
			created_at, created_by, last_updated_at, last_updated_by, sync_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, item := range items {
		mi := mapping.ToModelPurchaseOrderItem(item)
		batch.Queue(itemQuery,
			mi.PurchaseOrderItemID,
			mi.PurchaseOrderID,
			mi.ProductID,
			mi.ProductName,
			mi.Quantity,
			mi.UnitPrice,
			mi.TotalPrice,
			mi.CreatedAt,
			mi.CreatedBy,
			mi.LastUpdatedAt,
			mi.LastUpdatedBy,
			mi.SyncStatus,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute item batch for purchase order "+m.PurchaseOrderID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdatePurchaseOrder persists the mutable header fields of an order.
func (r *PgxPurchaseOrderRepository) UpdatePurchaseOrder(ctx context.Context, order domain.PurchaseOrder) error {
	m := mapping.ToModelPurchaseOrder(order)
	query := `
		UPDATE purchase_orders
		SET status = $2, total_paid = $3, reject_reason = $4, approved_at = $5, approved_by = $6,
		    last_updated_at = $7, last_updated_by = $8, sync_status = $9
		WHERE purchase_order_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.PurchaseOrderID,
		m.Status,
		m.TotalPaid,
		m.RejectReason,
		m.ApprovedAt,
		m.ApprovedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SyncStatus,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update purchase order "+m.PurchaseOrderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AppendPurchasePayment appends a payment, re-derives totalPaid from the
// summed ledger, and completes the order once fully covered, within one DB
// transaction. Payments against rejected or cancelled orders are refused.
func (r *PgxPurchaseOrderRepository) AppendPurchasePayment(ctx context.Context, payment domain.PurchasePayment) (*domain.PurchaseOrder, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	order, err := r.findOrderByIDForUpdate(ctx, tx, payment.PurchaseOrderID)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.PORejected || order.Status == domain.POCancelled {
		return nil, apperrors.NewAppError(409, "cannot pay purchase order in status "+string(order.Status), apperrors.ErrConflict)
	}

	mp := mapping.ToModelPurchasePayment(payment)
	paymentQuery := `
		INSERT INTO purchase_payments (
			purchase_payment_id, purchase_order_id, amount, payment_method, recorded_by, payment_date,
			created_at, created_by, last_updated_at, last_updated_by, sync_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, paymentQuery,
		mp.PurchasePaymentID,
		mp.PurchaseOrderID,
		mp.Amount,
		mp.PaymentMethod,
		mp.RecordedBy,
		mp.PaymentDate,
		mp.CreatedAt,
		mp.CreatedBy,
		mp.LastUpdatedAt,
		mp.LastUpdatedBy,
		mp.SyncStatus,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert payment for purchase order "+payment.PurchaseOrderID, err)
	}

	// Re-derive from the full ledger rather than incrementing the header.
	var totalPaid decimal.Decimal
	sumQuery := `SELECT COALESCE(SUM(amount), 0) FROM purchase_payments WHERE purchase_order_id = $1;`
	if err := tx.QueryRow(ctx, sumQuery, payment.PurchaseOrderID).Scan(&totalPaid); err != nil {
		return nil, apperrors.NewAppError(500, "failed to sum payments for purchase order "+payment.PurchaseOrderID, err)
	}

	order.ApplyPaymentTotal(totalPaid)
	order.LastUpdatedAt = payment.CreatedAt
	order.LastUpdatedBy = payment.CreatedBy
	order.MarkPending()

	m := mapping.ToModelPurchaseOrder(*order)
	updateQuery := `
		UPDATE purchase_orders
		SET status = $2, total_paid = $3, last_updated_at = $4, last_updated_by = $5, sync_status = $6
		WHERE purchase_order_id = $1;
	`
	_, err = tx.Exec(ctx, updateQuery,
		m.PurchaseOrderID,
		m.Status,
		m.TotalPaid,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SyncStatus,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update totals for purchase order "+m.PurchaseOrderID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *PgxPurchaseOrderRepository) findOrderByIDForUpdate(ctx context.Context, tx pgx.Tx, orderID string) (*domain.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE purchase_order_id = $1 AND deleted_at IS NULL FOR UPDATE;`
	m, err := scanPurchaseOrder(tx.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock purchase order "+orderID, err)
	}
	d := mapping.ToDomainPurchaseOrder(*m)
	return &d, nil
}

// FindPurchaseOrderByID retrieves an order header by its unique identifier.
func (r *PgxPurchaseOrderRepository) FindPurchaseOrderByID(ctx context.Context, orderID string) (*domain.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE purchase_order_id = $1 AND deleted_at IS NULL;`
	m, err := scanPurchaseOrder(r.Pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find purchase order by ID "+orderID, err)
	}
	d := mapping.ToDomainPurchaseOrder(*m)
	return &d, nil
}

// FindItemsByOrderID retrieves the line items of an order.
func (r *PgxPurchaseOrderRepository) FindItemsByOrderID(ctx context.Context, orderID string) ([]domain.PurchaseOrderItem, error) {
	query := `
		SELECT purchase_order_item_id, purchase_order_id, product_id, product_name,
		       quantity, unit_price, total_price,
		       created_at, created_by, last_updated_at, last_updated_by,
		       sync_status, last_synced_at, deleted_at
		FROM purchase_order_items
		WHERE purchase_order_id = $1
		ORDER BY created_at, purchase_order_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for purchase order "+orderID, err)
	}
	defer rows.Close()

	items := []models.PurchaseOrderItem{}
	for rows.Next() {
		var m models.PurchaseOrderItem
		err := rows.Scan(
			&m.PurchaseOrderItemID,
			&m.PurchaseOrderID,
			&m.ProductID,
			&m.ProductName,
			&m.Quantity,
			&m.UnitPrice,
			&m.TotalPrice,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&m.SyncStatus,
			&m.LastSyncedAt,
			&m.DeletedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan item row for purchase order "+orderID, err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating item rows for purchase order "+orderID, err)
	}
	return mapping.ToDomainPurchaseOrderItemSlice(items), nil
}

// FindPaymentsByOrderID retrieves the payment ledger of an order in insertion order.
func (r *PgxPurchaseOrderRepository) FindPaymentsByOrderID(ctx context.Context, orderID string) ([]domain.PurchasePayment, error) {
	query := `
		SELECT purchase_payment_id, purchase_order_id, amount, payment_method, recorded_by, payment_date,
		       created_at, created_by, last_updated_at, last_updated_by,
		       sync_status, last_synced_at, deleted_at
		FROM purchase_payments
		WHERE purchase_order_id = $1
		ORDER BY created_at, purchase_payment_id;
	`
	rows, err := r.Pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for purchase order "+orderID, err)
	}
	defer rows.Close()

	payments := []models.PurchasePayment{}
	for rows.Next() {
		var m models.PurchasePayment
		err := rows.Scan(
			&m.PurchasePaymentID,
			&m.PurchaseOrderID,
			&m.Amount,
			&m.PaymentMethod,
			&m.RecordedBy,
			&m.PaymentDate,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&m.SyncStatus,
			&m.LastSyncedAt,
			&m.DeletedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row for purchase order "+orderID, err)
		}
		payments = append(payments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows for purchase order "+orderID, err)
	}
	return mapping.ToDomainPurchasePaymentSlice(payments), nil
}

// ListPurchaseOrdersByShop retrieves a token-paginated page of orders where
// the shop is the buyer, newest first.
func (r *PgxPurchaseOrderRepository) ListPurchaseOrdersByShop(ctx context.Context, shopID string, limit int, nextToken *string) ([]domain.PurchaseOrder, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE buyer_shop_id = $1 AND deleted_at IS NULL`
	orderByClause := `ORDER BY created_at DESC, purchase_order_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{shopID}

	if nextToken != nil && *nextToken != "" {
		fields, decodeErr := pagination.DecodeMultiFieldToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		if len(fields) != 2 {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", errors.New("expected created_at and purchase_order_id components"))
		}
		lastCreatedAt, parseErr := time.Parse(time.RFC3339Nano, fields[0])
		if parseErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", parseErr)
		}
		// Tuple cursor matches the ORDER BY so equal-timestamp rows are
		// never skipped across pages.
		cursorClause := `AND (created_at, purchase_order_id) < ($2, $3)`
		args = append(args, lastCreatedAt, fields[1])
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query purchase orders for shop "+shopID, err)
	}
	defer rows.Close()

	orders := make([]models.PurchaseOrder, 0, fetchLimit)
	for rows.Next() {
		m, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan purchase order row for shop "+shopID, err)
		}
		orders = append(orders, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating purchase order rows for shop "+shopID, err)
	}

	var nextTokenVal *string
	if len(orders) > limit {
		last := orders[limit-1]
		token := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.PurchaseOrderID)
		nextTokenVal = &token
		orders = orders[:limit]
	}
	return mapping.ToDomainPurchaseOrderSlice(orders), nextTokenVal, nil
}
