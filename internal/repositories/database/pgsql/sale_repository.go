package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mauzoapp/mauzo_backend/internal/apperrors"
	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	portsrepo "github.com/mauzoapp/mauzo_backend/internal/core/ports/repositories"
	"github.com/mauzoapp/mauzo_backend/internal/models"
	"github.com/mauzoapp/mauzo_backend/internal/utils/mapping"
	"github.com/mauzoapp/mauzo_backend/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const saleColumns = `
	sale_id, shop_id, customer_id, subtotal, tax_amount, discount_amount, total_amount,
	amount_paid, change_amount, debt_amount, profit_amount, status, payment_status, sale_date,
	created_at, created_by, last_updated_at, last_updated_by,
	sync_status, last_synced_at, deleted_at`

type PgxSaleRepository struct {
	BaseRepository
	productRepo  portsrepo.ProductRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
}

// newPgxSaleRepository creates a new repository for sale, payment and refund data.
func newPgxSaleRepository(pool *pgxpool.Pool, productRepo portsrepo.ProductRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{
		BaseRepository: BaseRepository{Pool: pool},
		productRepo:    productRepo,
		customerRepo:   customerRepo,
	}
}

var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

func scanSale(row pgx.Row) (*models.Sale, error) {
	var m models.Sale
	err := row.Scan(
		&m.SaleID,
		&m.ShopID,
		&m.CustomerID,
		&m.Subtotal,
		&m.TaxAmount,
		&m.DiscountAmount,
		&m.TotalAmount,
		&m.AmountPaid,
		&m.ChangeAmount,
		&m.DebtAmount,
		&m.ProfitAmount,
		&m.Status,
		&m.PaymentStatus,
		&m.SaleDate,
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

// SaveSale saves the sale header, its items and initial payments, applies the
// stock deductions and adds the sale's debt to the customer within one DB
// transaction.
func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.Sale, items []domain.SaleItem, payments []domain.SalePayment, stockDeductions map[string]int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := sale.CreatedAt
	userID := sale.CreatedBy

	// 1. Insert the sale header
	m := mapping.ToModelSale(sale)
	saleQuery := `
		INSERT INTO sales (
			sale_id, shop_id, customer_id, subtotal, tax_amount, discount_amount, total_amount,
			amount_paid, change_amount, debt_amount, profit_amount, status, payment_status, sale_date,
			created_at, created_by, last_updated_at, last_updated_by, sync_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err = tx.Exec(ctx, saleQuery,
		m.SaleID,
		m.ShopID,
		m.CustomerID,
		m.Subtotal,
		m.TaxAmount,
		m.DiscountAmount,
		m.TotalAmount,
		m.AmountPaid,
		m.ChangeAmount,
		m.DebtAmount,
		m.ProfitAmount,
		m.Status,
		m.PaymentStatus,
		m.SaleDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SyncStatus,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert sale "+m.SaleID, err)
	}

	// 2. Batch insert the line items
	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO sale_items (
			sale_item_id, sale_id, product_id, product_name, quantity, selling_price, cost_price,
			discount_amount, subtotal, total, profit,
			created_at, created_by, last_updated_at, last_updated_by, sync_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	for _, item := range items {
		mi := mapping.ToModelSaleItem(item)
		batch.Queue(itemQuery,
			mi.SaleItemID,
			mi.SaleID,
			mi.ProductID,
			mi.ProductName,
			mi.Quantity,
			mi.SellingPrice,
			mi.CostPrice,
			mi.DiscountAmount,
			mi.Subtotal,
			mi.Total,
			mi.Profit,
			mi.CreatedAt,
			mi.CreatedBy,
			mi.LastUpdatedAt,
			mi.LastUpdatedBy,
			mi.SyncStatus,
		)
	}

	// 3. Batch insert the initial payments
	paymentQuery := `
		INSERT INTO sale_payments (
			sale_payment_id, sale_id, payment_method, amount, payment_date,
			created_at, created_by, last_updated_at, last_updated_by, sync_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, payment := range payments {
		mp := mapping.ToModelSalePayment(payment)
		batch.Queue(paymentQuery,
			mp.SalePaymentID,
			mp.SaleID,
			mp.PaymentMethod,
			mp.Amount,
			mp.PaymentDate,
			mp.CreatedAt,
			mp.CreatedBy,
			mp.LastUpdatedAt,
			mp.LastUpdatedBy,
			mp.SyncStatus,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute item/payment batch for sale "+m.SaleID, err)
	}

	// 4. Lock products and apply the stock deductions
	if len(stockDeductions) > 0 {
		productIDs := make([]string, 0, len(stockDeductions))
		for productID := range stockDeductions {
			productIDs = append(productIDs, productID)
		}
		if _, err := r.productRepo.FindProductsByIDsForUpdate(ctx, tx, productIDs); err != nil {
			return err
		}
		if err := r.productRepo.ApplyStockDeductionsInTx(ctx, tx, stockDeductions, userID, now); err != nil {
			return err
		}
	}

	// 5. Add the unpaid remainder to the customer's debt position
	if sale.CustomerID != nil && sale.DebtAmount.IsPositive() {
		customer, err := r.customerRepo.FindCustomerByIDForUpdate(ctx, tx, *sale.CustomerID)
		if err != nil {
			return err
		}
		customer.ApplyDebt(sale.DebtAmount)
		customer.LastUpdatedAt = now
		customer.LastUpdatedBy = userID
		customer.MarkPending()
		if err := r.customerRepo.UpdateCustomerTotalsInTx(ctx, tx, *customer); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// AppendSalePayment appends a payment, re-derives the sale's payment fields
// from the summed ledger, and reduces the customer's debt by the delta, all
// within one DB transaction.
func (r *PgxSaleRepository) AppendSalePayment(ctx context.Context, payment domain.SalePayment) (*domain.Sale, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	sale, err := r.findSaleByIDForUpdate(ctx, tx, payment.SaleID)
	if err != nil {
		return nil, err
	}

	mp := mapping.ToModelSalePayment(payment)
	paymentQuery := `
		INSERT INTO sale_payments (
			sale_payment_id, sale_id, payment_method, amount, payment_date,
			created_at, created_by, last_updated_at, last_updated_by, sync_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, paymentQuery,
		mp.SalePaymentID,
		mp.SaleID,
		mp.PaymentMethod,
		mp.Amount,
		mp.PaymentDate,
		mp.CreatedAt,
		mp.CreatedBy,
		mp.LastUpdatedAt,
		mp.LastUpdatedBy,
		mp.SyncStatus,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert payment for sale "+payment.SaleID, err)
	}

	// Re-derive from the full ledger rather than incrementing the header.
	totalPaid, err := r.sumPaymentsInTx(ctx, tx, payment.SaleID)
	if err != nil {
		return nil, err
	}

	oldDebt := sale.DebtAmount
	sale.ApplyPaymentTotals(totalPaid)
	sale.LastUpdatedAt = payment.CreatedAt
	sale.LastUpdatedBy = payment.CreatedBy
	sale.MarkPending()

	if err := r.updateSalePaymentFieldsInTx(ctx, tx, *sale); err != nil {
		return nil, err
	}

	// The debt the customer sheds is the sale-level delta, not the raw
	// payment amount, so overpayments do not push customer debt negative.
	debtReduction := oldDebt.Sub(sale.DebtAmount)
	if sale.CustomerID != nil && debtReduction.IsPositive() {
		customer, err := r.customerRepo.FindCustomerByIDForUpdate(ctx, tx, *sale.CustomerID)
		if err != nil {
			return nil, err
		}
		customer.ApplyPayment(debtReduction)
		customer.LastUpdatedAt = payment.CreatedAt
		customer.LastUpdatedBy = payment.CreatedBy
		customer.MarkPending()
		if err := r.customerRepo.UpdateCustomerTotalsInTx(ctx, tx, *customer); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return sale, nil
}

// AppendSaleRefund appends a refund and re-derives the sale status from the
// summed refund ledger within one DB transaction. Stock and customer debt
// are left untouched.
func (r *PgxSaleRepository) AppendSaleRefund(ctx context.Context, refund domain.SaleRefund) (*domain.Sale, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	sale, err := r.findSaleByIDForUpdate(ctx, tx, refund.SaleID)
	if err != nil {
		return nil, err
	}

	mr := mapping.ToModelSaleRefund(refund)
	refundQuery := `
		INSERT INTO sale_refunds (
			sale_refund_id, sale_id, amount, reason, refund_date,
			created_at, created_by, last_updated_at, last_updated_by, sync_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, refundQuery,
		mr.SaleRefundID,
		mr.SaleID,
		mr.Amount,
		mr.Reason,
		mr.RefundDate,
		mr.CreatedAt,
		mr.CreatedBy,
		mr.LastUpdatedAt,
		mr.LastUpdatedBy,
		mr.SyncStatus,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert refund for sale "+refund.SaleID, err)
	}

	var totalRefunded decimal.Decimal
	sumQuery := `SELECT COALESCE(SUM(amount), 0) FROM sale_refunds WHERE sale_id = $1;`
	if err := tx.QueryRow(ctx, sumQuery, refund.SaleID).Scan(&totalRefunded); err != nil {
		return nil, apperrors.NewAppError(500, "failed to sum refunds for sale "+refund.SaleID, err)
	}

	sale.ApplyRefundTotals(totalRefunded)
	sale.LastUpdatedAt = refund.CreatedAt
	sale.LastUpdatedBy = refund.CreatedBy
	sale.MarkPending()

	statusQuery := `
		UPDATE sales
		SET status = $2, last_updated_at = $3, last_updated_by = $4, sync_status = $5
		WHERE sale_id = $1;
	`
	_, err = tx.Exec(ctx, statusQuery, sale.SaleID, string(sale.Status), sale.LastUpdatedAt, sale.LastUpdatedBy, string(sale.SyncStatus))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update status for sale "+sale.SaleID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return sale, nil
}

// UpdateSaleStatus sets the lifecycle status of a sale.
func (r *PgxSaleRepository) UpdateSaleStatus(ctx context.Context, saleID string, status domain.SaleStatus, userID string, now time.Time) error {
	query := `
		UPDATE sales
		SET status = $2, last_updated_at = $3, last_updated_by = $4, sync_status = $5
		WHERE sale_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, saleID, string(status), now, userID, string(domain.SyncPending))
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for sale "+saleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSaleRepository) findSaleByIDForUpdate(ctx context.Context, tx pgx.Tx, saleID string) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE sale_id = $1 AND deleted_at IS NULL FOR UPDATE;`
	m, err := scanSale(tx.QueryRow(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock sale "+saleID, err)
	}
	d := mapping.ToDomainSale(*m)
	return &d, nil
}

func (r *PgxSaleRepository) sumPaymentsInTx(ctx context.Context, tx pgx.Tx, saleID string) (decimal.Decimal, error) {
	var totalPaid decimal.Decimal
	sumQuery := `SELECT COALESCE(SUM(amount), 0) FROM sale_payments WHERE sale_id = $1;`
	if err := tx.QueryRow(ctx, sumQuery, saleID).Scan(&totalPaid); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum payments for sale "+saleID, err)
	}
	return totalPaid, nil
}

func (r *PgxSaleRepository) updateSalePaymentFieldsInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	m := mapping.ToModelSale(sale)
	query := `
		UPDATE sales
		SET amount_paid = $2, debt_amount = $3, payment_status = $4,
		    last_updated_at = $5, last_updated_by = $6, sync_status = $7
		WHERE sale_id = $1;
	`
	_, err := tx.Exec(ctx, query,
		m.SaleID,
		m.AmountPaid,
		m.DebtAmount,
		m.PaymentStatus,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SyncStatus,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payment fields for sale "+m.SaleID, err)
	}
	return nil
}

// FindSaleByID retrieves a sale header by its unique identifier.
func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE sale_id = $1 AND deleted_at IS NULL;`
	m, err := scanSale(r.Pool.QueryRow(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find sale by ID "+saleID, err)
	}
	d := mapping.ToDomainSale(*m)
	return &d, nil
}

// FindItemsBySaleID retrieves the line items of a sale.
func (r *PgxSaleRepository) FindItemsBySaleID(ctx context.Context, saleID string) ([]domain.SaleItem, error) {
	query := `
		SELECT sale_item_id, sale_id, product_id, product_name, quantity, selling_price, cost_price,
		       discount_amount, subtotal, total, profit,
		       created_at, created_by, last_updated_at, last_updated_by,
		       sync_status, last_synced_at, deleted_at
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY created_at, sale_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, saleID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for sale "+saleID, err)
	}
	defer rows.Close()

	items := []models.SaleItem{}
	for rows.Next() {
		var m models.SaleItem
		err := rows.Scan(
			&m.SaleItemID,
			&m.SaleID,
			&m.ProductID,
			&m.ProductName,
			&m.Quantity,
			&m.SellingPrice,
			&m.CostPrice,
			&m.DiscountAmount,
			&m.Subtotal,
			&m.Total,
			&m.Profit,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&m.SyncStatus,
			&m.LastSyncedAt,
			&m.DeletedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan item row for sale "+saleID, err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating item rows for sale "+saleID, err)
	}
	return mapping.ToDomainSaleItemSlice(items), nil
}

// FindPaymentsBySaleID retrieves the payment ledger of a sale in insertion order.
func (r *PgxSaleRepository) FindPaymentsBySaleID(ctx context.Context, saleID string) ([]domain.SalePayment, error) {
	query := `
		SELECT sale_payment_id, sale_id, payment_method, amount, payment_date,
		       created_at, created_by, last_updated_at, last_updated_by,
		       sync_status, last_synced_at, deleted_at
		FROM sale_payments
		WHERE sale_id = $1
		ORDER BY created_at, sale_payment_id;
	`
	rows, err := r.Pool.Query(ctx, query, saleID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for sale "+saleID, err)
	}
	defer rows.Close()

	payments := []models.SalePayment{}
	for rows.Next() {
		var m models.SalePayment
		err := rows.Scan(
			&m.SalePaymentID,
			&m.SaleID,
			&m.PaymentMethod,
			&m.Amount,
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
			return nil, apperrors.NewAppError(500, "failed to scan payment row for sale "+saleID, err)
		}
		payments = append(payments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows for sale "+saleID, err)
	}
	return mapping.ToDomainSalePaymentSlice(payments), nil
}

// FindRefundsBySaleID retrieves the refund ledger of a sale in insertion order.
func (r *PgxSaleRepository) FindRefundsBySaleID(ctx context.Context, saleID string) ([]domain.SaleRefund, error) {
	query := `
		SELECT sale_refund_id, sale_id, amount, reason, refund_date,
		       created_at, created_by, last_updated_at, last_updated_by,
		       sync_status, last_synced_at, deleted_at
		FROM sale_refunds
		WHERE sale_id = $1
		ORDER BY created_at, sale_refund_id;
	`
	rows, err := r.Pool.Query(ctx, query, saleID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query refunds for sale "+saleID, err)
	}
	defer rows.Close()

	refunds := []models.SaleRefund{}
	for rows.Next() {
		var m models.SaleRefund
		err := rows.Scan(
			&m.SaleRefundID,
			&m.SaleID,
			&m.Amount,
			&m.Reason,
			&m.RefundDate,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&m.SyncStatus,
			&m.LastSyncedAt,
			&m.DeletedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan refund row for sale "+saleID, err)
		}
		refunds = append(refunds, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating refund rows for sale "+saleID, err)
	}
	return mapping.ToDomainSaleRefundSlice(refunds), nil
}

// ListSalesByShop retrieves a token-paginated page of sales for a shop,
// newest first, with created_at as a stable tie-breaker.
func (r *PgxSaleRepository) ListSalesByShop(ctx context.Context, shopID string, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + saleColumns + ` FROM sales WHERE shop_id = $1 AND deleted_at IS NULL`
	orderByClause := `ORDER BY sale_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{shopID}

	if nextToken != nil && *nextToken != "" {
		lastSaleDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		cursorClause := `AND (sale_date, created_at) < ($2, $3)`
		args = append(args, lastSaleDate, lastCreatedAt)
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query sales for shop "+shopID, err)
	}
	defer rows.Close()

	sales := make([]models.Sale, 0, fetchLimit)
	for rows.Next() {
		m, err := scanSale(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan sale row for shop "+shopID, err)
		}
		sales = append(sales, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating sale rows for shop "+shopID, err)
	}

	var nextTokenVal *string
	if len(sales) > limit {
		last := sales[limit-1]
		token := pagination.EncodeToken(last.SaleDate, last.CreatedAt)
		nextTokenVal = &token
		sales = sales[:limit]
	}
	return mapping.ToDomainSaleSlice(sales), nextTokenVal, nil
}
