package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mauzoapp/mauzo_backend/internal/apperrors"
	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	portsrepo "github.com/mauzoapp/mauzo_backend/internal/core/ports/repositories"
	"github.com/mauzoapp/mauzo_backend/internal/models"
	"github.com/mauzoapp/mauzo_backend/internal/utils/mapping"
)

const productColumns = `
	product_id, shop_id, name, track_inventory, current_stock, cost_per_unit, selling_price,
	created_at, created_by, last_updated_at, last_updated_by,
	sync_status, last_synced_at, deleted_at`

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for product and stock data.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

func scanProduct(row pgx.Row) (*models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.ShopID,
		&m.Name,
		&m.TrackInventory,
		&m.CurrentStock,
		&m.CostPerUnit,
		&m.SellingPrice,
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

// SaveProduct persists a new product.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		INSERT INTO products (
			product_id, shop_id, name, track_inventory, current_stock, cost_per_unit, selling_price,
			created_at, created_by, last_updated_at, last_updated_by, sync_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ProductID,
		m.ShopID,
		m.Name,
		m.TrackInventory,
		m.CurrentStock,
		m.CostPerUnit,
		m.SellingPrice,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SyncStatus,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert product "+m.ProductID, err)
	}
	return nil
}

// FindProductByID retrieves a specific product by its unique identifier.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1 AND deleted_at IS NULL;`
	m, err := scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find product by ID "+productID, err)
	}
	d := mapping.ToDomainProduct(*m)
	return &d, nil
}

// FindProductsByIDs retrieves multiple products by their IDs.
func (r *PgxProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = ANY($1) AND deleted_at IS NULL;`
	rows, err := r.Pool.Query(ctx, query, productIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query products by IDs", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Product, len(productIDs))
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product row", err)
		}
		result[m.ProductID] = mapping.ToDomainProduct(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating product rows", err)
	}
	return result, nil
}

// ListProductsByShop retrieves products belonging to a shop.
func (r *PgxProductRepository) ListProductsByShop(ctx context.Context, shopID string, limit int, offset int) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE shop_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, shopID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query products for shop "+shopID, err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product row for shop "+shopID, err)
		}
		products = append(products, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating product rows for shop "+shopID, err)
	}
	return mapping.ToDomainProductSlice(products), nil
}

// UpdateStock sets the absolute on-hand quantity for a tracked product.
func (r *PgxProductRepository) UpdateStock(ctx context.Context, productID string, stock int64, userID string, now time.Time) error {
	query := `
		UPDATE products
		SET current_stock = $2, last_updated_at = $3, last_updated_by = $4, sync_status = $5
		WHERE product_id = $1 AND track_inventory AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, productID, stock, now, userID, string(domain.SyncPending))
	if err != nil {
		return apperrors.NewAppError(500, "failed to update stock for product "+productID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeductStock atomically subtracts units from a tracked product under a row
// lock. Untracked products are returned unchanged. The stock may go
// negative; callers are expected to have run their availability check.
func (r *PgxProductRepository) DeductStock(ctx context.Context, productID string, quantity int64, userID string, now time.Time) (*domain.Product, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.FindProductsByIDsForUpdate(ctx, tx, []string{productID})
	if err != nil {
		return nil, err
	}
	product := locked[productID]

	if product.Tracked() {
		if err := r.ApplyStockDeductionsInTx(ctx, tx, map[string]int64{productID: quantity}, userID, now); err != nil {
			return nil, err
		}
		newStock := *product.CurrentStock - quantity
		product.CurrentStock = &newStock
		product.LastUpdatedAt = now
		product.LastUpdatedBy = userID
		product.MarkPending()
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &product, nil
}

// SoftDeleteProduct tombstones a product, preserving ledger history.
func (r *PgxProductRepository) SoftDeleteProduct(ctx context.Context, productID string, userID string, now time.Time) error {
	query := `
		UPDATE products
		SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3, sync_status = $4
		WHERE product_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, productID, now, userID, string(domain.SyncPending))
	if err != nil {
		return apperrors.NewAppError(500, "failed to soft delete product "+productID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindProductsByIDsForUpdate selects products and locks their rows within a transaction.
func (r *PgxProductRepository) FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = ANY($1) AND deleted_at IS NULL FOR UPDATE;`
	rows, err := tx.Query(ctx, query, productIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock products for update", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Product, len(productIDs))
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked product row", err)
		}
		result[m.ProductID] = mapping.ToDomainProduct(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked product rows", err)
	}

	for _, id := range productIDs {
		if _, ok := result[id]; !ok {
			return nil, apperrors.NewAppError(404, "product "+id+" not found", apperrors.ErrNotFound)
		}
	}
	return result, nil
}

// ApplyStockDeductionsInTx subtracts sold units from tracked products within
// a transaction. Untracked products are skipped by the WHERE clause.
func (r *PgxProductRepository) ApplyStockDeductionsInTx(ctx context.Context, tx pgx.Tx, deductions map[string]int64, userID string, now time.Time) error {
	if len(deductions) == 0 {
		return nil
	}
	query := `
		UPDATE products
		SET current_stock = current_stock - $2, last_updated_at = $3, last_updated_by = $4, sync_status = $5
		WHERE product_id = $1 AND track_inventory AND current_stock IS NOT NULL AND deleted_at IS NULL;
	`
	batch := &pgx.Batch{}
	for productID, units := range deductions {
		batch.Queue(query, productID, units, now, userID, string(domain.SyncPending))
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to apply stock deductions", err)
	}
	return nil
}
