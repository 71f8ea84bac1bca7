package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mauzoapp/mauzo_backend/internal/apperrors"
	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	portsrepo "github.com/mauzoapp/mauzo_backend/internal/core/ports/repositories"
	"github.com/mauzoapp/mauzo_backend/internal/models"
	"github.com/mauzoapp/mauzo_backend/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const customerColumns = `
	customer_id, shop_id, name, phone, credit_limit, current_debt, total_purchases, total_paid,
	created_at, created_by, last_updated_at, last_updated_by,
	sync_status, last_synced_at, deleted_at`

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.ShopID,
		&m.Name,
		&m.Phone,
		&m.CreditLimit,
		&m.CurrentDebt,
		&m.TotalPurchases,
		&m.TotalPaid,
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

// SaveCustomer persists a new customer.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		INSERT INTO customers (
			customer_id, shop_id, name, phone, credit_limit, current_debt, total_purchases, total_paid,
			created_at, created_by, last_updated_at, last_updated_by, sync_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.ShopID,
		m.Name,
		m.Phone,
		m.CreditLimit,
		m.CurrentDebt,
		m.TotalPurchases,
		m.TotalPaid,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SyncStatus,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert customer "+m.CustomerID, err)
	}
	return nil
}

// FindCustomerByID retrieves a specific customer by its unique identifier.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1 AND deleted_at IS NULL;`
	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find customer by ID "+customerID, err)
	}
	d := mapping.ToDomainCustomer(*m)
	return &d, nil
}

// ListCustomersByShop retrieves customers belonging to a shop.
func (r *PgxCustomerRepository) ListCustomersByShop(ctx context.Context, shopID string, limit int, offset int) ([]domain.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE shop_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, shopID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query customers for shop "+shopID, err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan customer row for shop "+shopID, err)
		}
		customers = append(customers, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating customer rows for shop "+shopID, err)
	}
	return mapping.ToDomainCustomerSlice(customers), nil
}

// execQuerier covers both the pool and an open transaction.
type execQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// UpdateCustomerTotals persists the debt position fields of a customer.
func (r *PgxCustomerRepository) UpdateCustomerTotals(ctx context.Context, customer domain.Customer) error {
	return r.updateTotals(ctx, r.Pool, customer)
}

// UpdateCustomerTotalsInTx persists the debt position fields within a transaction.
func (r *PgxCustomerRepository) UpdateCustomerTotalsInTx(ctx context.Context, tx pgx.Tx, customer domain.Customer) error {
	return r.updateTotals(ctx, tx, customer)
}

func (r *PgxCustomerRepository) updateTotals(ctx context.Context, db execQuerier, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		UPDATE customers
		SET current_debt = $2, total_purchases = $3, total_paid = $4,
		    last_updated_at = $5, last_updated_by = $6, sync_status = $7
		WHERE customer_id = $1 AND deleted_at IS NULL;
	`
	tag, err := db.Exec(ctx, query,
		m.CustomerID,
		m.CurrentDebt,
		m.TotalPurchases,
		m.TotalPaid,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SyncStatus,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update totals for customer "+m.CustomerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ApplyCustomerPayment atomically reduces the customer's debt (floored at
// zero) and accumulates totalPaid under a row lock.
func (r *PgxCustomerRepository) ApplyCustomerPayment(ctx context.Context, customerID string, amount decimal.Decimal, userID string, now time.Time) (*domain.Customer, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	customer, err := r.FindCustomerByIDForUpdate(ctx, tx, customerID)
	if err != nil {
		return nil, err
	}

	customer.ApplyPayment(amount)
	customer.LastUpdatedAt = now
	customer.LastUpdatedBy = userID
	customer.MarkPending()

	if err := r.UpdateCustomerTotalsInTx(ctx, tx, *customer); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return customer, nil
}

// FindCustomerByIDForUpdate selects a customer and locks the row within a transaction.
func (r *PgxCustomerRepository) FindCustomerByIDForUpdate(ctx context.Context, tx pgx.Tx, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1 AND deleted_at IS NULL FOR UPDATE;`
	m, err := scanCustomer(tx.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock customer "+customerID, err)
	}
	d := mapping.ToDomainCustomer(*m)
	return &d, nil
}
