package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mauzoapp/mauzo_backend/internal/apperrors"
	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	portsrepo "github.com/mauzoapp/mauzo_backend/internal/core/ports/repositories"
	"github.com/mauzoapp/mauzo_backend/internal/models"
	"github.com/mauzoapp/mauzo_backend/internal/utils/mapping"
	"github.com/mauzoapp/mauzo_backend/internal/utils/pagination"
)

const savingsSettingsColumns = `
	shop_id, enabled, current_balance, total_saved, total_withdrawn,
	deposit_percentage, fixed_deposit_amount, withdrawal_frequency,
	created_at, created_by, last_updated_at, last_updated_by,
	sync_status, last_synced_at, deleted_at`

const savingsGoalColumns = `
	savings_goal_id, shop_id, name, target_amount, current_amount, amount_withdrawn,
	progress_percentage, status,
	created_at, created_by, last_updated_at, last_updated_by,
	sync_status, last_synced_at, deleted_at`

const savingsTransactionColumns = `
	savings_transaction_id, shop_id, savings_goal_id, type, amount,
	balance_before, balance_after, description, transaction_date,
	created_at, created_by, last_updated_at, last_updated_by,
	sync_status, last_synced_at, deleted_at`

type PgxSavingsRepository struct {
	BaseRepository
}

// newPgxSavingsRepository creates a new repository for the savings ledger.
func newPgxSavingsRepository(pool *pgxpool.Pool) portsrepo.SavingsRepositoryFacade {
	return &PgxSavingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SavingsRepositoryFacade = (*PgxSavingsRepository)(nil)

func scanSavingsSettings(row pgx.Row) (*models.ShopSavingsSettings, error) {
	var m models.ShopSavingsSettings
	err := row.Scan(
		&m.ShopID,
		&m.Enabled,
		&m.CurrentBalance,
		&m.TotalSaved,
		&m.TotalWithdrawn,
		&m.DepositPercentage,
		&m.FixedDepositAmount,
		&m.WithdrawalFrequency,
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

func scanSavingsGoal(row pgx.Row) (*models.SavingsGoal, error) {
	var m models.SavingsGoal
	err := row.Scan(
		&m.SavingsGoalID,
		&m.ShopID,
		&m.Name,
		&m.TargetAmount,
		&m.CurrentAmount,
		&m.AmountWithdrawn,
		&m.ProgressPercentage,
		&m.Status,
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

func scanSavingsTransaction(row pgx.Row) (*models.SavingsTransaction, error) {
	var m models.SavingsTransaction
	err := row.Scan(
		&m.SavingsTransactionID,
		&m.ShopID,
		&m.SavingsGoalID,
		&m.Type,
		&m.Amount,
		&m.BalanceBefore,
		&m.BalanceAfter,
		&m.Description,
		&m.TransactionDate,
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

// FindSettingsByShopID retrieves the savings settings row for a shop.
func (r *PgxSavingsRepository) FindSettingsByShopID(ctx context.Context, shopID string) (*domain.ShopSavingsSettings, error) {
	query := `SELECT ` + savingsSettingsColumns + ` FROM shop_savings_settings WHERE shop_id = $1 AND deleted_at IS NULL;`
	m, err := scanSavingsSettings(r.Pool.QueryRow(ctx, query, shopID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find savings settings for shop "+shopID, err)
	}
	d := mapping.ToDomainShopSavingsSettings(*m)
	return &d, nil
}

// FindGoalByID retrieves a savings goal by its unique identifier.
func (r *PgxSavingsRepository) FindGoalByID(ctx context.Context, goalID string) (*domain.SavingsGoal, error) {
	query := `SELECT ` + savingsGoalColumns + ` FROM savings_goals WHERE savings_goal_id = $1 AND deleted_at IS NULL;`
	m, err := scanSavingsGoal(r.Pool.QueryRow(ctx, query, goalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find savings goal by ID "+goalID, err)
	}
	d := mapping.ToDomainSavingsGoal(*m)
	return &d, nil
}

// ListGoalsByShop retrieves the goals of a shop.
func (r *PgxSavingsRepository) ListGoalsByShop(ctx context.Context, shopID string, limit int, offset int) ([]domain.SavingsGoal, error) {
	query := `
		SELECT ` + savingsGoalColumns + `
		FROM savings_goals
		WHERE shop_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, shopID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query savings goals for shop "+shopID, err)
	}
	defer rows.Close()

	goals := []models.SavingsGoal{}
	for rows.Next() {
		m, err := scanSavingsGoal(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan savings goal row for shop "+shopID, err)
		}
		goals = append(goals, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating savings goal rows for shop "+shopID, err)
	}
	return mapping.ToDomainSavingsGoalSlice(goals), nil
}

// ListTransactionsByShop retrieves the append-only ledger for a shop in
// transaction date order with created_at as a stable tie-breaker.
func (r *PgxSavingsRepository) ListTransactionsByShop(ctx context.Context, shopID string, limit int, nextToken *string) ([]domain.SavingsTransaction, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + savingsTransactionColumns + ` FROM savings_transactions WHERE shop_id = $1`
	orderByClause := `ORDER BY transaction_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{shopID}

	if nextToken != nil && *nextToken != "" {
		lastTxnDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		cursorClause := `AND (transaction_date, created_at) < ($2, $3)`
		args = append(args, lastTxnDate, lastCreatedAt)
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query savings transactions for shop "+shopID, err)
	}
	defer rows.Close()

	txns := make([]models.SavingsTransaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanSavingsTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan savings transaction row for shop "+shopID, err)
		}
		txns = append(txns, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating savings transaction rows for shop "+shopID, err)
	}

	var nextTokenVal *string
	if len(txns) > limit {
		last := txns[limit-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		nextTokenVal = &token
		txns = txns[:limit]
	}
	return mapping.ToDomainSavingsTransactionSlice(txns), nextTokenVal, nil
}

// SaveGoal persists a new savings goal.
func (r *PgxSavingsRepository) SaveGoal(ctx context.Context, goal domain.SavingsGoal) error {
	m := mapping.ToModelSavingsGoal(goal)
	query := `
		INSERT INTO savings_goals (
			savings_goal_id, shop_id, name, target_amount, current_amount, amount_withdrawn,
			progress_percentage, status,
			created_at, created_by, last_updated_at, last_updated_by, sync_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SavingsGoalID,
		m.ShopID,
		m.Name,
		m.TargetAmount,
		m.CurrentAmount,
		m.AmountWithdrawn,
		m.ProgressPercentage,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SyncStatus,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert savings goal "+m.SavingsGoalID, err)
	}
	return nil
}

// RecordDeposit appends a deposit within one DB transaction: the settings
// row is created at first use and locked, the balance chain is derived under
// the lock, and goal progress advances when the deposit is goal-directed.
func (r *PgxSavingsRepository) RecordDeposit(ctx context.Context, txn domain.SavingsTransaction) (*domain.SavingsTransaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	settings, err := r.lockOrCreateSettings(ctx, tx, txn)
	if err != nil {
		return nil, err
	}

	before, after := settings.ApplySettingsDeposit(txn.Amount)
	txn.BalanceBefore = before
	txn.BalanceAfter = after

	settings.LastUpdatedAt = txn.CreatedAt
	settings.LastUpdatedBy = txn.CreatedBy
	settings.MarkPending()
	if err := r.updateSettingsInTx(ctx, tx, *settings); err != nil {
		return nil, err
	}

	if err := r.insertTransactionInTx(ctx, tx, txn); err != nil {
		return nil, err
	}

	if txn.SavingsGoalID != nil {
		goal, err := r.findGoalByIDForUpdate(ctx, tx, *txn.SavingsGoalID)
		if err != nil {
			return nil, err
		}
		goal.ApplyDeposit(txn.Amount)
		goal.LastUpdatedAt = txn.CreatedAt
		goal.LastUpdatedBy = txn.CreatedBy
		goal.MarkPending()
		if err := r.updateGoalInTx(ctx, tx, *goal); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &txn, nil
}

// RecordWithdrawal appends a withdrawal within one DB transaction, failing
// with ErrInsufficientBalance when the amount exceeds the locked balance.
// Goal progress never moves backward; only amountWithdrawn accumulates.
func (r *PgxSavingsRepository) RecordWithdrawal(ctx context.Context, txn domain.SavingsTransaction) (*domain.SavingsTransaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	settings, err := r.lockOrCreateSettings(ctx, tx, txn)
	if err != nil {
		return nil, err
	}

	if txn.Amount.GreaterThan(settings.CurrentBalance) {
		return nil, apperrors.NewAppError(422,
			"withdrawal "+txn.Amount.String()+" exceeds savings balance "+settings.CurrentBalance.String(),
			apperrors.ErrInsufficientBalance)
	}

	before, after := settings.ApplySettingsWithdrawal(txn.Amount)
	txn.BalanceBefore = before
	txn.BalanceAfter = after

	settings.LastUpdatedAt = txn.CreatedAt
	settings.LastUpdatedBy = txn.CreatedBy
	settings.MarkPending()
	if err := r.updateSettingsInTx(ctx, tx, *settings); err != nil {
		return nil, err
	}

	if err := r.insertTransactionInTx(ctx, tx, txn); err != nil {
		return nil, err
	}

	if txn.SavingsGoalID != nil {
		goal, err := r.findGoalByIDForUpdate(ctx, tx, *txn.SavingsGoalID)
		if err != nil {
			return nil, err
		}
		goal.AmountWithdrawn = goal.AmountWithdrawn.Add(txn.Amount)
		goal.LastUpdatedAt = txn.CreatedAt
		goal.LastUpdatedBy = txn.CreatedBy
		goal.MarkPending()
		if err := r.updateGoalInTx(ctx, tx, *goal); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &txn, nil
}

// lockOrCreateSettings guarantees the shop has a settings row and returns it
// locked for the duration of the transaction.
func (r *PgxSavingsRepository) lockOrCreateSettings(ctx context.Context, tx pgx.Tx, txn domain.SavingsTransaction) (*domain.ShopSavingsSettings, error) {
	insertQuery := `
		INSERT INTO shop_savings_settings (
			shop_id, enabled, current_balance, total_saved, total_withdrawn,
			created_at, created_by, last_updated_at, last_updated_by, sync_status
		)
		VALUES ($1, FALSE, 0, 0, 0, $2, $3, $2, $3, $4)
		ON CONFLICT (shop_id) DO NOTHING;
	`
	_, err := tx.Exec(ctx, insertQuery, txn.ShopID, txn.CreatedAt, txn.CreatedBy, string(domain.SyncPending))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to ensure savings settings for shop "+txn.ShopID, err)
	}

	lockQuery := `SELECT ` + savingsSettingsColumns + ` FROM shop_savings_settings WHERE shop_id = $1 FOR UPDATE;`
	m, err := scanSavingsSettings(tx.QueryRow(ctx, lockQuery, txn.ShopID))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock savings settings for shop "+txn.ShopID, err)
	}
	d := mapping.ToDomainShopSavingsSettings(*m)
	return &d, nil
}

func (r *PgxSavingsRepository) updateSettingsInTx(ctx context.Context, tx pgx.Tx, settings domain.ShopSavingsSettings) error {
	m := mapping.ToModelShopSavingsSettings(settings)
	query := `
		UPDATE shop_savings_settings
		SET current_balance = $2, total_saved = $3, total_withdrawn = $4,
		    last_updated_at = $5, last_updated_by = $6, sync_status = $7
		WHERE shop_id = $1;
	`
	_, err := tx.Exec(ctx, query,
		m.ShopID,
		m.CurrentBalance,
		m.TotalSaved,
		m.TotalWithdrawn,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SyncStatus,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update savings settings for shop "+m.ShopID, err)
	}
	return nil
}

func (r *PgxSavingsRepository) insertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.SavingsTransaction) error {
	m := mapping.ToModelSavingsTransaction(txn)
	query := `
		INSERT INTO savings_transactions (
			savings_transaction_id, shop_id, savings_goal_id, type, amount,
			balance_before, balance_after, description, transaction_date,
			created_at, created_by, last_updated_at, last_updated_by, sync_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		m.SavingsTransactionID,
		m.ShopID,
		m.SavingsGoalID,
		m.Type,
		m.Amount,
		m.BalanceBefore,
		m.BalanceAfter,
		m.Description,
		m.TransactionDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SyncStatus,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert savings transaction "+m.SavingsTransactionID, err)
	}
	return nil
}

func (r *PgxSavingsRepository) findGoalByIDForUpdate(ctx context.Context, tx pgx.Tx, goalID string) (*domain.SavingsGoal, error) {
	query := `SELECT ` + savingsGoalColumns + ` FROM savings_goals WHERE savings_goal_id = $1 AND deleted_at IS NULL FOR UPDATE;`
	m, err := scanSavingsGoal(tx.QueryRow(ctx, query, goalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock savings goal "+goalID, err)
	}
	d := mapping.ToDomainSavingsGoal(*m)
	return &d, nil
}

func (r *PgxSavingsRepository) updateGoalInTx(ctx context.Context, tx pgx.Tx, goal domain.SavingsGoal) error {
	m := mapping.ToModelSavingsGoal(goal)
	query := `
		UPDATE savings_goals
		SET current_amount = $2, amount_withdrawn = $3, progress_percentage = $4, status = $5,
		    last_updated_at = $6, last_updated_by = $7, sync_status = $8
		WHERE savings_goal_id = $1;
	`
	_, err := tx.Exec(ctx, query,
		m.SavingsGoalID,
		m.CurrentAmount,
		m.AmountWithdrawn,
		m.ProgressPercentage,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SyncStatus,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update savings goal "+m.SavingsGoalID, err)
	}
	return nil
}
