package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/gemura/gemura-backend/internal/apperrors"
	"github.com/gemura/gemura-backend/internal/core/domain"
	portsrepo "github.com/gemura/gemura-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const chartColumns = `
	chart_account_id, code, name, account_type, parent_id, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanChartAccount(row pgx.Row) (*domain.ChartOfAccount, error) {
	var a domain.ChartOfAccount
	err := row.Scan(
		&a.ChartAccountID, &a.Code, &a.Name, &a.AccountType, &a.ParentID, &a.IsActive,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan chart account: %w", err)
	}
	return &a, nil
}

func (r *PgxLedgerRepository) SaveChartAccount(ctx context.Context, acc domain.ChartOfAccount) error {
	query := `
		INSERT INTO chart_of_accounts (` + chartColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		acc.ChartAccountID, acc.Code, acc.Name, acc.AccountType, acc.ParentID, acc.IsActive,
		acc.CreatedAt, acc.CreatedBy, acc.LastUpdatedAt, acc.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save chart account: %w", err)
	}
	return nil
}

func (r *PgxLedgerRepository) FindChartAccountByID(ctx context.Context, chartAccountID string) (*domain.ChartOfAccount, error) {
	query := `SELECT ` + chartColumns + ` FROM chart_of_accounts WHERE chart_account_id = $1;`
	return scanChartAccount(r.Pool.QueryRow(ctx, query, chartAccountID))
}

func (r *PgxLedgerRepository) FindChartAccountByCode(ctx context.Context, code string) (*domain.ChartOfAccount, error) {
	query := `SELECT ` + chartColumns + ` FROM chart_of_accounts WHERE code = $1;`
	return scanChartAccount(r.Pool.QueryRow(ctx, query, code))
}

func (r *PgxLedgerRepository) FindChartAccountsByIDs(ctx context.Context, ids []string) (map[string]domain.ChartOfAccount, error) {
	query := `SELECT ` + chartColumns + ` FROM chart_of_accounts WHERE chart_account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query chart accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.ChartOfAccount, len(ids))
	for rows.Next() {
		var a domain.ChartOfAccount
		err := rows.Scan(
			&a.ChartAccountID, &a.Code, &a.Name, &a.AccountType, &a.ParentID, &a.IsActive,
			&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chart account row: %w", err)
		}
		accounts[a.ChartAccountID] = a
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chart account rows: %w", err)
	}
	return accounts, nil
}

func (r *PgxLedgerRepository) ListChartAccounts(ctx context.Context, includeInactive bool) ([]domain.ChartOfAccount, error) {
	query := `SELECT ` + chartColumns + ` FROM chart_of_accounts`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY code ASC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query chart accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.ChartOfAccount{}
	for rows.Next() {
		var a domain.ChartOfAccount
		err := rows.Scan(
			&a.ChartAccountID, &a.Code, &a.Name, &a.AccountType, &a.ParentID, &a.IsActive,
			&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chart account row: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chart account rows: %w", err)
	}
	return accounts, nil
}

func (r *PgxLedgerRepository) UpdateChartAccount(ctx context.Context, acc domain.ChartOfAccount) error {
	query := `
		UPDATE chart_of_accounts SET name = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE chart_account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		acc.ChartAccountID, acc.Name, acc.IsActive, acc.LastUpdatedAt, acc.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update chart account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLedgerRepository) CountActiveChildren(ctx context.Context, chartAccountID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM chart_of_accounts WHERE parent_id = $1 AND is_active = TRUE;`
	if err := r.Pool.QueryRow(ctx, query, chartAccountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count children: %w", err)
	}
	return count, nil
}

// SaveTransaction writes the header and every entry line inside one database
// transaction.
func (r *PgxLedgerRepository) SaveTransaction(ctx context.Context, txn domain.AccountingTransaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	headerQuery := `
		INSERT INTO accounting_transactions (
			transaction_id, transaction_date, reference_number, description, total_amount,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, headerQuery,
		txn.TransactionID, txn.TransactionDate, txn.ReferenceNumber, txn.Description, txn.TotalAmount,
		txn.CreatedAt, txn.CreatedBy, txn.LastUpdatedAt, txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction header: %w", err)
	}

	entryQuery := `
		INSERT INTO accounting_transaction_entries (entry_id, transaction_id, chart_account_id, side, amount, memo)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, e := range txn.Entries {
		_, err = tx.Exec(ctx, entryQuery, e.EntryID, e.TransactionID, e.ChartAccountID, e.Side, e.Amount, e.Memo)
		if err != nil {
			return fmt.Errorf("failed to insert transaction entry: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.AccountingTransaction, error) {
	headerQuery := `
		SELECT transaction_id, transaction_date, reference_number, description, total_amount,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM accounting_transactions
		WHERE transaction_id = $1;
	`
	var t domain.AccountingTransaction
	err := r.Pool.QueryRow(ctx, headerQuery, transactionID).Scan(
		&t.TransactionID, &t.TransactionDate, &t.ReferenceNumber, &t.Description, &t.TotalAmount,
		&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	entryQuery := `
		SELECT entry_id, transaction_id, chart_account_id, side, amount, memo
		FROM accounting_transaction_entries
		WHERE transaction_id = $1
		ORDER BY entry_id ASC;
	`
	rows, err := r.Pool.Query(ctx, entryQuery, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.AccountingTransactionEntry
		if err := rows.Scan(&e.EntryID, &e.TransactionID, &e.ChartAccountID, &e.Side, &e.Amount, &e.Memo); err != nil {
			return nil, fmt.Errorf("failed to scan transaction entry: %w", err)
		}
		t.Entries = append(t.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction entries: %w", err)
	}
	return &t, nil
}

func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, limit, offset int) ([]domain.AccountingTransaction, error) {
	query := `
		SELECT transaction_id, transaction_date, reference_number, description, total_amount,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM accounting_transactions
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.AccountingTransaction{}
	for rows.Next() {
		var t domain.AccountingTransaction
		err := rows.Scan(
			&t.TransactionID, &t.TransactionDate, &t.ReferenceNumber, &t.Description, &t.TotalAmount,
			&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

func (r *PgxLedgerRepository) UpdateTransactionHeader(ctx context.Context, txn domain.AccountingTransaction) error {
	query := `
		UPDATE accounting_transactions SET
			reference_number = $2, description = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		txn.TransactionID, txn.ReferenceNumber, txn.Description, txn.LastUpdatedAt, txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction header: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
