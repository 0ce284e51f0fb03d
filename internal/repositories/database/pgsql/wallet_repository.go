package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gemura/gemura-backend/internal/apperrors"
	"github.com/gemura/gemura-backend/internal/core/domain"
	portsrepo "github.com/gemura/gemura-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxWalletRepository struct {
	BaseRepository
}

func newPgxWalletRepository(pool *pgxpool.Pool) portsrepo.WalletRepositoryFacade {
	return &PgxWalletRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxWalletRepository implements portsrepo.WalletRepositoryFacade
var _ portsrepo.WalletRepositoryFacade = (*PgxWalletRepository)(nil)

const walletColumns = `
	wallet_id, account_id, code, type, is_joint, is_default, balance, currency, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var w domain.Wallet
	err := row.Scan(
		&w.WalletID, &w.AccountID, &w.Code, &w.Type, &w.IsJoint, &w.IsDefault, &w.Balance, &w.Currency, &w.Status,
		&w.CreatedAt, &w.CreatedBy, &w.LastUpdatedAt, &w.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan wallet: %w", err)
	}
	return &w, nil
}

func (r *PgxWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	query := `
		INSERT INTO wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		wallet.WalletID, wallet.AccountID, wallet.Code, wallet.Type, wallet.IsJoint, wallet.IsDefault,
		wallet.Balance, wallet.Currency, wallet.Status,
		wallet.CreatedAt, wallet.CreatedBy, wallet.LastUpdatedAt, wallet.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save wallet: %w", err)
	}
	return nil
}

func (r *PgxWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE wallet_id = $1;`
	return scanWallet(r.Pool.QueryRow(ctx, query, walletID))
}

func (r *PgxWalletRepository) ListWalletsByAccount(ctx context.Context, accountID string) ([]domain.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE account_id = $1
		ORDER BY is_default DESC, created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets: %w", err)
	}
	defer rows.Close()

	wallets := []domain.Wallet{}
	for rows.Next() {
		var w domain.Wallet
		err := rows.Scan(
			&w.WalletID, &w.AccountID, &w.Code, &w.Type, &w.IsJoint, &w.IsDefault, &w.Balance, &w.Currency, &w.Status,
			&w.CreatedAt, &w.CreatedBy, &w.LastUpdatedAt, &w.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet row: %w", err)
		}
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallet rows: %w", err)
	}
	return wallets, nil
}

func (r *PgxWalletRepository) CountWalletsByAccount(ctx context.Context, accountID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM wallets WHERE account_id = $1;`, accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count wallets: %w", err)
	}
	return count, nil
}

func (r *PgxWalletRepository) WalletCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM wallets WHERE code = $1);`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check wallet code: %w", err)
	}
	return exists, nil
}

func (r *PgxWalletRepository) ClearDefaultWallet(ctx context.Context, accountID string, updatedBy string, now time.Time) error {
	query := `
		UPDATE wallets SET is_default = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND is_default = TRUE;
	`
	if _, err := r.Pool.Exec(ctx, query, accountID, now, updatedBy); err != nil {
		return fmt.Errorf("failed to clear default wallet: %w", err)
	}
	return nil
}

func (r *PgxWalletRepository) SetDefaultWallet(ctx context.Context, walletID string, updatedBy string, now time.Time) error {
	query := `
		UPDATE wallets SET is_default = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE wallet_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, walletID, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to set default wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AdjustBalance applies the delta with a non-negativity guard in the WHERE
// clause, so a concurrent withdrawal can never drive the balance below zero.
func (r *PgxWalletRepository) AdjustBalance(ctx context.Context, walletID string, delta decimal.Decimal, updatedBy string, now time.Time) (*domain.Wallet, error) {
	query := `
		UPDATE wallets
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE wallet_id = $1 AND balance + $2 >= 0
		RETURNING ` + walletColumns + `;
	`
	wallet, err := scanWallet(r.Pool.QueryRow(ctx, query, walletID, delta, now, updatedBy))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Distinguish a missing wallet from an insufficient balance.
			if _, findErr := r.FindWalletByID(ctx, walletID); findErr == nil {
				return nil, apperrors.ErrValidation
			}
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return wallet, nil
}
