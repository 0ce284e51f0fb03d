package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gemura/gemura-backend/internal/apperrors"
	"github.com/gemura/gemura-backend/internal/core/domain"
	portsrepo "github.com/gemura/gemura-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `
	account_id, code, name, type, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.AccountID, &a.Code, &a.Name, &a.Type, &a.Status,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	return &a, nil
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID, account.Code, account.Name, account.Type, account.Status,
		account.CreatedAt, account.CreatedBy, account.LastUpdatedAt, account.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return scanAccount(r.Pool.QueryRow(ctx, query, accountID))
}

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1;`
	return scanAccount(r.Pool.QueryRow(ctx, query, code))
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts SET name = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.AccountID, account.Name, account.Status, account.LastUpdatedAt, account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) SaveUserAccount(ctx context.Context, link domain.UserAccount) error {
	permissions, err := marshalPermissions(link.Permissions)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO user_accounts (user_account_id, user_id, account_id, role, permissions, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = r.Pool.Exec(ctx, query,
		link.UserAccountID, link.UserID, link.AccountID, link.Role, permissions, link.Status, link.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user account: %w", err)
	}
	return nil
}

func (r *PgxAccountRepository) FindUserAccount(ctx context.Context, userID, accountID string) (*domain.UserAccount, error) {
	query := `
		SELECT user_account_id, user_id, account_id, role, permissions, status, created_at
		FROM user_accounts
		WHERE user_id = $1 AND account_id = $2 AND status = 'ACTIVE';
	`
	var link domain.UserAccount
	var rawPermissions []byte
	err := r.Pool.QueryRow(ctx, query, userID, accountID).Scan(
		&link.UserAccountID, &link.UserID, &link.AccountID, &link.Role, &rawPermissions, &link.Status, &link.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user account: %w", err)
	}
	link.Permissions = unmarshalPermissions(rawPermissions)
	return &link, nil
}

func (r *PgxAccountRepository) ListUserAccounts(ctx context.Context, userID string) ([]domain.UserAccountWithAccount, error) {
	query := `
		SELECT ua.user_account_id, ua.user_id, ua.account_id, ua.role, ua.permissions, ua.status, ua.created_at,
		       a.account_id, a.code, a.name, a.type, a.status,
		       a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
		FROM user_accounts ua
		JOIN accounts a ON a.account_id = ua.account_id
		WHERE ua.user_id = $1 AND ua.status = 'ACTIVE' AND a.status = 'ACTIVE'
		ORDER BY ua.created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user accounts: %w", err)
	}
	defer rows.Close()

	memberships := []domain.UserAccountWithAccount{}
	for rows.Next() {
		var m domain.UserAccountWithAccount
		var rawPermissions []byte
		err := rows.Scan(
			&m.UserAccountID, &m.UserID, &m.AccountID, &m.Role, &rawPermissions, &m.Status, &m.UserAccount.CreatedAt,
			&m.Account.AccountID, &m.Account.Code, &m.Account.Name, &m.Account.Type, &m.Account.Status,
			&m.Account.CreatedAt, &m.Account.CreatedBy, &m.Account.LastUpdatedAt, &m.Account.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user account row: %w", err)
		}
		m.Permissions = unmarshalPermissions(rawPermissions)
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user account rows: %w", err)
	}
	return memberships, nil
}

// marshalPermissions serializes an override set for storage; nil stays NULL.
func marshalPermissions(set *domain.PermissionSet) ([]byte, error) {
	if set == nil {
		return nil, nil
	}
	data, err := json.Marshal(set)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal permissions: %w", err)
	}
	return data, nil
}

// unmarshalPermissions tolerates both storage shapes of the override blob; a
// malformed blob reads as no override.
func unmarshalPermissions(raw []byte) *domain.PermissionSet {
	if len(raw) == 0 {
		return nil
	}
	set, err := domain.NormalizePermissions(raw)
	if err != nil || set == nil {
		return nil
	}
	return &set
}
