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

type PgxRelationshipRepository struct {
	BaseRepository
}

func newPgxRelationshipRepository(pool *pgxpool.Pool) *PgxRelationshipRepository {
	return &PgxRelationshipRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxRelationshipRepository implements both relationship ports
var _ portsrepo.RelationshipRepositoryFacade = (*PgxRelationshipRepository)(nil)
var _ portsrepo.SupplierOnboardingRepository = (*PgxRelationshipRepository)(nil)

const relationshipColumns = `
	relationship_id, supplier_account_id, customer_account_id, price_per_liter, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanRelationship(row pgx.Row) (*domain.SupplierCustomer, error) {
	var rel domain.SupplierCustomer
	err := row.Scan(
		&rel.RelationshipID, &rel.SupplierAccountID, &rel.CustomerAccountID, &rel.PricePerLiter, &rel.Status,
		&rel.CreatedAt, &rel.CreatedBy, &rel.LastUpdatedAt, &rel.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan relationship: %w", err)
	}
	return &rel, nil
}

func (r *PgxRelationshipRepository) SaveRelationship(ctx context.Context, rel domain.SupplierCustomer) error {
	query := `
		INSERT INTO supplier_customers (` + relationshipColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		rel.RelationshipID, rel.SupplierAccountID, rel.CustomerAccountID, rel.PricePerLiter, rel.Status,
		rel.CreatedAt, rel.CreatedBy, rel.LastUpdatedAt, rel.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save relationship: %w", err)
	}
	return nil
}

func (r *PgxRelationshipRepository) FindRelationship(ctx context.Context, supplierAccountID, customerAccountID string) (*domain.SupplierCustomer, error) {
	query := `
		SELECT ` + relationshipColumns + `
		FROM supplier_customers
		WHERE supplier_account_id = $1 AND customer_account_id = $2;
	`
	return scanRelationship(r.Pool.QueryRow(ctx, query, supplierAccountID, customerAccountID))
}

func (r *PgxRelationshipRepository) FindRelationshipByID(ctx context.Context, relationshipID string) (*domain.SupplierCustomer, error) {
	query := `SELECT ` + relationshipColumns + ` FROM supplier_customers WHERE relationship_id = $1;`
	return scanRelationship(r.Pool.QueryRow(ctx, query, relationshipID))
}

func (r *PgxRelationshipRepository) UpdateRelationship(ctx context.Context, rel domain.SupplierCustomer) error {
	query := `
		UPDATE supplier_customers SET
			price_per_liter = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE relationship_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		rel.RelationshipID, rel.PricePerLiter, rel.Status, rel.LastUpdatedAt, rel.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update relationship: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxRelationshipRepository) ListSuppliersForCustomer(ctx context.Context, customerAccountID string) ([]domain.SupplierCustomer, error) {
	query := `
		SELECT ` + relationshipColumns + `
		FROM supplier_customers
		WHERE customer_account_id = $1
		ORDER BY created_at DESC;
	`
	return r.queryRelationships(ctx, query, customerAccountID)
}

func (r *PgxRelationshipRepository) ListCustomersForSupplier(ctx context.Context, supplierAccountID string) ([]domain.SupplierCustomer, error) {
	query := `
		SELECT ` + relationshipColumns + `
		FROM supplier_customers
		WHERE supplier_account_id = $1
		ORDER BY created_at DESC;
	`
	return r.queryRelationships(ctx, query, supplierAccountID)
}

func (r *PgxRelationshipRepository) queryRelationships(ctx context.Context, query string, arg any) ([]domain.SupplierCustomer, error) {
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query relationships: %w", err)
	}
	defer rows.Close()

	rels := []domain.SupplierCustomer{}
	for rows.Next() {
		var rel domain.SupplierCustomer
		err := rows.Scan(
			&rel.RelationshipID, &rel.SupplierAccountID, &rel.CustomerAccountID, &rel.PricePerLiter, &rel.Status,
			&rel.CreatedAt, &rel.CreatedBy, &rel.LastUpdatedAt, &rel.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan relationship row: %w", err)
		}
		rels = append(rels, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating relationship rows: %w", err)
	}
	return rels, nil
}

// OnboardSupplier provisions a supplier person in one database transaction:
// user, account, membership and default wallet all commit or none do.
func (r *PgxRelationshipRepository) OnboardSupplier(ctx context.Context, user domain.User, account domain.Account, link domain.UserAccount, wallet domain.Wallet) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// The person may already exist (matched by contact but holding no active
	// account); only brand-new persons get a user row.
	var userExists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1);`, user.UserID).Scan(&userExists); err != nil {
		return fmt.Errorf("failed to check supplier user: %w", err)
	}
	if !userExists {
		userQuery := `
			INSERT INTO users (` + userColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
		`
		_, err = tx.Exec(ctx, userQuery,
			user.UserID, user.Name, user.Phone, user.Email, user.PasswordHash, user.NationalID, user.DefaultAccountID,
			user.KYC.Province, user.KYC.District, user.KYC.Sector, user.KYC.Cell, user.KYC.Village,
			user.KYC.IDFrontPhoto, user.KYC.IDBackPhoto, user.KYC.SelfiePhoto, user.KYCStatus,
			user.CreatedAt, user.CreatedBy, user.LastUpdatedAt, user.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.ErrDuplicate
			}
			return fmt.Errorf("failed to insert supplier user: %w", err)
		}
	}

	accountQuery := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, accountQuery,
		account.AccountID, account.Code, account.Name, account.Type, account.Status,
		account.CreatedAt, account.CreatedBy, account.LastUpdatedAt, account.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert supplier account: %w", err)
	}

	permissions, err := marshalPermissions(link.Permissions)
	if err != nil {
		return err
	}
	linkQuery := `
		INSERT INTO user_accounts (user_account_id, user_id, account_id, role, permissions, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, linkQuery,
		link.UserAccountID, link.UserID, link.AccountID, link.Role, permissions, link.Status, link.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert supplier membership: %w", err)
	}

	walletQuery := `
		INSERT INTO wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, walletQuery,
		wallet.WalletID, wallet.AccountID, wallet.Code, wallet.Type, wallet.IsJoint, wallet.IsDefault,
		wallet.Balance, wallet.Currency, wallet.Status,
		wallet.CreatedAt, wallet.CreatedBy, wallet.LastUpdatedAt, wallet.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert supplier wallet: %w", err)
	}

	defaultQuery := `UPDATE users SET default_account_id = $2 WHERE user_id = $1;`
	if _, err := tx.Exec(ctx, defaultQuery, user.UserID, account.AccountID); err != nil {
		return fmt.Errorf("failed to set supplier default account: %w", err)
	}

	return r.Commit(ctx, tx)
}
